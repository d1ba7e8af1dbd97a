package entity

import "time"

// ApprovalTask is one approver slot within one level of a deal's approval workflow,
// as returned by the platform's task listing. Tasks are snapshots: the console never
// mutates them, it issues an action and re-fetches.
type ApprovalTask struct {
	TaskID     string `json:"taskId"`
	WorkflowID string `json:"workflowId"`
	DealID     string `json:"dealId"`
	InvoiceID  string `json:"invoiceId"`

	// Display context only
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	Status         TaskStatus `json:"status"`
	LevelNumber    int        `json:"levelNumber"`
	CandidateRoles []string   `json:"candidateRoles"`
	CreatedAt      time.Time  `json:"createdAt"`

	// Populated once the task leaves PENDING_*
	ActionedAt *time.Time `json:"actionedAt"`
	ActionedBy *string    `json:"actionedBy"`
	Reason     *string    `json:"reason"`
}

// EffectiveTime returns ActionedAt when the task has been decided, CreatedAt otherwise.
func (t ApprovalTask) EffectiveTime() time.Time {
	if t.ActionedAt != nil {
		return *t.ActionedAt
	}
	return t.CreatedAt
}

// ActionedByID returns the actor subject id, or "" when the task has not been actioned.
func (t ApprovalTask) ActionedByID() string {
	if t.ActionedBy == nil {
		return ""
	}
	return *t.ActionedBy
}

// TaskStatus is the workflow engine's state for a single task.
type TaskStatus string

// Task status constants
const (
	TaskStatusPendingActionable TaskStatus = "PENDING_ACTIONABLE"
	TaskStatusPendingBlocked    TaskStatus = "PENDING_BLOCKED"
	TaskStatusApproved          TaskStatus = "APPROVED"
	TaskStatusRejected          TaskStatus = "REJECTED"
)

// String returns the string representation of the status
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the defined constants
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPendingActionable,
		TaskStatusPendingBlocked,
		TaskStatusApproved,
		TaskStatusRejected:
		return true
	default:
		return false
	}
}

// TaskAction is the decision a user submits against a task.
type TaskAction string

// Task action constants
const (
	TaskActionApprove TaskAction = "APPROVE"
	TaskActionReject  TaskAction = "REJECT"
)

// IsValid checks if the action is APPROVE or REJECT
func (a TaskAction) IsValid() bool {
	return a == TaskActionApprove || a == TaskActionReject
}

// TaskActionRequest is the body posted to the platform's task action endpoint.
type TaskActionRequest struct {
	Action TaskAction `json:"action"`
	Reason string     `json:"reason"`
}

// WorkflowSummary is returned by the platform after a task action.
type WorkflowSummary struct {
	PendingTasks   []ApprovalTask `json:"pendingTasks"`
	CompletedTasks []ApprovalTask `json:"completedTasks"`
}
