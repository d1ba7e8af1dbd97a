package entity

import "time"

// ActionRecord is the console's own record of an approval action it forwarded
// to the platform. The platform's audit trail remains authoritative.
type ActionRecord struct {
	ID           string     `json:"id"`
	TaskID       string     `json:"taskId"`
	DealID       string     `json:"dealId,omitempty"`
	Action       TaskAction `json:"action"`
	ActorSubject string     `json:"actorSubject"`
	Reason       string     `json:"reason,omitempty"`
	Outcome      string     `json:"outcome"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Action outcome constants
const (
	ActionOutcomeSubmitted = "SUBMITTED"
	ActionOutcomeSucceeded = "SUCCEEDED"
	ActionOutcomeFailed    = "FAILED"
)
