package approval

import (
	"github.com/garyjia/finance-console/internal/domain/entity"
)

// BlockedReason is shown next to disabled action controls
const BlockedReason = "You already actioned an approval for this deal and role."

// EvaluateSelfActionRestriction reports whether the user must not act on task
// because they already actioned another task of the same deal under a
// candidate role they also hold for task.
//
// The result is advisory: the platform enforces the same policy. Only the
// population the caller passes is scanned, so a filtered or paged population
// can miss a prior action.
func EvaluateSelfActionRestriction(task entity.ApprovalTask, population []entity.ApprovalTask, identity entity.Identity) bool {
	if identity.SubjectID == "" {
		return false
	}
	userRoles := NormalizeRoles(identity.Roles)
	if len(userRoles) == 0 {
		return false
	}

	taskRoles := relevantRoles(task.CandidateRoles, userRoles)
	if len(taskRoles) == 0 {
		return false
	}

	for _, other := range population {
		if other.TaskID == task.TaskID {
			continue
		}
		if other.DealID != task.DealID {
			continue
		}
		if other.ActionedBy == nil || *other.ActionedBy != identity.SubjectID {
			continue
		}
		if RolesOverlap(taskRoles, relevantRoles(other.CandidateRoles, userRoles)) {
			return true
		}
	}
	return false
}

// ActionEligibility tells a surface whether to enable the approve/reject controls of a task
type ActionEligibility struct {
	Actionable bool   `json:"actionable"`
	Blocked    bool   `json:"blocked"`
	Reason     string `json:"reason,omitempty"`
}

// CanAct combines the task's workflow status with the self-action restriction.
// Only PENDING_ACTIONABLE tasks are ever actionable.
func CanAct(task entity.ApprovalTask, population []entity.ApprovalTask, identity entity.Identity) ActionEligibility {
	if task.Status != entity.TaskStatusPendingActionable {
		return ActionEligibility{}
	}
	if EvaluateSelfActionRestriction(task, population, identity) {
		return ActionEligibility{Blocked: true, Reason: BlockedReason}
	}
	return ActionEligibility{Actionable: true}
}

// FindTask returns the task with the given id
func FindTask(tasks []entity.ApprovalTask, taskID string) (entity.ApprovalTask, bool) {
	if taskID == "" {
		return entity.ApprovalTask{}, false
	}
	for _, task := range tasks {
		if task.TaskID == taskID {
			return task, true
		}
	}
	return entity.ApprovalTask{}, false
}
