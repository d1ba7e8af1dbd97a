package approval

import (
	"sort"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

// LevelStatus is the aggregate status of one approval level
type LevelStatus string

// Level status constants
const (
	LevelStatusApproved   LevelStatus = "APPROVED"
	LevelStatusRejected   LevelStatus = "REJECTED"
	LevelStatusActionable LevelStatus = "ACTIONABLE"
	LevelStatusBlocked    LevelStatus = "BLOCKED"
	LevelStatusPending    LevelStatus = "PENDING"
)

// LevelSummary is the derived state of one approval level
type LevelSummary struct {
	Level           int                   `json:"level"`
	Status          LevelStatus           `json:"status"`
	Total           int                   `json:"total"`
	ApprovedCount   int                   `json:"approvedCount"`
	RejectedCount   int                   `json:"rejectedCount"`
	ActionableCount int                   `json:"actionableCount"`
	BlockedCount    int                   `json:"blockedCount"`
	CandidateRoles  []string              `json:"candidateRoles"`
	ActionedBy      []string              `json:"actionedBy"`
	Tasks           []entity.ApprovalTask `json:"tasks"`
}

// AggregateLevels groups tasks by level number and summarizes each level.
// Levels are returned in ascending order, which is the approval sequence.
func AggregateLevels(tasks []entity.ApprovalTask) []LevelSummary {
	grouped := make(map[int][]entity.ApprovalTask)
	for _, task := range tasks {
		grouped[task.LevelNumber] = append(grouped[task.LevelNumber], task)
	}

	levels := make([]int, 0, len(grouped))
	for level := range grouped {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	summaries := make([]LevelSummary, 0, len(levels))
	for _, level := range levels {
		summaries = append(summaries, summarizeLevel(level, grouped[level]))
	}
	return summaries
}

func summarizeLevel(level int, tasks []entity.ApprovalTask) LevelSummary {
	summary := LevelSummary{
		Level:          level,
		Total:          len(tasks),
		CandidateRoles: []string{},
		ActionedBy:     []string{},
	}

	seenRoles := make(map[string]bool)
	seenActors := make(map[string]bool)
	for _, task := range tasks {
		switch task.Status {
		case entity.TaskStatusApproved:
			summary.ApprovedCount++
		case entity.TaskStatusRejected:
			summary.RejectedCount++
		case entity.TaskStatusPendingActionable:
			summary.ActionableCount++
		case entity.TaskStatusPendingBlocked:
			summary.BlockedCount++
		}

		for _, role := range task.CandidateRoles {
			if !seenRoles[role] {
				seenRoles[role] = true
				summary.CandidateRoles = append(summary.CandidateRoles, role)
			}
		}

		if actor := task.ActionedByID(); actor != "" && !seenActors[actor] {
			seenActors[actor] = true
			summary.ActionedBy = append(summary.ActionedBy, actor)
		}
	}
	summary.Status = levelStatus(summary)

	summary.Tasks = make([]entity.ApprovalTask, len(tasks))
	copy(summary.Tasks, tasks)
	sort.SliceStable(summary.Tasks, func(i, j int) bool {
		return summary.Tasks[i].EffectiveTime().Before(summary.Tasks[j].EffectiveTime())
	})

	return summary
}

// levelStatus applies the precedence: any rejection, then full approval,
// then anything actionable, then anything blocked.
func levelStatus(s LevelSummary) LevelStatus {
	switch {
	case s.RejectedCount > 0:
		return LevelStatusRejected
	case s.ApprovedCount == s.Total:
		return LevelStatusApproved
	case s.ActionableCount > 0:
		return LevelStatusActionable
	case s.BlockedCount > 0:
		return LevelStatusBlocked
	default:
		return LevelStatusPending
	}
}
