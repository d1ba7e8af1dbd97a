package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/domain/approval"
	"github.com/garyjia/finance-console/internal/domain/entity"
	"github.com/garyjia/finance-console/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// TaskView is one task together with what the current user may do with it
type TaskView struct {
	entity.ApprovalTask
	Eligibility approval.ActionEligibility `json:"eligibility"`
}

// TaskListView is the approvals inbox for one user
type TaskListView struct {
	Status entity.TaskStatus `json:"status,omitempty"`
	Tasks  []TaskView        `json:"tasks"`
}

// ActionResult is returned after an approval action was forwarded
type ActionResult struct {
	Record   *entity.ActionRecord    `json:"record"`
	Workflow *entity.WorkflowSummary `json:"workflow"`
}

// TaskService manages the approvals inbox
type TaskService interface {
	// ListTasks lists tasks with their eligibility for the given user.
	// An empty status lists every status.
	ListTasks(ctx context.Context, identity entity.Identity, status entity.TaskStatus) (*TaskListView, error)

	// PerformAction forwards an approve/reject decision to the platform and journals it
	PerformAction(ctx context.Context, identity entity.Identity, taskID string, action entity.TaskAction, reason string) (*ActionResult, error)

	// ListActions returns journaled actions, all of them when actorSubject is empty
	ListActions(ctx context.Context, actorSubject string, limit int) ([]*entity.ActionRecord, error)
}

type taskServiceImpl struct {
	tasks   port.TaskAPI
	journal port.ActionJournalRepository
	logger  Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks port.TaskAPI, journal port.ActionJournalRepository, logger Logger) TaskService {
	return &taskServiceImpl{
		tasks:   tasks,
		journal: journal,
		logger:  logger,
	}
}

// ParseTaskStatus validates a status filter. Empty and ALL mean no filter.
func ParseTaskStatus(raw string) (entity.TaskStatus, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" || raw == "ALL" {
		return "", nil
	}
	status := entity.TaskStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidStatus, raw)
	}
	return status, nil
}

// ListTasks lists tasks with their eligibility for the given user
func (s *taskServiceImpl) ListTasks(ctx context.Context, identity entity.Identity, status entity.TaskStatus) (*TaskListView, error) {
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	listed, err := s.tasks.ListTasks(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	// The restriction needs the user's decided tasks too, which a status filter hides
	population := listed
	if status != "" {
		population, err = s.tasks.ListTasks(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("failed to list restriction population: %w", err)
		}
	}

	views := make([]TaskView, 0, len(listed))
	for _, task := range listed {
		views = append(views, TaskView{
			ApprovalTask: task,
			Eligibility:  approval.CanAct(task, population, identity),
		})
	}

	return &TaskListView{Status: status, Tasks: views}, nil
}

// PerformAction forwards an approve/reject decision to the platform and journals it.
// The advisory restriction is not applied here; the platform enforces its own.
func (s *taskServiceImpl) PerformAction(ctx context.Context, identity entity.Identity, taskID string, action entity.TaskAction, reason string) (*ActionResult, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, fmt.Errorf("%w: task id is required", ErrInvalidInput)
	}
	action = entity.TaskAction(strings.ToUpper(string(action)))
	if !action.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	reason, err := utils.NormalizeReason(reason)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := time.Now()
	record := &entity.ActionRecord{
		TaskID:       taskID,
		Action:       action,
		ActorSubject: identity.SubjectID,
		Reason:       reason,
		Outcome:      entity.ActionOutcomeSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.journal.Record(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to journal action: %w", err)
	}

	summary, err := s.tasks.PerformTaskAction(ctx, taskID, entity.TaskActionRequest{Action: action, Reason: reason})
	if err != nil {
		s.logger.Error("Task action rejected by platform", "task_id", taskID, "action", action, "error", err)
		s.markOutcome(ctx, record, entity.ActionOutcomeFailed, err.Error())
		return nil, fmt.Errorf("failed to perform %s on task %s: %w", action, taskID, err)
	}

	if task, ok := findInSummary(summary, taskID); ok {
		record.DealID = task.DealID
	}
	s.markOutcome(ctx, record, entity.ActionOutcomeSucceeded, "")

	s.logger.Info("Task action performed", "task_id", taskID, "action", action, "actor", identity.SubjectID)

	return &ActionResult{Record: record, Workflow: summary}, nil
}

// ListActions returns journaled actions
func (s *taskServiceImpl) ListActions(ctx context.Context, actorSubject string, limit int) ([]*entity.ActionRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if actorSubject == "" {
		return s.journal.ListRecent(ctx, limit)
	}
	return s.journal.ListByActor(ctx, actorSubject, limit)
}

// markOutcome updates the journal entry; failures are logged, the platform result stands
func (s *taskServiceImpl) markOutcome(ctx context.Context, record *entity.ActionRecord, outcome, errorMessage string) {
	record.Outcome = outcome
	record.ErrorMessage = errorMessage
	if err := s.journal.MarkOutcome(ctx, record); err != nil {
		s.logger.Error("Failed to update action journal", "record_id", record.ID, "outcome", outcome, "error", err)
	}
}

func findInSummary(summary *entity.WorkflowSummary, taskID string) (entity.ApprovalTask, bool) {
	if summary == nil {
		return entity.ApprovalTask{}, false
	}
	if task, ok := approval.FindTask(summary.CompletedTasks, taskID); ok {
		return task, true
	}
	return approval.FindTask(summary.PendingTasks, taskID)
}
