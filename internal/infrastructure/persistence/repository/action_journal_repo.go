package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/finance-console/internal/application/port"
	"github.com/garyjia/finance-console/internal/domain/entity"
)

// ErrActionRecordNotFound is returned when an outcome is recorded for an unknown id
var ErrActionRecordNotFound = errors.New("action record not found")

// ActionJournalRepository implements port.ActionJournalRepository on SQLite
type ActionJournalRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewActionJournalRepository creates a new action journal repository
func NewActionJournalRepository(db *sql.DB, logger *zap.Logger) *ActionJournalRepository {
	return &ActionJournalRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record inserts a new journal entry. ID and timestamps are assigned when empty.
func (r *ActionJournalRepository) Record(ctx context.Context, record *entity.ActionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := r.now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = record.CreatedAt
	if record.Outcome == "" {
		record.Outcome = entity.ActionOutcomeSubmitted
	}

	query := `
		INSERT INTO action_journal (
			id, task_id, deal_id, action, actor_subject, reason,
			outcome, error_message, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := executorFor(ctx, r.db).ExecContext(ctx, query,
		record.ID,
		record.TaskID,
		record.DealID,
		string(record.Action),
		record.ActorSubject,
		record.Reason,
		record.Outcome,
		record.ErrorMessage,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to record action", zap.String("task_id", record.TaskID), zap.Error(err))
		return fmt.Errorf("failed to record action: %w", err)
	}
	return nil
}

// MarkOutcome stores the platform's answer for a journal entry, along with
// the deal id once it is known
func (r *ActionJournalRepository) MarkOutcome(ctx context.Context, record *entity.ActionRecord) error {
	record.UpdatedAt = r.now()
	query := `
		UPDATE action_journal
		SET deal_id = ?, outcome = ?, error_message = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := executorFor(ctx, r.db).ExecContext(ctx, query,
		record.DealID,
		record.Outcome,
		record.ErrorMessage,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update action outcome", zap.String("id", record.ID), zap.Error(err))
		return fmt.Errorf("failed to update action outcome: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrActionRecordNotFound, record.ID)
	}
	return nil
}

// ListRecent returns the newest entries first
func (r *ActionJournalRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ActionRecord, error) {
	query := selectActionRecords + `
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	return r.query(ctx, query, limit)
}

// ListByActor returns the newest entries of one user first
func (r *ActionJournalRepository) ListByActor(ctx context.Context, actorSubject string, limit int) ([]*entity.ActionRecord, error) {
	query := selectActionRecords + `
		WHERE actor_subject = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`
	return r.query(ctx, query, actorSubject, limit)
}

const selectActionRecords = `
		SELECT id, task_id, deal_id, action, actor_subject, reason,
			outcome, error_message, created_at, updated_at
		FROM action_journal`

func (r *ActionJournalRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.ActionRecord, error) {
	rows, err := executorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list action records", zap.Error(err))
		return nil, fmt.Errorf("failed to list action records: %w", err)
	}
	defer rows.Close()

	records := []*entity.ActionRecord{}
	for rows.Next() {
		var record entity.ActionRecord
		var action string
		err := rows.Scan(
			&record.ID,
			&record.TaskID,
			&record.DealID,
			&action,
			&record.ActorSubject,
			&record.Reason,
			&record.Outcome,
			&record.ErrorMessage,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action record: %w", err)
		}
		record.Action = entity.TaskAction(action)
		records = append(records, &record)
	}

	return records, rows.Err()
}

// Verify interface compliance
var _ port.ActionJournalRepository = (*ActionJournalRepository)(nil)
