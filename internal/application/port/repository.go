package port

import (
	"context"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

// ActionJournalRepository defines persistence operations for ActionRecord
type ActionJournalRepository interface {
	Record(ctx context.Context, record *entity.ActionRecord) error
	MarkOutcome(ctx context.Context, record *entity.ActionRecord) error
	ListRecent(ctx context.Context, limit int) ([]*entity.ActionRecord, error)
	ListByActor(ctx context.Context, actorSubject string, limit int) ([]*entity.ActionRecord, error)
}
