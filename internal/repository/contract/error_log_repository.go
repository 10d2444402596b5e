package contract

import (
	"context"
	"time"

	"errortrack-be/internal/entity"

	"github.com/google/uuid"
)

type ErrorLogRepository interface {
	Create(ctx context.Context, errorLog *entity.ErrorLog) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.ErrorLog, error)
	List(ctx context.Context, applicationId *uuid.UUID, status *entity.ErrorStatus, limit, offset int) ([]*entity.ErrorLog, int64, error)
	CountByApplication(ctx context.Context, applicationId uuid.UUID) (int64, error)
	// FindResolvedOldestFirst returns the application's resolved logs ordered by
	// resolved_at ascending, insertion order breaking ties.
	FindResolvedOldestFirst(ctx context.Context, applicationId uuid.UUID) ([]*entity.ErrorLog, error)
	// Resolve flips an Open log to Resolved and stamps resolvedAt exactly once.
	// Returns false when the id does not exist or the log is already resolved.
	Resolve(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// Delete returns false when the id does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
	DeleteByApplication(ctx context.Context, applicationId uuid.UUID) error
}
