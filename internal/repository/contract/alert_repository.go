package contract

import (
	"context"
	"time"

	"errortrack-be/internal/entity"

	"github.com/google/uuid"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Alert, error)
	List(ctx context.Context, applicationId *uuid.UUID, limit, offset int) ([]*entity.Alert, int64, error)
	Resolve(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// DeleteByErrorLogId removes alerts whose error_log_id back-reference
	// matches, used by the error-deletion cascade.
	DeleteByErrorLogId(ctx context.Context, errorLogId string) error
	DeleteByApplication(ctx context.Context, applicationId uuid.UUID) error
}
