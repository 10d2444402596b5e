package contract

import (
	"context"

	"errortrack-be/internal/entity"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.Application) error
	Update(ctx context.Context, app *entity.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Application, error)
	FindByApiKey(ctx context.Context, apiKey string) (*entity.Application, error)
	// FindByName matches the name exactly (case-sensitive).
	FindByName(ctx context.Context, name string) (*entity.Application, error)
	FindAll(ctx context.Context) ([]*entity.Application, error)
}
