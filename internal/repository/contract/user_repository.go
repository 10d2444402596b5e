package contract

import (
	"context"

	"errortrack-be/internal/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// OTP operations: one row per user, upsert semantics.
	UpsertOTP(ctx context.Context, otp *entity.UserOTP) error
	GetOTP(ctx context.Context, userId uuid.UUID) (*entity.UserOTP, error)
	DeleteOTP(ctx context.Context, userId uuid.UUID) error

	GetAuthSetting(ctx context.Context) (*entity.AuthSetting, error)
	SaveAuthSetting(ctx context.Context, setting *entity.AuthSetting) error
}
