package unitofwork

import (
	"context"

	"errortrack-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ApplicationRepository() contract.ApplicationRepository
	ErrorLogRepository() contract.ErrorLogRepository
	AlertRepository() contract.AlertRepository
	UserRepository() contract.UserRepository
}
