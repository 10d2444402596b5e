package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"errortrack-be/internal/dto"
	"errortrack-be/internal/entity"
	"errortrack-be/internal/repository/memory"
	"errortrack-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// SystemUserEmail owns applications auto-provisioned by the ingestion path.
const SystemUserEmail = "system@errortrack.local"

type IApplicationService interface {
	ResolveOrCreate(ctx context.Context, apiKey, name string) (*entity.Application, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.ApplicationResponse, error)
	Index(ctx context.Context) ([]dto.ApplicationResponse, error)
}

type applicationService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ApplicationCache
}

func NewApplicationService(uowFactory unitofwork.RepositoryFactory, cache *memory.ApplicationCache) IApplicationService {
	return &applicationService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func generateApiKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ResolveOrCreate maps an inbound report to its Application: by api key first,
// then by exact name, auto-provisioning under the system account when unknown.
func (s *applicationService) ResolveOrCreate(ctx context.Context, apiKey, name string) (*entity.Application, error) {
	if apiKey != "" {
		if cached, found := s.cache.Get(apiKey); found {
			return cached, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if apiKey != "" {
		app, err := uow.ApplicationRepository().FindByApiKey(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		if app != nil {
			s.cache.Save(app)
			return app, nil
		}
	}

	if name != "" {
		app, err := uow.ApplicationRepository().FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if app != nil {
			if app.ApiKey != "" {
				s.cache.Save(app)
			}
			return app, nil
		}
	}

	if name == "" {
		return nil, errors.New("application name is required for auto-provisioning")
	}

	key := apiKey
	if key == "" {
		generated, err := generateApiKey()
		if err != nil {
			return nil, err
		}
		key = generated
	}

	app := &entity.Application{
		Id:          uuid.New(),
		ApiKey:      key,
		Name:        name,
		Description: fmt.Sprintf("Auto-provisioned on first error report (%s)", time.Now().Format(time.RFC822)),
		IsActive:    true,
		IsPaused:    false,
		CreatedBy:   s.systemUserId(ctx, uow),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uow.ApplicationRepository().Create(ctx, app); err != nil {
		return nil, err
	}

	s.cache.Save(app)
	return app, nil
}

func (s *applicationService) systemUserId(ctx context.Context, uow unitofwork.UnitOfWork) uuid.UUID {
	user, err := uow.UserRepository().FindByEmail(ctx, SystemUserEmail)
	if err != nil || user == nil {
		return uuid.Nil
	}
	return user.Id
}

func (s *applicationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ApplicationRepository().FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("application name already registered")
	}

	key, err := generateApiKey()
	if err != nil {
		return nil, err
	}

	app := &entity.Application{
		Id:          uuid.New(),
		ApiKey:      key,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		IsPaused:    false,
		CreatedBy:   userId,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uow.ApplicationRepository().Create(ctx, app); err != nil {
		return nil, err
	}

	return toApplicationResponse(app), nil
}

func (s *applicationService) Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	app, err := uow.ApplicationRepository().FindById(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.New("application not found")
	}

	app.Name = req.Name
	app.Description = req.Description
	if req.IsActive != nil {
		app.IsActive = *req.IsActive
	}
	if req.IsPaused != nil {
		app.IsPaused = *req.IsPaused
	}
	app.UpdatedAt = time.Now()

	if err := uow.ApplicationRepository().Update(ctx, app); err != nil {
		return nil, err
	}

	// Gate changes must be visible to the ingestion path immediately.
	s.cache.Delete(app.ApiKey)

	return toApplicationResponse(app), nil
}

// Delete removes the application and cascades to its error logs and alerts.
func (s *applicationService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	app, err := uow.ApplicationRepository().FindById(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return errors.New("application not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.AlertRepository().DeleteByApplication(ctx, id); err != nil {
		return err
	}
	if err := uow.ErrorLogRepository().DeleteByApplication(ctx, id); err != nil {
		return err
	}
	if err := uow.ApplicationRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.cache.Delete(app.ApiKey)
	return nil
}

func (s *applicationService) Show(ctx context.Context, id uuid.UUID) (*dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	app, err := uow.ApplicationRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.New("application not found")
	}

	return toApplicationResponse(app), nil
}

func (s *applicationService) Index(ctx context.Context) ([]dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	apps, err := uow.ApplicationRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicationResponse, len(apps))
	for i, app := range apps {
		responses[i] = *toApplicationResponse(app)
	}
	return responses, nil
}

func toApplicationResponse(app *entity.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		Id:          app.Id,
		ApiKey:      app.ApiKey,
		Name:        app.Name,
		Description: app.Description,
		IsActive:    app.IsActive,
		IsPaused:    app.IsPaused,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}
