package service

import (
	"context"
	"time"

	"errortrack-be/internal/dto"
	"errortrack-be/internal/entity"
	"errortrack-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAlertService interface {
	Show(ctx context.Context, id uuid.UUID) (*dto.AlertResponse, error)
	Index(ctx context.Context, applicationId *uuid.UUID, limit, offset int) (*dto.ListAlertsResponse, error)
	Resolve(ctx context.Context, id uuid.UUID) (bool, error)
}

type alertService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAlertService(uowFactory unitofwork.RepositoryFactory) IAlertService {
	return &alertService{
		uowFactory: uowFactory,
	}
}

func (s *alertService) Show(ctx context.Context, id uuid.UUID) (*dto.AlertResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	alert, err := uow.AlertRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, nil
	}
	return toAlertResponse(alert), nil
}

func (s *alertService) Index(ctx context.Context, applicationId *uuid.UUID, limit, offset int) (*dto.ListAlertsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	alerts, total, err := uow.AlertRepository().List(ctx, applicationId, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AlertResponse, len(alerts))
	for i, a := range alerts {
		items[i] = *toAlertResponse(a)
	}
	return &dto.ListAlertsResponse{Items: items, Total: total}, nil
}

func (s *alertService) Resolve(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AlertRepository().Resolve(ctx, id, time.Now())
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		Id:            a.Id,
		ErrorLogId:    a.ErrorLogId,
		ApplicationId: a.ApplicationId,
		Name:          a.Name,
		Message:       a.Message,
		AlertLevel:    a.AlertLevel,
		AlertType:     a.AlertType,
		Recipients:    a.Recipients,
		IsActive:      a.IsActive,
		IsResolved:    a.IsResolved,
		ResolvedAt:    a.ResolvedAt,
		CreatedAt:     a.CreatedAt,
	}
}
