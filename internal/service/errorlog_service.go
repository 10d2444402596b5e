package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"errortrack-be/internal/dto"
	"errortrack-be/internal/entity"
	"errortrack-be/internal/notifier"
	"errortrack-be/internal/pkg/logger"
	"errortrack-be/internal/repository/unitofwork"
	"errortrack-be/pkg/events"
	pktNats "errortrack-be/pkg/nats"
	"errortrack-be/pkg/severity"

	"github.com/google/uuid"
)

// IngestOutcome discriminates the gate results of an ingestion call.
type IngestOutcome int

const (
	OutcomeStored   IngestOutcome = 0
	OutcomeInactive IngestOutcome = -1
	OutcomePaused   IngestOutcome = -2
)

// IngestResult is what the controller maps onto the reporter-facing contract.
type IngestResult struct {
	Outcome  IngestOutcome
	ErrorLog *entity.ErrorLog
	Alert    *entity.Alert
}

type EvictionPolicy struct {
	// MaxLogsPerApp triggers eviction once an application holds this many logs.
	MaxLogsPerApp int
	// KeepResolvedLogs caps how many resolved logs survive an eviction pass.
	KeepResolvedLogs int
}

type IErrorLogService interface {
	Ingest(ctx context.Context, req *dto.ReportErrorRequest, userAgent, ipAddress string) (*IngestResult, error)
	Resolve(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ErrorLogResponse, error)
	Index(ctx context.Context, applicationId *uuid.UUID, status *entity.ErrorStatus, limit, offset int) (*dto.ListErrorLogsResponse, error)
}

type errorLogService struct {
	uowFactory     unitofwork.RepositoryFactory
	appService     IApplicationService
	dispatcher     notifier.IDispatcher
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	recipients     []string
	policy         EvictionPolicy
}

func NewErrorLogService(
	uowFactory unitofwork.RepositoryFactory,
	appService IApplicationService,
	dispatcher notifier.IDispatcher,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	recipients string,
	policy EvictionPolicy,
) IErrorLogService {
	return &errorLogService{
		uowFactory:     uowFactory,
		appService:     appService,
		dispatcher:     dispatcher,
		eventPublisher: eventPublisher,
		logger:         log,
		recipients:     splitRecipients(recipients),
		policy:         policy,
	}
}

func splitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Ingest runs the full pipeline: registry gate -> classify -> persist with
// eviction -> correlate alert, all storage writes in one transaction. Delivery
// is handed to the dispatcher only after commit.
func (s *errorLogService) Ingest(ctx context.Context, req *dto.ReportErrorRequest, userAgent, ipAddress string) (*IngestResult, error) {
	// 1. Registry gate
	app, err := s.appService.ResolveOrCreate(ctx, req.ApiKey, req.AppName)
	if err != nil {
		return nil, err
	}
	if !app.IsActive {
		return &IngestResult{Outcome: OutcomeInactive}, nil
	}
	if app.IsPaused {
		return &IngestResult{Outcome: OutcomePaused}, nil
	}

	// 2. Classify
	level := severity.Classify(req.Severity)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// 3. Evict before the insert lands
	if err := s.evict(ctx, uow, app.Id); err != nil {
		return nil, err
	}

	// 4. Persist
	var stackTrace *string
	if req.StackTrace != "" {
		stackTrace = &req.StackTrace
	}
	errorLog := &entity.ErrorLog{
		Id:            uuid.New(),
		ApplicationId: app.Id,
		Message:       req.Message,
		StackTrace:    stackTrace,
		ApiEndpoint:   req.ApiEndpoint,
		HttpMethod:    req.HttpMethod,
		UserAgent:     userAgent,
		IpAddress:     ipAddress,
		Severity:      level,
		Status:        entity.ErrorStatusOpen,
		CreatedAt:     time.Now(),
	}
	if err := uow.ErrorLogRepository().Create(ctx, errorLog); err != nil {
		return nil, err
	}

	// 5. Correlate: exactly one alert per persisted error, any severity.
	// A failure here fails the whole ingestion, the transaction rolls back.
	alert := &entity.Alert{
		Id:            uuid.New(),
		ErrorLogId:    errorLog.Id.String(),
		ApplicationId: app.Id,
		Name:          app.Name,
		Message:       req.Message,
		AlertLevel:    level.AlertLevel(),
		AlertType:     entity.AlertTypeEmail,
		Recipients:    s.recipients,
		IsActive:      true,
		IsResolved:    false,
		CreatedAt:     time.Now(),
	}
	if err := uow.AlertRepository().Create(ctx, alert); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// 6. Notify, strictly after commit and never propagated.
	s.enqueueNotification(ctx, app, errorLog, alert)
	s.publishEvents(ctx, app, errorLog, alert)

	return &IngestResult{
		Outcome:  OutcomeStored,
		ErrorLog: errorLog,
		Alert:    alert,
	}, nil
}

// evict drops the oldest resolved logs once the application's total reaches
// MaxLogsPerApp, leaving at most KeepResolvedLogs resolved rows behind. Open
// logs are never touched.
func (s *errorLogService) evict(ctx context.Context, uow unitofwork.UnitOfWork, applicationId uuid.UUID) error {
	count, err := uow.ErrorLogRepository().CountByApplication(ctx, applicationId)
	if err != nil {
		return err
	}
	if count < int64(s.policy.MaxLogsPerApp) {
		return nil
	}

	resolved, err := uow.ErrorLogRepository().FindResolvedOldestFirst(ctx, applicationId)
	if err != nil {
		return err
	}
	if len(resolved) <= s.policy.KeepResolvedLogs {
		return nil
	}

	victims := resolved[:len(resolved)-s.policy.KeepResolvedLogs]
	ids := make([]uuid.UUID, len(victims))
	for i, victim := range victims {
		ids[i] = victim.Id
		if err := uow.AlertRepository().DeleteByErrorLogId(ctx, victim.Id.String()); err != nil {
			return err
		}
	}
	return uow.ErrorLogRepository().DeleteMany(ctx, ids)
}

func (s *errorLogService) enqueueNotification(ctx context.Context, app *entity.Application, errorLog *entity.ErrorLog, alert *entity.Alert) {
	if s.dispatcher == nil {
		return
	}
	msg := &notifier.AlertMessage{
		AlertId:       alert.Id.String(),
		ErrorLogId:    errorLog.Id.String(),
		ApplicationId: app.Id.String(),
		AppName:       app.Name,
		AlertLevel:    alert.AlertLevel,
		Message:       alert.Message,
		Endpoint:      errorLog.ApiEndpoint,
		Recipients:    alert.Recipients,
		CreatedAt:     alert.CreatedAt,
	}
	if err := s.dispatcher.Enqueue(ctx, msg); err != nil {
		s.logger.Error("ErrorLogService", "Failed to enqueue alert notification", map[string]interface{}{
			"alert_id": alert.Id,
			"error":    err.Error(),
		})
	}
}

func (s *errorLogService) publishEvents(ctx context.Context, app *entity.Application, errorLog *entity.ErrorLog, alert *entity.Alert) {
	if s.eventPublisher == nil {
		return
	}
	ingested := events.NewErrorIngested(errorLog.Id.String(), app.Id.String(), string(errorLog.Severity))
	if err := s.eventPublisher.Publish(ctx, ingested); err != nil {
		fmt.Printf("[WARN] Failed to publish ERROR_INGESTED event: %v\n", err)
	}
	raised := events.NewAlertRaised(alert.Id.String(), errorLog.Id.String(), app.Id.String(), alert.AlertLevel)
	if err := s.eventPublisher.Publish(ctx, raised); err != nil {
		fmt.Printf("[WARN] Failed to publish ALERT_RAISED event: %v\n", err)
	}
}

// Resolve flips an open log to resolved. Missing or already resolved ids
// report false, never an error.
func (s *errorLogService) Resolve(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ErrorLogRepository().Resolve(ctx, id, time.Now())
}

// Delete removes the log together with every alert whose error_log_id
// back-reference matches, as one transaction.
func (s *errorLogService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	if err := uow.AlertRepository().DeleteByErrorLogId(ctx, id.String()); err != nil {
		return false, err
	}
	deleted, err := uow.ErrorLogRepository().Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}
	return true, uow.Commit()
}

func (s *errorLogService) Show(ctx context.Context, id uuid.UUID) (*dto.ErrorLogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	errorLog, err := uow.ErrorLogRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if errorLog == nil {
		return nil, nil
	}
	return toErrorLogResponse(errorLog), nil
}

func (s *errorLogService) Index(ctx context.Context, applicationId *uuid.UUID, status *entity.ErrorStatus, limit, offset int) (*dto.ListErrorLogsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, total, err := uow.ErrorLogRepository().List(ctx, applicationId, status, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ErrorLogResponse, len(logs))
	for i, l := range logs {
		items[i] = *toErrorLogResponse(l)
	}
	return &dto.ListErrorLogsResponse{Items: items, Total: total}, nil
}

func toErrorLogResponse(l *entity.ErrorLog) *dto.ErrorLogResponse {
	return &dto.ErrorLogResponse{
		Id:            l.Id,
		ApplicationId: l.ApplicationId,
		Message:       l.Message,
		StackTrace:    l.StackTrace,
		ApiEndpoint:   l.ApiEndpoint,
		HttpMethod:    l.HttpMethod,
		UserAgent:     l.UserAgent,
		IpAddress:     l.IpAddress,
		Severity:      string(l.Severity),
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt,
		ResolvedAt:    l.ResolvedAt,
	}
}
