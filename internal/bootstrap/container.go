package bootstrap

import (
	"context"
	"log"
	"time"

	"errortrack-be/internal/config"
	"errortrack-be/internal/controller"
	"errortrack-be/internal/handler"
	"errortrack-be/internal/notifier"
	"errortrack-be/internal/pkg/logger"
	"errortrack-be/internal/pkg/mailer"
	"errortrack-be/internal/repository/memory"
	"errortrack-be/internal/repository/unitofwork"
	"errortrack-be/internal/service"
	"errortrack-be/internal/websocket"

	pktNats "errortrack-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	IngestController      controller.IIngestController
	ErrorLogController    controller.IErrorLogController
	AlertController       controller.IAlertController
	ApplicationController controller.IApplicationController
	AuthController        controller.IAuthController

	// Background workers (exposed for main.go to run)
	Dispatcher notifier.IDispatcher

	// WebSockets
	PushHandler  *handler.PushHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Notification dispatcher (bounded queue + worker)
	dispatcher := notifier.NewDispatcher(
		cfg.Alerting.QueueSize,
		emailService,
		wsHub,
		wsLogger,
		time.Duration(cfg.Alerting.EmailTimeoutSecs)*time.Second,
	)

	// 3. Services
	appCache := memory.NewApplicationCache()
	appService := service.NewApplicationService(uowFactory, appCache)

	errorLogService := service.NewErrorLogService(
		uowFactory,
		appService,
		dispatcher,
		natsPub,
		sysLogger,
		cfg.Alerting.Recipients,
		service.EvictionPolicy{
			MaxLogsPerApp:    cfg.Alerting.MaxLogsPerApp,
			KeepResolvedLogs: cfg.Alerting.KeepResolvedLogs,
		},
	)

	alertService := service.NewAlertService(uowFactory)
	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours, cfg.Auth.OTPTTLSeconds)

	// 4. Handlers & Controllers
	pushHandler := handler.NewPushHandler(wsHub, wsLogger)

	return &Container{
		IngestController:      controller.NewIngestController(errorLogService),
		ErrorLogController:    controller.NewErrorLogController(errorLogService),
		AlertController:       controller.NewAlertController(alertService),
		ApplicationController: controller.NewApplicationController(appService),
		AuthController:        controller.NewAuthController(authService),

		Dispatcher: dispatcher,

		PushHandler:  pushHandler,
		WebSocketHub: wsHub,
	}
}
