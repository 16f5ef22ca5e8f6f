package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	clientapp "github.com/whizdome/promorama-backend/internal/application/client"
	identityapp "github.com/whizdome/promorama-backend/internal/application/identity"
	initiativeapp "github.com/whizdome/promorama-backend/internal/application/initiative"
	messagingapp "github.com/whizdome/promorama-backend/internal/application/messaging"
	notificationapp "github.com/whizdome/promorama-backend/internal/application/notification"
	reportingapp "github.com/whizdome/promorama-backend/internal/application/reporting"
	"github.com/whizdome/promorama-backend/internal/infrastructure/auth"
	"github.com/whizdome/promorama-backend/internal/infrastructure/config"
	"github.com/whizdome/promorama-backend/internal/infrastructure/logger"
	"github.com/whizdome/promorama-backend/internal/infrastructure/persistence"
	"github.com/whizdome/promorama-backend/internal/infrastructure/push"
	"github.com/whizdome/promorama-backend/internal/infrastructure/realtime"
	"github.com/whizdome/promorama-backend/internal/infrastructure/task"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/handler"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer log.Sync() //nolint:errcheck

	log.Info("starting promorama backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Repositories
	clients := persistence.NewGormClientRepository(db.DB)
	subusers := persistence.NewGormSubuserRepository(db.DB)
	initiatives := persistence.NewGormInitiativeRepository(db.DB)
	initiativeStores := persistence.NewGormInitiativeStoreRepository(db.DB)
	employees := persistence.NewGormEmployeeRepository(db.DB)
	messages := persistence.NewGormMessageRepository(db.DB)
	tasks := persistence.NewGormTaskRepository(db.DB)
	reports := persistence.NewGormReportRepository(db.DB)
	winners := persistence.NewGormGameWinnerRepository(db.DB)
	notifications := persistence.NewGormNotificationRepository(db.DB)
	deviceTokens := persistence.NewGormDeviceTokenRepository(db.DB)
	users := persistence.NewGormUserRepository(db.DB)

	// Background fan-out
	dispatcher := task.NewDispatcher(cfg.Notification.Workers, cfg.Notification.QueueSize, log)
	dispatcher.Start()
	defer dispatcher.Stop()

	gateway := realtime.NewRedisGateway(redisClient, log)
	pushProvider := push.NewHTTPProvider(cfg.Push.Endpoint, cfg.Push.APIKey, log)
	fanout := notificationapp.NewFanout(notifications, deviceTokens, gateway, pushProvider, dispatcher, log)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(users, jwtService, log)
	clientService := clientapp.NewService(clients, log)
	subuserService := clientapp.NewSubuserService(subusers, clients, log)
	initiativeService := initiativeapp.NewService(initiatives, initiativeStores, clients, employees, log)
	messageService := messagingapp.NewMessageService(messages, initiativeStores, initiatives, users, fanout, log)
	taskService := messagingapp.NewTaskService(tasks, users, fanout, log)
	reportService := reportingapp.NewReportService(reports, log)
	winnerService := reportingapp.NewGameWinnerService(winners, log)
	notificationService := notificationapp.NewService(notifications, deviceTokens, log)

	// Expiry sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go runSweeper(sweepCtx, notificationService, cfg.Notification.SweepInterval)

	engine := router.NewRouter(cfg.HTTP, jwtService, log).
		Public(
			handler.NewAuthHandler(authService),
		).
		Protected(
			handler.NewClientHandler(clientService, subuserService, clients),
			handler.NewInitiativeHandler(initiativeService, initiatives),
			handler.NewReportHandler(reportService, reports),
			handler.NewGameWinnerHandler(winnerService, winners),
			handler.NewMessageHandler(messageService, messages),
			handler.NewTaskHandler(taskService, tasks),
			handler.NewNotificationHandler(notificationService),
		).
		Build()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

// runSweeper purges expired notifications and device tokens on a timer
func runSweeper(ctx context.Context, svc *notificationapp.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.SweepExpired(ctx)
		}
	}
}
