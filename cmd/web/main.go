package main

// @title NuclrAlert Web API
// @version 1.0.0
// @description Серверный дашборд NuclrAlert: близость к атомным станциям, тревоги и справочные страницы.
// @description JSON API повторяет HTML дашборд и нужен для поллинга и интеграций.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	_ "github.com/nuclralert-dashboard/docs"
	"github.com/nuclralert-dashboard/internal/config"
	httpDelivery "github.com/nuclralert-dashboard/internal/delivery/http"
	"github.com/nuclralert-dashboard/internal/delivery/http/handler"
	"github.com/nuclralert-dashboard/internal/domain/repository"
	"github.com/nuclralert-dashboard/internal/infrastructure/backend"
	"github.com/nuclralert-dashboard/internal/observability"
	"github.com/nuclralert-dashboard/internal/pkg/logger"
	"github.com/nuclralert-dashboard/internal/repository/cache"
	kafkaRepo "github.com/nuclralert-dashboard/internal/repository/kafka"
	"github.com/nuclralert-dashboard/internal/repository/memory"
	redisRepo "github.com/nuclralert-dashboard/internal/repository/redis"
	"github.com/nuclralert-dashboard/internal/usecase"
	"github.com/nuclralert-dashboard/internal/worker"
	"github.com/nuclralert-dashboard/internal/worker/alert"
	"github.com/nuclralert-dashboard/internal/worker/session"
	"go.uber.org/zap"
)

const (
	version = "1.0.0"

	// сколько записей держит стрим тревог
	alertStreamMaxLen = 10000
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting NuclrAlert web")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("state_store", cfg.Session.Store),
		zap.String("notifier", cfg.Notifier.Kind),
	)

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()
	workerManager := worker.NewWorkerManager(log)
	checks := map[string]handler.HealthChecker{}

	// 3. Connect to Redis (только если он нужен)
	var redisClient *cache.Redis
	if cfg.UsesRedis() {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		checks["redis"] = redisClient
		log.Info("Redis connected")
	}

	// 4. Initialize Repositories
	backendClient := backend.NewClient(&cfg.Backend, metrics, log)

	var states repository.DashboardStateRepository
	switch cfg.Session.Store {
	case "redis":
		states = cache.NewStateRepository(redisClient, cfg.Session.TTL, clock)
	default:
		memStates := memory.NewStateRepository(cfg.Session.TTL, clock)
		workerManager.Register(session.NewSweeperWorker(memStates, time.Minute, clock, log))
		states = memStates
	}

	var publisher repository.AlertPublisher
	switch cfg.Notifier.Kind {
	case "redis":
		streams := redisRepo.NewStreamRepository(redisClient.Client(), alertStreamMaxLen, log)
		publisher = redisRepo.NewAlertPublisher(streams, cfg.Notifier.AlertStream)
	case "kafka":
		publisher = kafkaRepo.NewAlertWriter(&cfg.Notifier, log)
	}

	log.Info("Repositories initialized")

	// 5. Initialize Use Cases
	var notifier usecase.AlertNotifier
	if publisher != nil {
		notificationWorker := alert.NewNotificationWorker(publisher, cfg.Notifier.QueueSize, metrics, log)
		workerManager.Register(notificationWorker)
		notifier = notificationWorker
	}

	dashboardUC := usecase.NewDashboardUseCase(backendClient, states, notifier, clock, metrics, log)
	dashboardUC.SetStaleLoadingAfter(cfg.Session.StaleLoadingAfter)
	introUC := usecase.NewIntroUseCase(backendClient, log)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	renderer, err := handler.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	pageHandler := handler.NewPageHandler(renderer, introUC, dashboardUC, cfg.Content.HeroImageURL, clock, log)
	dashboardHandler := handler.NewDashboardHandler(renderer, dashboardUC, clock, log)
	apiHandler := handler.NewAPIHandler(dashboardUC, introUC, backendClient, checks, version, log)

	log.Info("HTTP handlers initialized")

	// 7. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis-стор без нотификатора обходится без воркеров
	if workerManager.Len() > 0 {
		if err := workerManager.Start(ctx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 8. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, pageHandler, dashboardHandler, apiHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
		zap.Int("workers", workerManager.Len()),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Сначала HTTP, чтобы новые тревоги перестали поступать
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	cancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
