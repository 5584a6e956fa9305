package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/nuclralert-dashboard/internal/config"
	"github.com/nuclralert-dashboard/internal/delivery/http/handler"
	"github.com/nuclralert-dashboard/internal/delivery/http/middleware"
	apperrors "github.com/nuclralert-dashboard/internal/pkg/errors"
	"github.com/nuclralert-dashboard/internal/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	pageHandler      *handler.PageHandler
	dashboardHandler *handler.DashboardHandler
	apiHandler       *handler.APIHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	pageHandler *handler.PageHandler,
	dashboardHandler *handler.DashboardHandler,
	apiHandler *handler.APIHandler,
) *Server {
	// Загрузка дашборда синхронная и может ждать бэкенд до BACKEND_TIMEOUT (дважды при lazy-init)
	writeTimeout := 2*cfg.Backend.Timeout + 10*time.Second

	app := fiber.New(fiber.Config{
		AppName:      "NuclrAlert",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		pageHandler:      pageHandler,
		dashboardHandler: dashboardHandler,
		apiHandler:       apiHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Session(s.config.Session.CookieName, s.config.Session.TTL, s.config.IsProduction()))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Pages
	s.app.Get("/", s.pageHandler.Intro)
	s.app.Post("/start", s.pageHandler.Start)
	s.app.Get("/why", s.pageHandler.Why)
	s.app.Get("/working", s.pageHandler.Working)
	s.app.Get("/about", s.pageHandler.About)
	s.app.Get("/safety", s.pageHandler.Safety)
	s.app.Get("/dashboard", s.dashboardHandler.Show)
	s.app.Post("/dashboard/reload", s.dashboardHandler.Reload)

	api := s.app.Group("/api/v1", middleware.CORS(s.config.Server.CORSOrigins))

	// Health check
	api.Get("/health", s.apiHandler.Health)
	api.Get("/ready", s.apiHandler.Ready)

	// Dashboard
	api.Post("/start", s.apiHandler.Start)
	api.Get("/dashboard", s.apiHandler.GetDashboard)
	api.Post("/dashboard/reload", s.apiHandler.ReloadDashboard)

	// Неизвестные API пути - JSON 404, остальные страницы - на интро
	api.All("/*", func(c *fiber.Ctx) error {
		return apperrors.ErrNotFound
	})
	s.app.Get("/*", func(c *fiber.Ctx) error {
		return c.Redirect("/", fiber.StatusFound)
	})
}

// App - доступ к fiber.App (тесты)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.AppError
		if !stderrors.As(err, &appErr) {
			appErr = apperrors.ErrInternalServer
			var fe *fiber.Error
			if stderrors.As(err, &fe) {
				appErr = apperrors.New(codeForStatus(fe.Code), fe.Message, fe.Code)
			}
		}

		fields := []zap.Field{
			zap.String("path", c.Path()),
			zap.Int("status", appErr.StatusCode),
			zap.Error(err),
		}
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error", fields...)
		} else {
			logger.Debug("HTTP Error", fields...)
		}

		return c.Status(appErr.StatusCode).JSON(utils.ErrorResponse{Error: appErr})
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return apperrors.ErrNotFound.Code
	case fiber.StatusBadRequest:
		return apperrors.ErrInvalidRequest.Code
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	if status >= fiber.StatusInternalServerError {
		return apperrors.ErrInternalServer.Code
	}
	return "HTTP_ERROR"
}
