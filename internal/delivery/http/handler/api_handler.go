package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/nuclralert-dashboard/internal/delivery/http/middleware"
	"github.com/nuclralert-dashboard/internal/domain/repository"
	apperrors "github.com/nuclralert-dashboard/internal/pkg/errors"
	"github.com/nuclralert-dashboard/internal/pkg/utils"
	"github.com/nuclralert-dashboard/internal/pkg/validator"
	"github.com/nuclralert-dashboard/internal/usecase"
	"github.com/nuclralert-dashboard/internal/usecase/dto"
	"go.uber.org/zap"
)

// HealthChecker - зависимость, которую проверяет /ready
type HealthChecker interface {
	Health(ctx context.Context) error
}

// APIHandler - JSON API поверх тех же use case, что и HTML страницы
type APIHandler struct {
	dashboardUC *usecase.DashboardUseCase
	introUC     *usecase.IntroUseCase
	backend     repository.BackendRepository
	checks      map[string]HealthChecker
	version     string
	logger      *zap.Logger
}

// NewAPIHandler - создание нового APIHandler. checks - дополнительные зависимости для /ready (Redis).
func NewAPIHandler(
	dashboardUC *usecase.DashboardUseCase,
	introUC *usecase.IntroUseCase,
	backend repository.BackendRepository,
	checks map[string]HealthChecker,
	version string,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		dashboardUC: dashboardUC,
		introUC:     introUC,
		backend:     backend,
		checks:      checks,
		version:     version,
		logger:      logger,
	}
}

// Health godoc
// @Summary Liveness
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Router /api/v1/health [get]
func (h *APIHandler) Health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.HealthResponse{
		Status:  "healthy",
		Version: h.version,
	}, nil)
}

// Ready godoc
// @Summary Readiness: бэкенд NuclrAlert и хранилища доступны
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Failure 503 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Router /api/v1/ready [get]
func (h *APIHandler) Ready(c *fiber.Ctx) error {
	ctx := c.Context()
	resp := dto.HealthResponse{
		Status:  "ready",
		Checks:  map[string]string{"backend": "ok"},
		Version: h.version,
	}

	if err := h.backend.CheckHealth(ctx); err != nil {
		resp.Checks["backend"] = err.Error()
		resp.Status = "unavailable"
	}
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "unavailable"
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Status != "ready" {
		h.logger.Warn("Readiness check failed", zap.Any("checks", resp.Checks))
		c.Status(fiber.StatusServiceUnavailable)
	}
	return utils.SendSuccess(c, resp, nil)
}

// GetDashboard godoc
// @Summary Текущее состояние дашборда посетителя
// @Description Возвращает состояние без запуска загрузки (для поллинга)
// @Tags Dashboard
// @Produce json
// @Param tab query string false "Вкладка (alerts, map, data)" default(alerts)
// @Param q query string false "Поиск по имени станции"
// @Success 200 {object} utils.SuccessResponse{data=dto.DashboardView}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/dashboard [get]
func (h *APIHandler) GetDashboard(c *fiber.Ctx) error {
	query, err := parseAPIQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	state, err := h.dashboardUC.State(c.Context(), middleware.SessionID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	view := h.dashboardUC.View(state, query)
	return utils.SendSuccess(c, view, &utils.Meta{Total: view.MatchedPlants})
}

// ReloadDashboard godoc
// @Summary Перезагрузить дашборд
// @Description Запускает загрузку снапшота; ошибки бэкенда отражаются в поле error состояния
// @Tags Dashboard
// @Produce json
// @Param tab query string false "Вкладка (alerts, map, data)" default(alerts)
// @Param q query string false "Поиск по имени станции"
// @Success 200 {object} utils.SuccessResponse{data=dto.DashboardView}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/dashboard/reload [post]
func (h *APIHandler) ReloadDashboard(c *fiber.Ctx) error {
	query, err := parseAPIQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	state, err := h.dashboardUC.Refresh(c.Context(), middleware.SessionID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	view := h.dashboardUC.View(state, query)
	return utils.SendSuccess(c, view, &utils.Meta{Total: view.MatchedPlants})
}

// Start godoc
// @Summary Загрузить датасет на бэкенде
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StartResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/start [post]
func (h *APIHandler) Start(c *fiber.Ctx) error {
	summary, err := h.introUC.Start(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.StartResponse{
		Summary:  summary,
		Redirect: "/dashboard",
	}, nil)
}

func parseAPIQuery(c *fiber.Ctx) (dto.DashboardQuery, error) {
	var query dto.DashboardQuery
	if err := c.QueryParser(&query); err != nil {
		return query, apperrors.ErrInvalidRequest.WithMessage(err.Error())
	}
	if err := validator.Validate(&query); err != nil {
		return query, err
	}
	return query, nil
}
