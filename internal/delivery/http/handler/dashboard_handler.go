package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/nuclralert-dashboard/internal/delivery/http/middleware"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/pkg/validator"
	"github.com/nuclralert-dashboard/internal/usecase"
	"github.com/nuclralert-dashboard/internal/usecase/dto"
	"go.uber.org/zap"
)

// loadingRefreshSeconds - как часто страница перезапрашивает себя, пока идёт загрузка
const loadingRefreshSeconds = 2

// DashboardHandler - HTML дашборд
type DashboardHandler struct {
	renderer    *Renderer
	dashboardUC *usecase.DashboardUseCase
	clock       clockwork.Clock
	logger      *zap.Logger
}

// NewDashboardHandler - создание нового DashboardHandler
func NewDashboardHandler(
	renderer *Renderer,
	dashboardUC *usecase.DashboardUseCase,
	clock clockwork.Clock,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		renderer:    renderer,
		dashboardUC: dashboardUC,
		clock:       clock,
		logger:      logger,
	}
}

// Show - GET /dashboard: при первом открытии запускает загрузку, дальше показывает состояние
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	query := h.parseQuery(c)
	sid := middleware.SessionID(c)

	state, err := h.dashboardUC.Mount(c.Context(), sid)
	if err != nil {
		h.logger.Error("Dashboard mount failed", zap.String("session_id", sid), zap.Error(err))
		state = &domain.DashboardState{Status: domain.StatusError, Error: "Unable to load data"}
	}

	view := h.dashboardUC.View(state, query)
	data := PageData{
		Title:   "Dashboard",
		Active:  "dashboard",
		Year:    h.clock.Now().Year(),
		Content: view,
	}
	if view.Loading() {
		data.Refresh = loadingRefreshSeconds
	}
	return h.renderer.Render(c, fiber.StatusOK, PageDashboard, data)
}

// Reload - POST /dashboard/reload: ручная перезагрузка, затем обратно на дашборд (PRG)
func (h *DashboardHandler) Reload(c *fiber.Ctx) error {
	query := h.parseQuery(c)
	sid := middleware.SessionID(c)

	if _, err := h.dashboardUC.Refresh(c.Context(), sid); err != nil {
		h.logger.Error("Dashboard reload failed", zap.String("session_id", sid), zap.Error(err))
	}

	target := "/dashboard?tab=" + url.QueryEscape(string(usecase.ParseTab(query.Tab)))
	return c.Redirect(target, fiber.StatusSeeOther)
}

// parseQuery читает tab и q; некорректные параметры заменяются значениями по умолчанию
func (h *DashboardHandler) parseQuery(c *fiber.Ctx) dto.DashboardQuery {
	var query dto.DashboardQuery
	if err := c.QueryParser(&query); err != nil {
		h.logger.Debug("Invalid dashboard query", zap.Error(err))
		return dto.DashboardQuery{}
	}
	if err := validator.Validate(&query); err != nil {
		h.logger.Debug("Invalid dashboard query", zap.Error(err))
		return dto.DashboardQuery{}
	}
	return query
}
