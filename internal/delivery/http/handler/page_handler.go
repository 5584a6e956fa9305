package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/nuclralert-dashboard/internal/delivery/http/middleware"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/usecase"
	"go.uber.org/zap"
)

// IntroContent - данные интро-страницы
type IntroContent struct {
	HeroImageURL string
	Tags         []Tag
	Overview     []string
	TechStack    []string
	Error        string
}

// WhyContent - данные страницы Why
type WhyContent struct {
	Incidents []Incident
	Help      []string
}

// PageHandler - интро и статические страницы
type PageHandler struct {
	renderer     *Renderer
	introUC      *usecase.IntroUseCase
	dashboardUC  *usecase.DashboardUseCase
	heroImageURL string
	clock        clockwork.Clock
	logger       *zap.Logger
}

// NewPageHandler - создание нового PageHandler
func NewPageHandler(
	renderer *Renderer,
	introUC *usecase.IntroUseCase,
	dashboardUC *usecase.DashboardUseCase,
	heroImageURL string,
	clock clockwork.Clock,
	logger *zap.Logger,
) *PageHandler {
	return &PageHandler{
		renderer:     renderer,
		introUC:      introUC,
		dashboardUC:  dashboardUC,
		heroImageURL: heroImageURL,
		clock:        clock,
		logger:       logger,
	}
}

func (h *PageHandler) Intro(c *fiber.Ctx) error {
	h.leaveDashboard(c)
	return h.renderIntro(c, "")
}

// Start - кнопка "Proceed to Dashboard": загрузить датасет и перейти на дашборд.
// При ошибке остаёмся на интро и показываем сообщение.
func (h *PageHandler) Start(c *fiber.Ctx) error {
	if _, err := h.introUC.Start(c.Context()); err != nil {
		return h.renderIntro(c, domain.HumanMessage(err))
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *PageHandler) Why(c *fiber.Ctx) error {
	h.leaveDashboard(c)
	return h.renderer.Render(c, fiber.StatusOK, PageWhy, h.page("Why NuclrAlert", "why", WhyContent{
		Incidents: GetIncidents(),
		Help:      GetHelpPoints(),
	}))
}

func (h *PageHandler) Working(c *fiber.Ctx) error {
	h.leaveDashboard(c)
	return h.renderer.Render(c, fiber.StatusOK, PageWorking, h.page("How it works", "working", GetSteps()))
}

func (h *PageHandler) About(c *fiber.Ctx) error {
	h.leaveDashboard(c)
	return h.renderer.Render(c, fiber.StatusOK, PageAbout, h.page("About", "about", GetValues()))
}

func (h *PageHandler) Safety(c *fiber.Ctx) error {
	h.leaveDashboard(c)
	return h.renderer.Render(c, fiber.StatusOK, PageSafety, h.page("Safety Guidelines", "safety", GetGuidelines()))
}

func (h *PageHandler) renderIntro(c *fiber.Ctx, errMsg string) error {
	return h.renderer.Render(c, fiber.StatusOK, PageIntro, h.page("Home", "home", IntroContent{
		HeroImageURL: h.heroImageURL,
		Tags:         GetFeatureTags(),
		Overview:     GetOverviewPoints(),
		TechStack:    GetTechStack(),
		Error:        errMsg,
	}))
}

func (h *PageHandler) page(title, active string, content interface{}) PageData {
	return PageData{
		Title:   title,
		Active:  active,
		Year:    h.clock.Now().Year(),
		Content: content,
	}
}

// leaveDashboard сбрасывает состояние дашборда при уходе на другую страницу
func (h *PageHandler) leaveDashboard(c *fiber.Ctx) {
	sid := middleware.SessionID(c)
	if sid == "" {
		return
	}
	if err := h.dashboardUC.Discard(c.Context(), sid); err != nil {
		h.logger.Warn("Failed to discard dashboard state",
			zap.String("session_id", sid),
			zap.Error(err))
	}
}
