package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/nuclralert-dashboard/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Страницы, которые умеет рендерить Renderer
const (
	PageIntro     = "intro"
	PageWhy       = "why"
	PageWorking   = "working"
	PageAbout     = "about"
	PageSafety    = "safety"
	PageDashboard = "dashboard"
)

var pages = []string{PageIntro, PageWhy, PageWorking, PageAbout, PageSafety, PageDashboard}

// PageData - общие данные layout плюс контент конкретной страницы
type PageData struct {
	Title   string
	Active  string
	Year    int
	Nav     []NavItem
	Refresh int // секунды до авто-обновления, 0 - без обновления
	Content interface{}
}

// Renderer держит по одному набору шаблонов на страницу (layout + страница)
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer парсит встроенные шаблоны
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"inc":         func(i int) int { return i + 1 },
		"safetyColor": func(s domain.Safety) string { return s.Color() },
	}

	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", page, err)
		}
		if _, err := tmpl.ParseFS(templateFS, "templates/"+page+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render выполняет шаблон в буфер и отдаёт HTML; при ошибке шаблона ничего не пишет
func (r *Renderer) Render(c *fiber.Ctx, status int, page string, data PageData) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if data.Nav == nil {
		data.Nav = GetNavItems()
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Status(status).Send(buf.Bytes())
}
