package http

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nuclralert-dashboard/internal/config"
	"github.com/nuclralert-dashboard/internal/delivery/http/handler"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/repository/memory"
	"github.com/nuclralert-dashboard/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// staticBackend - бэкенд, который всегда отдаёт пустые данные
type staticBackend struct{}

func (staticBackend) LoadData(context.Context) (*domain.LoadSummary, error) {
	return &domain.LoadSummary{Success: true}, nil
}

func (staticBackend) GetData(context.Context) (*domain.DashboardSnapshot, error) {
	return &domain.DashboardSnapshot{}, nil
}

func (staticBackend) MapURL(string) string { return "" }
func (staticBackend) DownloadURL() string { return "http://backend/download_processed" }
func (staticBackend) CheckHealth(context.Context) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			Env:         "test",
			CORSOrigins: "http://localhost:3000",
		},
		Backend: config.BackendConfig{Timeout: time.Second},
		Session: config.SessionConfig{CookieName: "nuclr_session", TTL: time.Minute, Store: "memory"},
	}

	logger := zap.NewNop()
	clock := clockwork.NewFakeClock()
	backend := staticBackend{}
	states := memory.NewStateRepository(time.Minute, clock)
	dashboardUC := usecase.NewDashboardUseCase(backend, states, nil, clock, nil, logger)
	introUC := usecase.NewIntroUseCase(backend, logger)

	renderer, err := handler.NewRenderer()
	require.NoError(t, err)

	return NewServer(cfg, logger,
		handler.NewPageHandler(renderer, introUC, dashboardUC, "", clock, logger),
		handler.NewDashboardHandler(renderer, dashboardUC, clock, logger),
		handler.NewAPIHandler(dashboardUC, introUC, backend, nil, "test", logger),
	)
}

func TestServer_CatchAllRedirectsToIntro(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/nope", "/dashboard/extra", "/static/whatever.css"} {
		t.Run(path, func(t *testing.T) {
			resp, err := s.App().Test(httptest.NewRequest(nethttp.MethodGet, path, nil))
			require.NoError(t, err)
			assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
			assert.Equal(t, "/", resp.Header.Get("Location"))
		})
	}
}

func TestServer_UnknownAPIPathIsJSON404(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/nope", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), `"code":"NOT_FOUND"`)
}

func TestServer_KnownRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{nethttp.MethodGet, "/", nethttp.StatusOK},
		{nethttp.MethodGet, "/why", nethttp.StatusOK},
		{nethttp.MethodGet, "/working", nethttp.StatusOK},
		{nethttp.MethodGet, "/about", nethttp.StatusOK},
		{nethttp.MethodGet, "/safety", nethttp.StatusOK},
		{nethttp.MethodGet, "/dashboard", nethttp.StatusOK},
		{nethttp.MethodPost, "/start", nethttp.StatusSeeOther},
		{nethttp.MethodPost, "/dashboard/reload", nethttp.StatusSeeOther},
		{nethttp.MethodGet, "/api/v1/health", nethttp.StatusOK},
		{nethttp.MethodGet, "/api/v1/ready", nethttp.StatusOK},
		{nethttp.MethodGet, "/metrics", nethttp.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := s.App().Test(httptest.NewRequest(tt.method, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestServer_CORSOnAPI(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := s.App().Test(req)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
