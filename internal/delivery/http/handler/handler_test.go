package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/nuclralert-dashboard/internal/delivery/http/handler"
	"github.com/nuclralert-dashboard/internal/delivery/http/middleware"
	"github.com/nuclralert-dashboard/internal/domain"
	"github.com/nuclralert-dashboard/internal/repository/memory"
	"github.com/nuclralert-dashboard/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	cookieName = "nuclr_session"
	sessionID  = "8f14e45f-ceea-4e7a-9f1a-2f5c6b1d0a11"
)

type MockBackendRepository struct {
	mock.Mock
}

func (m *MockBackendRepository) LoadData(ctx context.Context) (*domain.LoadSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadSummary), args.Error(1)
}

func (m *MockBackendRepository) GetData(ctx context.Context) (*domain.DashboardSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSnapshot), args.Error(1)
}

func (m *MockBackendRepository) MapURL(filename string) string {
	if filename == "" {
		return ""
	}
	return "http://backend/static/maps/" + filename
}

func (m *MockBackendRepository) DownloadURL() string {
	return "http://backend/download_processed"
}

func (m *MockBackendRepository) CheckHealth(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type stubChecker struct {
	err error
}

func (s stubChecker) Health(context.Context) error {
	return s.err
}

type fixture struct {
	app     *fiber.App
	backend *MockBackendRepository
	states  *memory.StateRepository
}

func newFixture(t *testing.T, checks map[string]handler.HealthChecker) *fixture {
	t.Helper()

	logger := zap.NewNop()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	backend := new(MockBackendRepository)
	states := memory.NewStateRepository(30*time.Minute, clock)

	dashboardUC := usecase.NewDashboardUseCase(backend, states, nil, clock, nil, logger)
	introUC := usecase.NewIntroUseCase(backend, logger)

	renderer, err := handler.NewRenderer()
	require.NoError(t, err)

	pages := handler.NewPageHandler(renderer, introUC, dashboardUC, "/static/hero.jpg", clock, logger)
	dashboard := handler.NewDashboardHandler(renderer, dashboardUC, clock, logger)
	api := handler.NewAPIHandler(dashboardUC, introUC, backend, checks, "test", logger)

	app := fiber.New()
	app.Use(middleware.Session(cookieName, 30*time.Minute, false))
	app.Get("/", pages.Intro)
	app.Post("/start", pages.Start)
	app.Get("/why", pages.Why)
	app.Get("/working", pages.Working)
	app.Get("/about", pages.About)
	app.Get("/safety", pages.Safety)
	app.Get("/dashboard", dashboard.Show)
	app.Post("/dashboard/reload", dashboard.Reload)
	app.Get("/api/v1/health", api.Health)
	app.Get("/api/v1/ready", api.Ready)
	app.Post("/api/v1/start", api.Start)
	app.Get("/api/v1/dashboard", api.GetDashboard)
	app.Post("/api/v1/dashboard/reload", api.ReloadDashboard)

	return &fixture{app: app, backend: backend, states: states}
}

func (f *fixture) do(t *testing.T, method, target string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: sessionID})

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func snapshot() *domain.DashboardSnapshot {
	return &domain.DashboardSnapshot{
		Plants: []domain.PlantRecord{
			{Name: "Indian Point", Latitude: 41.27, Longitude: -73.95, Age: 49, Safety: domain.SafetyDangerous},
			{Name: "Vogtle", Latitude: 33.14, Longitude: -81.76, Age: 3, Safety: domain.SafetySafe},
			{Name: "Palo Verde", Latitude: 33.39, Longitude: -112.86, Age: 38, Safety: domain.SafetyModerate},
		},
		Distances: []domain.DistanceRecord{
			{Name: "Vogtle", Age: 3, Safety: domain.SafetySafe, Distance: 812.3},
			{Name: "Indian Point", Age: 49, Safety: domain.SafetyDangerous, Distance: 42.1},
		},
		DangerousZones: []string{"Indian Point"},
		MapFilename:    "map 1.html",
	}
}

func TestPages_RenderStaticContent(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		path     string
		contains []string
	}{
		{"/why", []string{"Chernobyl (1986)", "How NuclrAlert helps"}},
		{"/working", []string{"Compute distances", "Notify &amp; guide"}},
		{"/about", []string{"Clarity:", "Transparency:"}},
		{"/safety", []string{"Know evacuation routes"}},
		{"/", []string{"Proceed to Dashboard", "View Dashboard", "/static/hero.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := f.do(t, http.MethodGet, tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
			assert.Contains(t, body, "© 2026 NuclrAlert – Educational nuclear safety awareness tool.")
			assert.Contains(t, body, "Always follow official guidance from your local authorities.")
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
		})
	}
}

func TestPages_HighlightActiveNavItem(t *testing.T) {
	f := newFixture(t, nil)

	_, body := f.do(t, http.MethodGet, "/safety")
	assert.Contains(t, body, `<a href="/safety" class="active">Safety</a>`)
	assert.NotContains(t, body, `<a href="/why" class="active">`)
}

func TestPages_StaticPageDiscardsDashboardState(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetData", mock.Anything).Return(snapshot(), nil).Once()

	resp, _ := f.do(t, http.MethodGet, "/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, f.states.Len())

	f.do(t, http.MethodGet, "/about")
	state, err := f.states.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, domain.StatusIdle, state.Status)
	assert.Nil(t, state.Snapshot)
	assert.False(t, state.Mounted())

	// Повторный вход снова загружает данные
	f.backend.On("GetData", mock.Anything).Return(snapshot(), nil).Once()
	_, body := f.do(t, http.MethodGet, "/dashboard")
	assert.Contains(t, body, "Indian Point")
	f.backend.AssertNumberOfCalls(t, "GetData", 2)
}

func TestStart_RedirectsToDashboard(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("LoadData", mock.Anything).Return(&domain.LoadSummary{Success: true, TotalPlants: 3}, nil).Once()

	resp, _ := f.do(t, http.MethodPost, "/start")

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	f.backend.AssertExpectations(t)
}

func TestStart_FailureStaysOnIntro(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("LoadData", mock.Anything).
		Return(nil, domain.NewStatusError("load_data", 500, "Error processing data: boom")).Once()

	resp, body := f.do(t, http.MethodPost, "/start")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.Contains(t, body, "Error processing data: boom")
	assert.Contains(t, body, "Proceed to Dashboard")
}

func TestDashboard_ShowsLoadedSnapshot(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetData", mock.Anything).Return(snapshot(), nil).Once()

	resp, body := f.do(t, http.MethodGet, "/dashboard")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<h2 id="total">3</h2>`)
	assert.Contains(t, body, "HIGH RADIATION ALERT")
	assert.Contains(t, body, "Within 50km of 1 dangerous plants: Indian Point")
	assert.Contains(t, body, "42.10 km")
	assert.Contains(t, body, "812.30 km")
	assert.NotContains(t, body, `http-equiv="refresh"`)
	f.backend.AssertExpectations(t)
}

func TestDashboard_SecondVisitDoesNotRefetch(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetData", mock.Anything).Return(snapshot(), nil).Once()

	f.do(t, http.MethodGet, "/dashboard")
	resp, body := f.do(t, http.MethodGet, "/dashboard?tab=data")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Nuclear Plant Database")
	f.backend.AssertNumberOfCalls(t, "GetData", 1)
}

func TestDashboard_Tabs(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetData", mock.Anything).Return(snapshot(), nil).Once()

	t.Run("map", func(t *testing.T) {
		_, body := f.do(t, http.MethodGet, "/dashboard?tab=map")
		assert.Contains(t, body, `src="http://backend/static/maps/map%201.html"`)
	})

	t.Run("data with search", func(t *testing.T) {
		_, body := f.do(t, http.MethodGet, "/dashboard?tab=data&q=VOG")
		assert.Contains(t, body, "<td>Vogtle</td>")
		assert.NotContains(t, body, "<td>Indian Point</td>")
		assert.Contains(t, body, "http://backend/download_processed")
	})

	t.Run("data without matches", func(t *testing.T) {
		_, body := f.do(t, http.MethodGet, "/dashboard?tab=data&q=zzz")
		assert.Contains(t, body, "No plants available.")
	})

	t.Run("unknown tab falls back to alerts", func(t *testing.T) {
		_, body := f.do(t, http.MethodGet, "/dashboard?tab=bogus")
		assert.Contains(t, body, "Current Radiation Status")
	})
}

func TestDashboard_EmptySnapshotPlaceholders(t *testing.T) {
	f := newFixture(t, nil)
	empty := &domain.DashboardSnapshot{}
	f.backend.On("GetData", mock.Anything).Return(empty, nil).Twice()
	f.backend.On("LoadData", mock.Anything).Return(&domain.LoadSummary{Success: true}, nil).Once()

	_, body := f.do(t, http.MethodGet, "/dashboard")
	assert.Contains(t, body, "Clear Area")
	assert.Contains(t, body, "No nearby plants detected within range.")

	_, body = f.do(t, http.MethodGet, "/dashboard?tab=map")
	assert.Contains(t, body, "Map will appear once data is loaded.")
	assert.NotContains(t, body, "<iframe")
	f.backend.AssertExpectations(t)
}

func TestDashboard_ErrorIsShown(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetData", mock.Anything).
		Return(nil, domain.NewStatusError("get_data", 502, "")).Once()

	resp, body := f.do(t, http.MethodGet, "/dashboard")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "get_data: backend returned status 502")
	assert.NotContains(t, body, `id="total"`)
}

func TestDashboard_ReloadRedirectsKeepingTab(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetData", mock.Anything).Return(snapshot(), nil).Twice()

	f.do(t, http.MethodGet, "/dashboard")
	resp, _ := f.do(t, http.MethodPost, "/dashboard/reload?tab=map")

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard?tab=map", resp.Header.Get("Location"))
	f.backend.AssertNumberOfCalls(t, "GetData", 2)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, body string) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return env
}

func TestAPI_Health(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.do(t, http.MethodGet, "/api/v1/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy","version":"test"}`, string(decode(t, body).Data))
}

func TestAPI_Ready(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		f := newFixture(t, map[string]handler.HealthChecker{"redis": stubChecker{}})
		f.backend.On("CheckHealth", mock.Anything).Return(nil)

		resp, body := f.do(t, http.MethodGet, "/api/v1/ready")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"redis":"ok"`)
	})

	t.Run("backend down", func(t *testing.T) {
		f := newFixture(t, nil)
		f.backend.On("CheckHealth", mock.Anything).
			Return(domain.NewNetworkError("health", assert.AnError))

		resp, body := f.do(t, http.MethodGet, "/api/v1/ready")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Contains(t, body, `"status":"unavailable"`)
	})
}

func TestAPI_DashboardStateHasNoSideEffects(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.do(t, http.MethodGet, "/api/v1/dashboard")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(decode(t, body).Data), `"status":"idle"`)
	f.backend.AssertNotCalled(t, "GetData", mock.Anything)
}

func TestAPI_ReloadDashboard(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetData", mock.Anything).Return(snapshot(), nil).Once()

	resp, body := f.do(t, http.MethodPost, "/api/v1/dashboard/reload?tab=data&q=point")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		Status string `json:"status"`
		Tab    string `json:"tab"`
		Totals struct {
			Total     int `json:"total"`
			Dangerous int `json:"dangerous"`
		} `json:"totals"`
		MatchedPlants int `json:"matched_plants"`
	}
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &view))
	assert.Equal(t, "loaded", view.Status)
	assert.Equal(t, "data", view.Tab)
	assert.Equal(t, 3, view.Totals.Total)
	assert.Equal(t, 1, view.Totals.Dangerous)
	assert.Equal(t, 1, view.MatchedPlants)
}

func TestAPI_InvalidQuery(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.do(t, http.MethodGet, "/api/v1/dashboard?tab=averyveryverylongtabname")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", decode(t, body).Error.Code)
}

func TestAPI_StartFailureMapsToBadGateway(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("LoadData", mock.Anything).
		Return(nil, domain.NewNetworkError("load_data", assert.AnError)).Once()

	resp, body := f.do(t, http.MethodPost, "/api/v1/start")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "BACKEND_UNAVAILABLE", decode(t, body).Error.Code)
}
