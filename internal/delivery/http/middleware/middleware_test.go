package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newSessionApp() *fiber.App {
	app := fiber.New()
	app.Use(Session("nuclr_session", 30*time.Minute, false))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(SessionID(c))
	})
	return app
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "nuclr_session" {
			return c
		}
	}
	return nil
}

func TestSession_IssuesCookie(t *testing.T) {
	app := newSessionApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	_, err = uuid.Parse(cookie.Value)
	assert.NoError(t, err)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 1800, cookie.MaxAge)
}

func TestSession_KeepsValidCookie(t *testing.T) {
	app := newSessionApp()
	sid := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "nuclr_session", Value: sid})
	resp, err := app.Test(req)
	require.NoError(t, err)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, sid, cookie.Value)
}

func TestSession_ReplacesForgedCookie(t *testing.T) {
	app := newSessionApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "nuclr_session", Value: "not-a-uuid"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.NotEqual(t, "not-a-uuid", cookie.Value)
}

func TestLogger_LogsRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	app := fiber.New()
	app.Use(Logger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.EqualValues(t, 404, entries[1].ContextMap()["status"])
}

func TestRecovery_ConvertsPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New()
	app.Use(Recovery(zap.New(core)))
	app.Use(Session("nuclr_session", 30*time.Minute, false))
	app.Get("/dashboard", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	entries := logs.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/dashboard", fields["path"])
	assert.Equal(t, "boom", fields["panic"])
	assert.NotEmpty(t, fields["session_id"])
}
