package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio/internal/pkg/jwt"
	"portfolio/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(t *testing.T) (*fiber.App, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	app := fiber.New()
	app.Use(NewErrorMiddleware(log).Middleware())
	app.Use(NewAccessLogMiddleware(log).Middleware())
	return app, logs
}

func decodeEnvelope(t *testing.T, resp *http.Response) response.SemanticResponse {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env response.SemanticResponse
	require.NoError(t, json.Unmarshal(b, &env), string(b))
	return env
}

func TestErrorMiddleware_AppErrorPassesMessage(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/x", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "URL parameter is required", nil, nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, 400, env.Status)
	assert.Equal(t, "URL parameter is required", env.Message)
	assert.Nil(t, env.Data)
}

func TestErrorMiddleware_HidesServerErrors(t *testing.T) {
	app, logs := newTestApp(t)
	app.Get("/x", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password is hunter2", nil, errors.New("boom"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, 500, env.Status)
	assert.Equal(t, response.MessageInternalServerError, env.Message)

	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
	access := logs.FilterMessage("http request").All()
	require.Len(t, access, 1)
	assert.EqualValues(t, 500, access[0].ContextMap()["status"])
}

func TestErrorMiddleware_FiberErrorAndPanic(t *testing.T) {
	app, logs := newTestApp(t)
	app.Get("/missing", func(c fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/panic", func(c fiber.Ctx) error { panic("kaboom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, 404, env.Status)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	env = decodeEnvelope(t, resp)
	assert.Equal(t, 500, env.Status)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestAccessLog_RequestID(t *testing.T) {
	app, logs := newTestApp(t)
	app.Get("/ok", func(c fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(HeaderRequestID), 36)

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc-123", entries[0].ContextMap()["rid"])
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
}

func TestAdminAuth(t *testing.T) {
	svc := jwt.NewHMACService("s3cret", "")
	admin, err := svc.GenerateAdminToken("ops", time.Hour)
	require.NoError(t, err)

	viewer, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwt.Claims{
		Role: "viewer",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    jwt.DefaultIssuer,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	app, _ := newTestApp(t)
	app.Post("/admin", NewAdminAuthMiddleware(svc).Middleware(), func(c fiber.Ctx) error {
		return c.SendString(c.Locals(CtxAdminSubjectKey).(string))
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + admin, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"not admin", "Bearer " + viewer, http.StatusForbidden},
		{"admin", "bearer " + admin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAdminAuth_DisabledIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	app.Post("/admin", NewAdminAuthMiddleware(nil).Middleware(), func(c fiber.Ctx) error {
		return c.SendString("unreachable")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
