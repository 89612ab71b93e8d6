package middleware

import (
	"SimOCRBackend/internal/api/auth"
	"SimOCRBackend/internal/entity"
	jwtPkg "SimOCRBackend/pkg/jwt"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder map[string]entity.User

func (f fakeFinder) GetUserByID(_ context.Context, id string) (entity.User, error) {
	u, ok := f[id]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func newTestApp(t *testing.T, users fakeFinder) *fiber.App {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	m := NewWithRate(logger, users, 1, 2)

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/me", m.NewTokenMiddleware, func(c *fiber.Ctx) error {
		user, err := jwtPkg.GetUserLoginData(c)
		if err != nil {
			return err
		}
		return c.SendString(user.Email)
	})
	app.Get("/admin", m.NewTokenMiddleware, m.NewSuperuserMiddleware, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/limited", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})
	return app
}

func bearer(t *testing.T, subject string) string {
	t.Helper()
	token, _, err := jwtPkg.Sign(subject, jwtPkg.PurposeAccess, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, app *fiber.App, path, authHeader string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func message(t *testing.T, body string) string {
	t.Helper()
	var env struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return env.Message
}

func TestTokenMiddleware(t *testing.T) {
	users := fakeFinder{
		"u1": {ID: "u1", Email: "a@example.com", IsActive: true},
		"u2": {ID: "u2", Email: "b@example.com", IsActive: false},
	}
	app := newTestApp(t, users)

	resp, body := do(t, app, "/me", bearer(t, "u1"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@example.com", body)

	resp, body = do(t, app, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Could not validate credentials", message(t, body))

	resp, _ = do(t, app, "/me", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, "/me", bearer(t, "ghost"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, app, "/me", bearer(t, "u2"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Inactive user", message(t, body))
}

func TestTokenMiddlewareRejectsResetToken(t *testing.T) {
	app := newTestApp(t, fakeFinder{"a@example.com": {ID: "a@example.com", IsActive: true}})

	token, _, err := jwtPkg.Sign("a@example.com", jwtPkg.PurposePasswordReset, time.Hour)
	require.NoError(t, err)

	resp, _ := do(t, app, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSuperuserMiddleware(t *testing.T) {
	users := fakeFinder{
		"u1":   {ID: "u1", IsActive: true},
		"root": {ID: "root", IsActive: true, IsSuperuser: true},
	}
	app := newTestApp(t, users)

	resp, body := do(t, app, "/admin", bearer(t, "u1"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "The user doesn't have enough privileges", message(t, body))

	resp, _ = do(t, app, "/admin", bearer(t, "root"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimiter(t *testing.T) {
	app := newTestApp(t, fakeFinder{})

	for i := 0; i < 2; i++ {
		resp, body := do(t, app, "/limited", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body, 26)
	}

	resp, body := do(t, app, "/limited", "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many requests", message(t, body))
}

func TestRequestIDIsEchoed(t *testing.T) {
	app := newTestApp(t, fakeFinder{})

	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.Header.Set(RequestIDKey, "abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get(RequestIDKey))
}

func TestSanitizeRequestBody(t *testing.T) {
	out := sanitizeRequestBody("application/json", []byte(`{"email":"a@example.com","password":"hunter22"}`))
	assert.Contains(t, out, `"password":"[SECRET]"`)
	assert.Contains(t, out, `"email":"a@example.com"`)

	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("application/x-www-form-urlencoded", []byte("username=a&password=b")))
}
