package utilsHandler

import (
	"SimOCRBackend/internal/api/auth"
	utilsService "SimOCRBackend/internal/api/utils/service"
	"SimOCRBackend/internal/entity"
	"SimOCRBackend/internal/middleware"
	"SimOCRBackend/pkg/email"
	jwtPkg "SimOCRBackend/pkg/jwt"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type users map[string]entity.User

func (u users) GetUserByID(_ context.Context, id string) (entity.User, error) {
	user, ok := u[id]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

type mailer struct {
	enabled bool
	to      []string
}

func (m *mailer) Enabled() bool { return m.enabled }

func (m *mailer) SendHTML(to, _, _ string) error {
	m.to = append(m.to, to)
	return nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(t *testing.T, m *mailer) *fiber.App {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mw := middleware.NewWithRate(logger, users{
		"root": {ID: "root", IsActive: true, IsSuperuser: true},
		"joe":  {ID: "joe", IsActive: true},
	}, 1000, 1000)
	svc := utilsService.NewUtilsService(logger, m, email.NewRenderer("Acme", ""))

	app := fiber.New()
	New(logger, validator.New(), mw, svc).Start(app.Group("/api/v1"))
	return app
}

func send(t *testing.T, app *fiber.App, method, target, subject string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if subject != "" {
		token, _, err := jwtPkg.Sign(subject, jwtPkg.PurposeAccess, time.Hour)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealthCheck(t *testing.T) {
	app := newApp(t, &mailer{})

	status, body := send(t, app, http.MethodGet, "/api/v1/utils/health-check", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "true", string(body.Data))
}

func TestTestEmail(t *testing.T) {
	m := &mailer{enabled: true}
	app := newApp(t, m)

	status, body := send(t, app, http.MethodPost, "/api/v1/utils/test-email?email_to=a@example.com", "root")
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Test email sent", body.Message)
	assert.Equal(t, []string{"a@example.com"}, m.to)

	status, _ = send(t, app, http.MethodPost, "/api/v1/utils/test-email?email_to=a@example.com", "joe")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = send(t, app, http.MethodPost, "/api/v1/utils/test-email?email_to=nope", "root")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestTestEmailWithoutSMTP(t *testing.T) {
	app := newApp(t, &mailer{})

	status, body := send(t, app, http.MethodPost, "/api/v1/utils/test-email?email_to=a@example.com", "root")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "Emails are not configured", body.Message)
}
