package itemHandler

import (
	"SimOCRBackend/internal/api/auth"
	"SimOCRBackend/internal/api/item"
	"SimOCRBackend/internal/entity"
	"SimOCRBackend/internal/middleware"
	jwtPkg "SimOCRBackend/pkg/jwt"
	"SimOCRBackend/pkg/response"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
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

type fakeService struct {
	lastPage, lastPageSize int
	created                []item.CreateItemRequest
}

func (f *fakeService) ListItems(_ context.Context, _ entity.UserLoginData, page, pageSize int) (response.PagedData[item.ItemResponse], error) {
	f.lastPage, f.lastPageSize = page, pageSize
	return response.NewPagedData([]item.ItemResponse{{ID: "1", Title: "SIM"}}, 1, page, pageSize), nil
}

func (f *fakeService) GetItem(_ context.Context, user entity.UserLoginData, id string) (entity.Item, error) {
	if id == "missing" {
		return entity.Item{}, item.ErrItemNotFound
	}
	if user.ID != "alice" {
		return entity.Item{}, item.ErrNotEnoughPermissions
	}
	return entity.Item{ID: id, Title: "SIM", OwnerID: "alice"}, nil
}

func (f *fakeService) CreateItem(_ context.Context, user entity.UserLoginData, req item.CreateItemRequest) (entity.Item, error) {
	f.created = append(f.created, req)
	return entity.Item{ID: "new", Title: req.Title, OwnerID: user.ID}, nil
}

func (f *fakeService) UpdateItem(_ context.Context, _ entity.UserLoginData, id string, req item.UpdateItemRequest) (entity.Item, error) {
	return entity.Item{ID: id, Title: *req.Title}, nil
}

func (f *fakeService) DeleteItem(_ context.Context, _ entity.UserLoginData, _ string) error {
	return nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(t *testing.T, svc *fakeService) *fiber.App {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mw := middleware.NewWithRate(logger, users{
		"alice": {ID: "alice", IsActive: true},
		"bob":   {ID: "bob", IsActive: true},
	}, 1000, 1000)

	app := fiber.New()
	New(logger, validator.New(), mw, svc).Start(app.Group("/api/v1"))
	return app
}

func send(t *testing.T, app *fiber.App, method, target, subject, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if subject != "" {
		token, _, err := jwtPkg.Sign(subject, jwtPkg.PurposeAccess, time.Hour)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestItemsRequireToken(t *testing.T) {
	app := newApp(t, &fakeService{})

	status, _ := send(t, app, http.MethodGet, "/api/v1/items/", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestListItemsPassesPaging(t *testing.T) {
	svc := &fakeService{}
	app := newApp(t, svc)

	status, env := send(t, app, http.MethodGet, "/api/v1/items/?page=3&page_size=5", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, svc.lastPage)
	assert.Equal(t, 5, svc.lastPageSize)

	var page response.PagedData[item.ItemResponse]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Items, 1)

	_, _ = send(t, app, http.MethodGet, "/api/v1/items/", "alice", "")
	assert.Equal(t, 1, svc.lastPage)
	assert.Equal(t, item.DefaultPageSize, svc.lastPageSize)
}

func TestCreateItemValidates(t *testing.T) {
	svc := &fakeService{}
	app := newApp(t, svc)

	status, env := send(t, app, http.MethodPost, "/api/v1/items/", "alice", `{"title":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, http.StatusUnprocessableEntity, env.Code)
	assert.Empty(t, svc.created)

	status, env = send(t, app, http.MethodPost, "/api/v1/items/", "alice", `{"title":"SIM","description":"card"}`)
	require.Equal(t, http.StatusOK, status)

	var created item.ItemResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "SIM", created.Title)
	assert.Equal(t, "alice", created.OwnerID)
}

func TestGetItemErrors(t *testing.T) {
	app := newApp(t, &fakeService{})

	status, env := send(t, app, http.MethodGet, "/api/v1/items/missing", "alice", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Item not found", env.Message)

	status, env = send(t, app, http.MethodGet, "/api/v1/items/42", "bob", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Not enough permissions", env.Message)
}

func TestUpdateAndDeleteItem(t *testing.T) {
	app := newApp(t, &fakeService{})

	status, env := send(t, app, http.MethodPut, "/api/v1/items/42", "alice", `{"title":"renamed"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"renamed"`)

	status, env = send(t, app, http.MethodDelete, "/api/v1/items/42", "alice", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Item deleted successfully", env.Message)
}
