package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/craftstore/config"
	"github.com/talkincode/craftstore/internal/app"
	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/order"
	"github.com/talkincode/craftstore/internal/webserver"
)

type testServer struct {
	ws  *webserver.WebServer
	app *app.Application
}

// newTestServer boots the application on an isolated bolt backend: the
// default super admin and the demo catalog are already seeded.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.System.Location = "UTC"
	cfg.Web.AssetsDir = ""
	cfg.Database = config.DBConfig{Type: "bolt", Name: "adminapi-test"}
	cfg.Telegram = config.TelegramConfig{}
	cfg.Logger = config.LoggerConfig{Mode: "development"}

	application := app.NewApplication(&cfg)
	require.NoError(t, application.Init(&cfg))
	t.Cleanup(application.Release)

	ws := webserver.New(application)
	Register(ws)
	return &testServer{ws: ws, app: application}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.ws.Echo().ServeHTTP(rec, req)
	return rec
}

// login authenticates as the seeded super admin and returns the token.
func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/admin/api/auth/login", "",
		map[string]string{"username": "admin", "password": "craftstore"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.NotEmpty(t, body.Data.Token)
	return body.Data.Token
}

func TestJWTGuard(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/admin/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/admin/api/products", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodGet, "/admin/api/products", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/admin/api/auth/login", "",
		map[string]string{"username": "admin", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
}

func TestRegisterAdmin_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	payload := map[string]string{
		"username": "second",
		"password": "longenough1",
		"email":    "second@example.com",
	}
	rec := ts.do(t, http.MethodPost, "/admin/api/auth/register", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/admin/api/auth/register", token, payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "USERNAME_TAKEN")
}

func TestProductCRUD(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/admin/api/products", token, map[string]interface{}{
		"name":        "Nameplate",
		"description": "Etched brass nameplate",
		"price":       "399",
		"image":       "/assets/img/plate.jpg",
		"category":    "signs",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var createBody struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createBody))
	p := createBody.Data
	require.NotZero(t, p.ID)
	assert.Equal(t, float64(399), p.Price)

	id := jsonID(p.ID)
	rec = ts.do(t, http.MethodPut, "/admin/api/products/"+id, token, map[string]interface{}{
		"name":        "Nameplate",
		"description": "Etched brass nameplate",
		"price":       450,
		"image":       "/assets/img/plate.jpg",
		"category":    "signs",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/admin/api/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var getBody struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &getBody))
	assert.Equal(t, float64(450), getBody.Data.Price)

	rec = ts.do(t, http.MethodDelete, "/admin/api/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/admin/api/products/"+id, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestCreateProduct_Invalid(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/admin/api/products", token, map[string]interface{}{
		"name":  "",
		"price": "not-a-number",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error struct {
			Code    string          `json:"code"`
			Details map[string]bool `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_REQUEST", body.Error.Code)
	assert.True(t, body.Error.Details["name"])
	assert.True(t, body.Error.Details["price"])

	// omitting price entirely is a missing field, not a zero price
	rec = ts.do(t, http.MethodPost, "/admin/api/products", token, map[string]interface{}{
		"name":        "Nameplate",
		"description": "Etched brass nameplate",
		"image":       "/assets/img/plate.jpg",
		"category":    "signs",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Error.Details["price"])
}

func TestListProducts_Paged(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodGet, "/admin/api/products?page=1&perPage=2&sort=price&order=ASC", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool             `json:"success"`
		Data    []domain.Product `json:"data"`
		Total   int64            `json:"total"`
		Page    int              `json:"page"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(3), body.Total)
	require.Len(t, body.Data, 2)
	assert.LessOrEqual(t, body.Data[0].Price, body.Data[1].Price)
}

func submitOrder(t *testing.T, ts *testServer) *domain.Order {
	t.Helper()
	o, err := ts.app.OrderService().SubmitCartOrder(context.Background(), order.CartOrderRequest{
		Name:    "Asha",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "1 Craft Road",
		Items:   []order.CartItemInput{{Name: "Custom Name Sign", Price: 100, Quantity: 2}},
	})
	require.NoError(t, err)
	return o
}

func TestListOrders(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)
	o := submitOrder(t, ts)

	rec := ts.do(t, http.MethodGet, "/admin/api/orders?type=cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data  []domain.Order `json:"data"`
		Total int64          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(1), body.Total)
	assert.Equal(t, o.ID, body.Data[0].ID)

	rec = ts.do(t, http.MethodGet, "/admin/api/orders?type=custom", token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Zero(t, body.Total)

	rec = ts.do(t, http.MethodGet, "/admin/api/orders?from=bogus-date", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportOrders(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)
	submitOrder(t, ts)

	rec := ts.do(t, http.MethodGet, "/admin/api/orders/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "orders.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "id")
	assert.Contains(t, lines[1], "Custom Name Sign x2")
	assert.Contains(t, lines[1], "200")
}

func TestSettings(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/admin/api/settings", token, map[string]interface{}{
		"store.name": "Renamed Store",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/admin/api/settings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Renamed Store")
}

func TestNotifyTest_Unconfigured(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/admin/api/notify/test", token,
		map[string]string{"text": "ping"})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOTIFY_FAILED")
}

func TestDashboardMetrics(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodGet, "/admin/api/metrics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Data, "orders_cart_24h")
}

func jsonID(v int64) string {
	return strconv.FormatInt(v, 10)
}
