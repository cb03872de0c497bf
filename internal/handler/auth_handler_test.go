package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demoapi/internal/auth"
	"demoapi/internal/cache"
	"demoapi/internal/config"
	"demoapi/internal/handler"
	"demoapi/internal/router"
	"demoapi/internal/service"
	"demoapi/internal/store"
)

type testServer struct {
	echo  *echo.Echo
	users *store.UserStore
	jwt   *auth.JWTService
}

// newTestServer wires the full route table against fresh in-memory
// stores. The cache points at a nonexistent redis and degrades to a
// pass-through.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		ServerPort:     "0",
		JWTSecret:      "test-secret",
		JWTAlgorithm:   "HS256",
		TokenTTL:       30 * time.Minute,
		AllowedOrigins: []string{"http://localhost:3000"},
		UploadDir:      t.TempDir(),
		RedisAddr:      "localhost:1",
	}

	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)
	require.NoError(t, err)

	userStore := store.NewUserStore()
	productStore := store.NewProductStore()
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	productService := service.NewProductService(productStore, cacheClient)
	uploadService, err := service.NewUploadService(cfg.UploadDir)
	require.NoError(t, err)

	guard := auth.NewGuard(jwtService, userStore)

	e := echo.New()
	router.Register(
		e,
		cfg,
		guard,
		handler.NewAuthHandler(userStore, jwtService),
		handler.NewUserHandler(userStore),
		handler.NewProductHandler(productService),
		handler.NewFileHandler(uploadService),
		handler.NewMiscHandler(),
	)

	return &testServer{echo: e, users: userStore, jwt: jwtService}
}

func (ts *testServer) request(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) register(t *testing.T, username, email, password, role string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":%q,"role":%q}`, username, email, password, role)
	rec := ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := ts.request(http.MethodPost, "/api/v1/auth/token", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp handler.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(http.MethodPost, "/api/v1/auth/register",
		`{"username":"alice","email":"alice@x.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	// The password hash never crosses the response boundary.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "hash")

	rec = ts.request(http.MethodPost, "/api/v1/auth/register",
		`{"username":"alice","email":"bob@x.com","password":"secret2"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "USERNAME_TAKEN")

	rec = ts.request(http.MethodPost, "/api/v1/auth/register",
		`{"username":"bob","email":"alice@x.com","password":"secret2"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")

	rec = ts.request(http.MethodPost, "/api/v1/auth/token",
		`{"username":"alice","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "alice@x.com", "secret1", "user")

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"username":"alice","password":"wrong"}`},
		{"unknown username", `{"username":"nobody","password":"secret1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.request(http.MethodPost, "/api/v1/auth/token", tt.body, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// Same message either way: no username oracle.
			assert.Contains(t, rec.Body.String(), "incorrect username or password")
		})
	}
}

func TestMeAndOrphanedToken(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin", "admin@x.com", "admin123", "admin")
	ts.register(t, "alice", "alice@x.com", "secret1", "user")

	aliceToken := ts.login(t, "alice", "secret1")
	adminToken := ts.login(t, "admin", "admin123")

	rec := ts.request(http.MethodGet, "/api/v1/auth/me", "", aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	// Admin deletes alice; her still-unexpired token is now orphaned.
	rec = ts.request(http.MethodDelete, "/api/v1/users/2", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/auth/me", "", aliceToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestRoleGates(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin", "admin@x.com", "admin123", "admin")
	ts.register(t, "alice", "alice@x.com", "secret1", "user")

	adminToken := ts.login(t, "admin", "admin123")
	aliceToken := ts.login(t, "alice", "secret1")

	productBody := `{"name":"Laptop","price":1200,"category":"electronics"}`

	rec := ts.request(http.MethodPost, "/api/v1/products", productBody, aliceToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "not enough permissions")

	rec = ts.request(http.MethodPost, "/api/v1/products", productBody, adminToken)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(http.MethodPost, "/api/v1/products", productBody, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Alice may update herself but not the admin.
	rec = ts.request(http.MethodPut, "/api/v1/users/2", `{"full_name":"Alice A."}`, aliceToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.request(http.MethodPut, "/api/v1/users/1", `{"full_name":"Eve"}`, aliceToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInactiveUserForbidden(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin", "admin@x.com", "admin123", "admin")
	ts.register(t, "alice", "alice@x.com", "secret1", "user")

	aliceToken := ts.login(t, "alice", "secret1")
	adminToken := ts.login(t, "admin", "admin123")

	rec := ts.request(http.MethodPut, "/api/v1/users/2", `{"is_active":false}`, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/auth/me", "", aliceToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "inactive user")
}

func TestPublicProductRoutes(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin", "admin@x.com", "admin123", "admin")
	adminToken := ts.login(t, "admin", "admin123")

	rec := ts.request(http.MethodPost, "/api/v1/products",
		`{"name":"Go Book","description":"Learn Go","price":35,"category":"books"}`, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/products", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Go Book")

	rec = ts.request(http.MethodGet, "/api/v1/products/search?q=learn", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Go Book")

	rec = ts.request(http.MethodGet, "/api/v1/products?category=sports", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Go Book")

	rec = ts.request(http.MethodGet, "/api/v1/products?category=bogus", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMiscEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(http.MethodGet, "/api/v1/misc/ping", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")

	rec = ts.request(http.MethodGet, "/api/v1/misc/echo?message=hello", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"length":5`)

	rec = ts.request(http.MethodGet, "/api/v1/misc/error?status_code=418", "", "")
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = ts.request(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
