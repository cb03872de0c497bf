package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"demoapi/internal/model"
)

// MockUserResolver is a mock implementation of UserResolver.
type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) GetByUsername(username string) (*model.User, bool) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.User), args.Bool(1)
}

func newGuardTestServer(t *testing.T, guard *Guard, extra ...echo.MiddlewareFunc) *echo.Echo {
	t.Helper()
	e := echo.New()
	mws := append([]echo.MiddlewareFunc{guard.Middleware()}, extra...)
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, Principal(c))
	}, mws...)
	return e
}

func doRequest(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGuard_Authenticate(t *testing.T) {
	jwtService := newTestJWTService(t, 30*time.Minute)

	validToken, err := jwtService.Issue("alice", time.Now())
	require.NoError(t, err)
	expiredToken, err := jwtService.Issue("alice", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	alice := &model.User{
		ID:           1,
		Username:     "alice",
		Role:         model.RoleUser,
		IsActive:     true,
		PasswordHash: "digest",
	}

	tests := []struct {
		name       string
		token      string
		setupMock  func(*MockUserResolver)
		wantStatus int
	}{
		{
			name:  "valid token resolves principal",
			token: validToken,
			setupMock: func(m *MockUserResolver) {
				m.On("GetByUsername", "alice").Return(alice, true)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing token",
			token:      "",
			setupMock:  func(m *MockUserResolver) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed token",
			token:      "garbage",
			setupMock:  func(m *MockUserResolver) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			token:      expiredToken,
			setupMock:  func(m *MockUserResolver) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "orphaned subject",
			token: validToken,
			setupMock: func(m *MockUserResolver) {
				m.On("GetByUsername", "alice").Return(nil, false)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockUserResolver)
			tt.setupMock(resolver)

			guard := NewGuard(jwtService, resolver)
			rec := doRequest(newGuardTestServer(t, guard), tt.token)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				// The principal stored in context is sanitized.
				assert.NotContains(t, rec.Body.String(), "digest")
				assert.Contains(t, rec.Body.String(), `"username":"alice"`)
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestGuard_Authorize(t *testing.T) {
	jwtService := newTestJWTService(t, 30*time.Minute)
	token, err := jwtService.Issue("alice", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name       string
		user       *model.User
		wantStatus int
		wantBody   string
	}{
		{
			name:       "active admin passes",
			user:       &model.User{ID: 1, Username: "alice", Role: model.RoleAdmin, IsActive: true},
			wantStatus: http.StatusOK,
		},
		{
			name:       "active non-admin is forbidden",
			user:       &model.User{ID: 1, Username: "alice", Role: model.RoleUser, IsActive: true},
			wantStatus: http.StatusForbidden,
			wantBody:   "not enough permissions",
		},
		{
			// Active check runs before role check, so an inactive admin
			// is rejected for inactivity, not permission.
			name:       "inactive admin reported as inactive",
			user:       &model.User{ID: 1, Username: "alice", Role: model.RoleAdmin, IsActive: false},
			wantStatus: http.StatusForbidden,
			wantBody:   "inactive user",
		},
		{
			name:       "inactive non-admin reported as inactive",
			user:       &model.User{ID: 1, Username: "alice", Role: model.RoleUser, IsActive: false},
			wantStatus: http.StatusForbidden,
			wantBody:   "inactive user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockUserResolver)
			resolver.On("GetByUsername", "alice").Return(tt.user, true)

			guard := NewGuard(jwtService, resolver)
			e := newGuardTestServer(t, guard, guard.RequireActive(), guard.RequireRole(model.RoleAdmin))
			rec := doRequest(e, token)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
