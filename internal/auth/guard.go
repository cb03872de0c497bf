package auth

import (
	"errors"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"demoapi/internal/model"
)

// ErrTokenOrphaned is returned when a token subject no longer resolves
// to a stored account.
var ErrTokenOrphaned = errors.New("token subject not found")

// principalKey is the context key the guard stores the principal under.
const principalKey = "principal"

// unauthorizedMessage is the single outward message for every token
// failure. Expired, malformed and orphaned tokens are deliberately not
// distinguished to the client; the precise reason only goes to the log.
const unauthorizedMessage = "invalid or expired token"

// UserResolver resolves token subjects to stored accounts.
type UserResolver interface {
	GetByUsername(username string) (*model.User, bool)
}

// Guard authenticates requests and enforces account predicates before
// protected handlers run.
type Guard struct {
	jwt   *JWTService
	users UserResolver
}

// NewGuard creates an access guard over the token service and user store.
func NewGuard(jwt *JWTService, users UserResolver) *Guard {
	return &Guard{jwt: jwt, users: users}
}

// Middleware is the authentication stage: it verifies the bearer token
// and resolves its subject to a live account, storing the sanitized
// principal in the request context.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: principalKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			subject, err := g.jwt.Verify(auth, time.Now())
			if err != nil {
				c.Logger().Infof("token rejected: %v", err)
				return nil, err
			}
			user, ok := g.users.GetByUsername(subject)
			if !ok {
				c.Logger().Infof("token rejected: %v (subject %q)", ErrTokenOrphaned, subject)
				return nil, ErrTokenOrphaned
			}
			return user.Sanitized(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
		},
	})
}

// Principal returns the authenticated user stored by Middleware, or nil.
func Principal(c echo.Context) *model.User {
	user, _ := c.Get(principalKey).(*model.User)
	return user
}

// RequireActive rejects principals whose account has been deactivated.
func (g *Guard) RequireActive() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}
			if !p.IsActive {
				return echo.NewHTTPError(http.StatusForbidden, "inactive user")
			}
			return next(c)
		}
	}
}

// RequireRole rejects principals without the given role. Chain it after
// RequireActive so inactivity is reported ahead of permissions.
func (g *Guard) RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
			}
			if p.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "not enough permissions")
			}
			return next(c)
		}
	}
}
