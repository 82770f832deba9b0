package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/donorhub/donorhub-api/internal/api/metrics"
	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// UserContextKey is the echo context key the resolved user is stored under.
const UserContextKey = "auth_user"

// Authenticate extracts the bearer credential, resolves it through the
// identity service, and injects the resolved user into the request context.
func Authenticate(resolver ports.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := resolver.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				metrics.IdentityResolutionsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid credential")
			}
			metrics.IdentityResolutionsTotal.WithLabelValues("ok").Inc()

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// AuthenticateOptional resolves the bearer credential when one is present
// and otherwise lets the request through anonymously. A credential that is
// present but invalid is still rejected.
func AuthenticateOptional(resolver ports.IdentityService) echo.MiddlewareFunc {
	required := Authenticate(resolver)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withAuth := required(next)
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			return withAuth(c)
		}
	}
}

// UserFrom returns the user injected by Authenticate, if any.
func UserFrom(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(UserContextKey).(*domain.User)
	return user, ok && user != nil
}
