package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donorhub/donorhub-api/internal/api/middleware"
	"github.com/donorhub/donorhub-api/internal/core/domain"
)

// currentUser extracts the user injected by the Authenticate middleware and
// performs a fast-fail check before any service call: presence proves the
// middleware ran. Handlers behind auth must never see an absent user, so a
// miss is a 401, not a 500.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

// optionalUser returns the authenticated user when one is present, nil
// otherwise. Used by public routes whose behaviour widens with auth.
func optionalUser(c echo.Context) *domain.User {
	user, _ := middleware.UserFrom(c)
	return user
}
