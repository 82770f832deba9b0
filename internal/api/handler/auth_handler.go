package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donorhub/donorhub-api/internal/api/metrics"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// AuthHandler owns the self-service account endpoints.
type AuthHandler struct {
	users ports.UserService
}

func NewAuthHandler(users ports.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// AddUser upserts the caller's profile by email.
//
// @Summary      Create or update an account profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      addUserRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/add-user [post]
func (h *AuthHandler) AddUser(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.RegisterOrUpdate(c.Request().Context(), ports.UpsertProfileInput{
		Email:       req.Email,
		Name:        req.Name,
		BloodGroup:  req.BloodGroup,
		District:    req.District,
		Upazila:     req.Upazila,
		ShopName:    req.ShopName,
		ShopAddress: req.ShopAddress,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Me returns the resolved caller.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RequestMerchant files a pending merchant role request for the caller.
//
// @Summary      Request merchant role
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /auth/request-merchant [post]
func (h *AuthHandler) RequestMerchant(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	updated, err := h.users.RequestMerchant(c.Request().Context(), user)
	if err != nil {
		return err
	}

	metrics.RoleRequestsTotal.WithLabelValues("submitted").Inc()
	return c.JSON(http.StatusOK, updated)
}
