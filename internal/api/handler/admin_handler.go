package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/donorhub/donorhub-api/internal/api/metrics"
	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// AdminHandler owns the administrative account endpoints. Every route is
// mounted behind RequireRole(admin).
type AdminHandler struct {
	users ports.UserService
	audit ports.AuditRepository
}

func NewAdminHandler(users ports.UserService, audit ports.AuditRepository) *AdminHandler {
	return &AdminHandler{users: users, audit: audit}
}

// ApproveMerchant settles a pending merchant request in favour of the user.
//
// @Summary      Approve a merchant request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /admin/approve-merchant/{id} [patch]
func (h *AdminHandler) ApproveMerchant(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.users.ApproveMerchant(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.RoleRequestsTotal.WithLabelValues("approved").Inc()
	return c.JSON(http.StatusOK, user)
}

// RejectMerchant settles a pending merchant request against the user.
//
// @Summary      Reject a merchant request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /admin/reject-merchant/{id} [patch]
func (h *AdminHandler) RejectMerchant(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.users.RejectMerchant(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.RoleRequestsTotal.WithLabelValues("rejected").Inc()
	return c.JSON(http.StatusOK, user)
}

// ListUsers pages through non-admin accounts.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query     string  false  "Filter by role"
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pageEnvelope
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	result, err := h.users.List(c.Request().Context(), ports.ListUsersFilter{
		Role:   c.QueryParam("role"),
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageEnvelope{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// SetRole directly assigns a role to a user.
//
// @Summary      Set account role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "User id"
// @Param        body  body      setRoleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id}/role [patch]
func (h *AdminHandler) SetRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.SetRole(c.Request().Context(), actor, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetStatus directly assigns an account status.
//
// @Summary      Set account status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id}/status [patch]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.SetStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account.
//
// @Summary      Delete an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// ListAudit pages through the administrative audit trail.
//
// @Summary      List audit entries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        subject  query     string  false  "Filter by subject email"
// @Param        page     query     int     false  "Page (1-based)"
// @Param        limit    query     int     false  "Page size"
// @Success      200      {object}  pageEnvelope
// @Router       /admin/audit [get]
func (h *AdminHandler) ListAudit(c echo.Context) error {
	page := queryInt(c, "page")
	if page < 1 {
		page = 1
	}
	limit := queryInt(c, "limit")
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, total, err := h.audit.List(c.Request().Context(), c.QueryParam("subject"), page, limit)
	if err != nil {
		return err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return c.JSON(http.StatusOK, pageEnvelope{
		Items:      entries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed; services apply their own defaults and caps.
func queryInt(c echo.Context, name string) int {
	v, _ := strconv.Atoi(c.QueryParam(name))
	return v
}
