package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donorhub/donorhub-api/internal/api/metrics"
	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// DonationHandler owns the donation request endpoints.
type DonationHandler struct {
	donations ports.DonationService
}

func NewDonationHandler(donations ports.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

// Create posts a new donation request. Status always starts at pending.
//
// @Summary      Create a donation request
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDonationRequest  true  "Request details"
// @Success      201   {object}  domain.DonationRequest
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /donation-requests [post]
func (h *DonationHandler) Create(c echo.Context) error {
	requester, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createDonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.donations.Create(c.Request().Context(), requester, ports.CreateDonationInput{
		RecipientName: req.RecipientName,
		BloodGroup:    req.BloodGroup,
		District:      req.District,
		Upazila:       req.Upazila,
		Hospital:      req.Hospital,
		Address:       req.Address,
		DonationDate:  req.DonationDate,
		DonationTime:  req.DonationTime,
		Message:       req.Message,
	})
	if err != nil {
		return err
	}

	metrics.DonationsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// List pages through donation requests. With ?mine=true and an authenticated
// caller, only the caller's own requests are returned.
//
// @Summary      List donation requests
// @Tags         donations
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        mine    query     bool    false  "Only the caller's requests"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pageEnvelope
// @Router       /donation-requests [get]
func (h *DonationHandler) List(c echo.Context) error {
	filter := ports.ListDonationsFilter{
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	if c.QueryParam("mine") == "true" {
		user, err := currentUser(c)
		if err != nil {
			return err
		}
		filter.RequesterEmail = user.Email
	}

	result, err := h.donations.List(c.Request().Context(), filter)
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

// Get returns a single donation request.
//
// @Summary      Get a donation request
// @Tags         donations
// @Produce      json
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.DonationRequest
// @Failure      404  {object}  map[string]string
// @Router       /donation-requests/{id} [get]
func (h *DonationHandler) Get(c echo.Context) error {
	d, err := h.donations.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Respond volunteers the caller as the donor. The first responder wins; a
// second respond finds the request no longer pending and reports a no-op.
//
// @Summary      Respond to a donation request
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /donation-requests/{id}/respond [patch]
func (h *DonationHandler) Respond(c echo.Context) error {
	donor, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.donations.Respond(c.Request().Context(), donor, c.Param("id"))
	if err != nil {
		return err
	}

	if result.Modified == 0 {
		return c.JSON(http.StatusOK, messageResponse{Message: "request already taken"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "response recorded"})
}

// UpdateStatus advances a request through its lifecycle. Owner or admin only;
// illegal transitions are rejected.
//
// @Summary      Update donation request status
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Request id"
// @Param        body  body      donationStatusRequest  true  "New status"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /donation-requests/{id}/status [patch]
func (h *DonationHandler) UpdateStatus(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req donationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.donations.UpdateStatus(c.Request().Context(), caller, c.Param("id"), domain.DonationStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "status updated"})
}

// Delete removes a donation request. Owner or admin only.
//
// @Summary      Delete a donation request
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /donation-requests/{id} [delete]
func (h *DonationHandler) Delete(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.donations.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "request deleted"})
}
