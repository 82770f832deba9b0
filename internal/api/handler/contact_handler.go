package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// ContactHandler owns the public contact form and the admin mailbox.
type ContactHandler struct {
	contacts ports.ContactService
}

func NewContactHandler(contacts ports.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit accepts a contact-form message.
//
// @Summary      Submit a contact message
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Message"
// @Success      201   {object}  domain.ContactMessage
// @Failure      400   {object}  map[string]string
// @Router       /contacts [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.contacts.Submit(c.Request().Context(), ports.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// List pages through the mailbox.
//
// @Summary      List contact messages
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  pageEnvelope
// @Router       /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	page := queryInt(c, "page")
	if page < 1 {
		page = 1
	}
	limit := queryInt(c, "limit")
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := h.contacts.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return c.JSON(http.StatusOK, pageEnvelope{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}
