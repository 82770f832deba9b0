package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donorhub/donorhub-api/internal/api/metrics"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// FundingHandler owns the monetary contribution endpoints.
type FundingHandler struct {
	fundings ports.FundingService
}

func NewFundingHandler(fundings ports.FundingService) *FundingHandler {
	return &FundingHandler{fundings: fundings}
}

type paymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

// CreateIntent opens a payment intent with the processor and returns the
// client secret the browser finishes the charge with.
//
// @Summary      Create a payment intent
// @Tags         fundings
// @Accept       json
// @Produce      json
// @Param        body  body      paymentIntentRequest  true  "Amount in major units"
// @Success      200   {object}  paymentIntentResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /create-payment-intent [post]
func (h *FundingHandler) CreateIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	intent, err := h.fundings.CreateIntent(c.Request().Context(), req.Amount)
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.PaymentIntentsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: intent.ClientSecret})
}

// Record stores a completed contribution.
//
// @Summary      Record a contribution
// @Tags         fundings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordFundingRequest  true  "Contribution details"
// @Success      201   {object}  domain.Funding
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /fundings [post]
func (h *FundingHandler) Record(c echo.Context) error {
	var req recordFundingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	funding, err := h.fundings.Record(c.Request().Context(), ports.RecordFundingInput{
		Email:         req.Email,
		Name:          req.Name,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, funding)
}

// List pages through recorded contributions.
//
// @Summary      List contributions
// @Tags         fundings
// @Produce      json
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  pageEnvelope
// @Router       /fundings [get]
func (h *FundingHandler) List(c echo.Context) error {
	result, err := h.fundings.List(c.Request().Context(), ports.ListFundingsFilter{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
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

type fundingTotalResponse struct {
	Total float64 `json:"total"`
}

// Total returns the all-time contribution sum.
//
// @Summary      Total contributions
// @Tags         fundings
// @Produce      json
// @Success      200  {object}  fundingTotalResponse
// @Router       /fundings/total [get]
func (h *FundingHandler) Total(c echo.Context) error {
	total, err := h.fundings.Total(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fundingTotalResponse{Total: total})
}
