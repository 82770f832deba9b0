package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// DonorHandler owns the donor search endpoints.
type DonorHandler struct {
	users ports.UserService
}

func NewDonorHandler(users ports.UserService) *DonorHandler {
	return &DonorHandler{users: users}
}

// Search finds active donors matching all three criteria. The blood group
// arrives URL-encoded ("Ap" for "A+") and is normalized before the query.
//
// @Summary      Search donors
// @Tags         donors
// @Produce      json
// @Param        bloodGroup  query     string  true  "Encoded blood group (e.g. Ap, Om)"
// @Param        district    query     string  true  "District"
// @Param        upazila     query     string  true  "Upazila"
// @Success      200         {object}  map[string][]domain.User
// @Failure      400         {object}  map[string]string
// @Router       /search-donors [get]
func (h *DonorHandler) Search(c echo.Context) error {
	group := c.QueryParam("bloodGroup")
	district := c.QueryParam("district")
	upazila := c.QueryParam("upazila")
	if group == "" || district == "" || upazila == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "bloodGroup, district and upazila are required")
	}

	donors, err := h.users.SearchDonors(c.Request().Context(), group, district, upazila)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"donors": donors})
}

// SearchDynamic finds active donors matching any subset of the criteria.
//
// @Summary      Search donors by any criteria
// @Tags         donors
// @Produce      json
// @Param        bloodGroup  query     string  false  "Encoded blood group (e.g. Ap, Om)"
// @Param        district    query     string  false  "District"
// @Param        upazila     query     string  false  "Upazila"
// @Success      200         {object}  map[string][]domain.User
// @Router       /search-donors-dynamic [get]
func (h *DonorHandler) SearchDynamic(c echo.Context) error {
	donors, err := h.users.SearchDonors(c.Request().Context(),
		c.QueryParam("bloodGroup"),
		c.QueryParam("district"),
		c.QueryParam("upazila"),
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"donors": donors})
}
