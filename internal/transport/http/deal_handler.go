package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sajhahub/sajha-hub-backend/internal/service"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

type DealHandler struct {
	deals *service.DealService
}

func RegisterDeals(e *echo.Echo, deals *service.DealService) {
	handler := &DealHandler{deals: deals}

	group := e.Group("/api/v1/deals")
	group.GET("/flights", handler.flights)
	group.GET("/travel", handler.travel)

	e.GET("/api/v1/insights", handler.insights)
}

// flights handles GET /api/v1/deals/flights?origin=&destination=
func (h *DealHandler) flights(c echo.Context) error {
	origin := strings.TrimSpace(c.QueryParam("origin"))
	destination := strings.TrimSpace(c.QueryParam("destination"))
	if origin == "" || destination == "" {
		return c.JSON(http.StatusBadRequest, util.Error("origin and destination are required"))
	}

	result, err := h.deals.FlightDeals(c.Request().Context(), origin, destination)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to fetch flight deals"))
	}
	return c.JSON(http.StatusOK, result)
}

// travel handles GET /api/v1/deals/travel?city=
func (h *DealHandler) travel(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return c.JSON(http.StatusBadRequest, util.Error("city is required"))
	}

	result, err := h.deals.TravelDeals(c.Request().Context(), city)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to fetch travel deals"))
	}
	return c.JSON(http.StatusOK, result)
}

// insights handles GET /api/v1/insights?city=
func (h *DealHandler) insights(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return c.JSON(http.StatusBadRequest, util.Error("city is required"))
	}

	insights, err := h.deals.CityInsights(c.Request().Context(), city)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to fetch insights"))
	}
	return c.JSON(http.StatusOK, util.Data("insights", insights))
}
