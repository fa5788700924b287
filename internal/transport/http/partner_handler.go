package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sajhahub/sajha-hub-backend/internal/service"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

type PartnerHandler struct {
	partners *service.PartnerService
}

func RegisterPartners(e *echo.Echo, partners *service.PartnerService) {
	handler := &PartnerHandler{partners: partners}

	group := e.Group("/api/v1/partners")
	group.GET("/stays", handler.stays)
	group.GET("/agencies", handler.agencies)
	group.GET("/match", handler.match)
}

// stays handles GET /api/v1/partners/stays
func (h *PartnerHandler) stays(c echo.Context) error {
	stays, err := h.partners.Stays(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load stays"))
	}
	return c.JSON(http.StatusOK, util.Data("stays", stays))
}

// agencies handles GET /api/v1/partners/agencies
func (h *PartnerHandler) agencies(c echo.Context) error {
	agencies, err := h.partners.Agencies(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load agencies"))
	}
	return c.JSON(http.StatusOK, util.Data("agencies", agencies))
}

// match handles GET /api/v1/partners/match?q=
func (h *PartnerHandler) match(c echo.Context) error {
	matches, err := h.partners.Match(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to match partners"))
	}
	return c.JSON(http.StatusOK, util.Data("matches", matches))
}
