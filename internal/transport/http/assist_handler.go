package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/service"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

type AssistHandler struct {
	assist *service.AssistService
}

type describeRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type taglineRequest struct {
	BusinessName string `json:"business_name"`
	Domain       string `json:"domain"`
}

type contentRequest struct {
	Content string `json:"content"`
}

func RegisterAssist(e *echo.Echo, auth *service.AuthService, assist *service.AssistService) {
	handler := &AssistHandler{assist: assist}

	group := e.Group("/api/v1/assist", RequireAuth(auth))
	group.POST("/description", handler.description)
	group.POST("/tagline", handler.tagline)
	group.POST("/polish", handler.polish)
	group.POST("/authenticity", handler.authenticity)
	group.POST("/impact", handler.impact)
}

// description handles POST /api/v1/assist/description
func (h *AssistHandler) description(c echo.Context) error {
	var req describeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("title is required"))
	}
	text := h.assist.Description(c.Request().Context(), req.Title, domain.Category(req.Category))
	return c.JSON(http.StatusOK, util.Data("description", text))
}

// tagline handles POST /api/v1/assist/tagline
func (h *AssistHandler) tagline(c echo.Context) error {
	var req taglineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	if strings.TrimSpace(req.BusinessName) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("business_name is required"))
	}
	text := h.assist.Tagline(c.Request().Context(), req.BusinessName, domain.BusinessDomain(req.Domain))
	return c.JSON(http.StatusOK, util.Data("tagline", text))
}

// polish handles POST /api/v1/assist/polish
func (h *AssistHandler) polish(c echo.Context) error {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("content is required"))
	}
	text := h.assist.Polish(c.Request().Context(), req.Content)
	return c.JSON(http.StatusOK, util.Data("content", text))
}

// authenticity handles POST /api/v1/assist/authenticity
func (h *AssistHandler) authenticity(c echo.Context) error {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("content is required"))
	}
	score := h.assist.Authenticity(c.Request().Context(), req.Content)
	return c.JSON(http.StatusOK, util.Data("authenticity", score))
}

// impact handles POST /api/v1/assist/impact
func (h *AssistHandler) impact(c echo.Context) error {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("content is required"))
	}
	score := h.assist.ImpactScore(c.Request().Context(), req.Content)
	return c.JSON(http.StatusOK, util.Data("impact_score", score))
}
