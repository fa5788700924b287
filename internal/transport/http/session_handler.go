package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sajhahub/sajha-hub-backend/internal/service"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

type SessionHandler struct {
	sessions *service.SessionService
}

type selectCityRequest struct {
	City string `json:"city"`
}

func RegisterSessions(e *echo.Echo, auth *service.AuthService, sessions *service.SessionService) {
	handler := &SessionHandler{sessions: sessions}

	group := e.Group("/api/v1/me", RequireAuth(auth))
	group.GET("", handler.me)
	group.POST("/signout", handler.signOut)
	group.GET("/city", handler.city)
	group.PUT("/city", handler.selectCity)
}

// me handles GET /api/v1/me
func (h *SessionHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Data("user", user))
}

// signOut handles POST /api/v1/me/signout
func (h *SessionHandler) signOut(c echo.Context) error {
	user, _ := CurrentUser(c)
	if err := h.sessions.SignOut(c.Request().Context(), user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to sign out"))
	}
	return c.NoContent(http.StatusNoContent)
}

// city handles GET /api/v1/me/city
func (h *SessionHandler) city(c echo.Context) error {
	user, _ := CurrentUser(c)
	city, err := h.sessions.City(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load city"))
	}
	return c.JSON(http.StatusOK, util.Data("city", city))
}

// selectCity handles PUT /api/v1/me/city
func (h *SessionHandler) selectCity(c echo.Context) error {
	user, _ := CurrentUser(c)

	var req selectCityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	city, err := h.sessions.SelectCity(c.Request().Context(), user.ID, req.City)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to save city"))
	}
	return c.JSON(http.StatusOK, util.Data("city", city))
}
