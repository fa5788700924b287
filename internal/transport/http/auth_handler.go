package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/service"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

type authResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	group := e.Group("/api/v1/auth")
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/google", handler.google)
}

// register handles POST /api/v1/auth/register
func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}

	result, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			// Password policy violations carry their own message.
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
	}
	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

// login handles POST /api/v1/auth/login
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to sign in"))
	}
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// google handles POST /api/v1/auth/google
func (h *AuthHandler) google(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoogleToken) {
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to sign in"))
	}
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(result *service.AuthResult) authResponse {
	return authResponse{
		User:      result.User,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}
}
