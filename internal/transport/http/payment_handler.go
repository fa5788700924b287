package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sajhahub/sajha-hub-backend/internal/service"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

type checkoutRequest struct {
	Credits float64 `json:"credits"`
	Method  string  `json:"method"`
}

type spendRequest struct {
	Cost float64 `json:"cost"`
}

func RegisterPayments(e *echo.Echo, auth *service.AuthService, payments *service.PaymentService) {
	handler := &PaymentHandler{payments: payments}

	group := e.Group("/api/v1/payments", RequireAuth(auth))
	group.POST("/checkout", handler.checkout)
	group.POST("/spend", handler.spend)
}

// checkout handles POST /api/v1/payments/checkout
func (h *PaymentHandler) checkout(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}

	receipt, err := h.payments.Checkout(c.Request().Context(), user.ID, service.CheckoutInput{
		Credits: req.Credits,
		Method:  req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrNoSession):
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to process payment"))
		}
	}
	return c.JSON(http.StatusCreated, util.Data("receipt", receipt))
}

// spend handles POST /api/v1/payments/spend
func (h *PaymentHandler) spend(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req spendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}

	remaining, err := h.payments.Spend(c.Request().Context(), user.ID, req.Cost)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrNoSession):
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to spend credits"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("credits", remaining))
}
