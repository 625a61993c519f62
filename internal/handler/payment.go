package handler

import (
	"errors"
	"net/http"

	"evcharge-payment-relay/internal/dto"
	"evcharge-payment-relay/internal/model"
	"evcharge-payment-relay/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid req body",
		})
	}

	result, err := h.paymentService.CreatePayment(ctx, &req)
	if errors.Is(err, service.ErrValidation) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":  "payment link creation failed",
			"detail": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}

// Webhook always acknowledges 200 regardless of the internal outcome, so the
// provider never enters a retry storm over payloads we will never accept.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	var payload model.WebhookPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	}

	h.paymentService.HandleWebhook(ctx, &payload)

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
