package handlers

import (
	"encoding/json"
	"net/http"

	"lagocruise/models"
	booking "lagocruise/services/booking"
	"lagocruise/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler receives Paystack event callbacks. Once the signature checks
// out and the event is dispatched, the response is always 200 so the gateway
// never retries storms over internal handler errors.
type WebhookHandler struct {
	gateway payment.Gateway
	svc     booking.BookingService
	logger  *zap.Logger
}

func NewWebhookHandler(gateway payment.Gateway, svc booking.BookingService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{gateway: gateway, svc: svc, logger: logger}
}

// HandlePaystack verifies the x-paystack-signature header against the raw
// body, then dispatches the event.
func (h *WebhookHandler) HandlePaystack(c *gin.Context) {
	signature := c.GetHeader("x-paystack-signature")
	if signature == "" {
		h.logger.Error("webhook signature missing")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature missing"})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		h.logger.Error("failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	if !h.gateway.VerifyWebhookSignature(payload, signature) {
		h.logger.Error("invalid webhook signature")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	var event models.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Error("failed to parse webhook event", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"message": "Webhook received with errors"})
		return
	}

	h.logger.Info("received paystack webhook", zap.String("event", event.Event))

	ctx := c.Request.Context()
	switch event.Event {
	case models.EventChargeSuccess:
		err = h.svc.ApplyChargeSuccess(ctx, event.Data)
	case models.EventChargeFailed:
		err = h.svc.ApplyChargeFailed(ctx, event.Data)
	case models.EventRefundProcessed:
		err = h.svc.ApplyRefundProcessed(ctx, event.Data)
	case models.EventRefundFailed:
		err = h.svc.ApplyRefundFailed(ctx, event.Data)
	default:
		h.logger.Info("unhandled webhook event", zap.String("event", event.Event))
	}

	if err != nil {
		h.logger.Error("webhook processing error",
			zap.String("event", event.Event),
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"message": "Webhook received with errors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook received"})
}
