package routes

import (
	"lagocruise/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterWebhookRoutes registers inbound gateway callbacks. These are
// signature-gated, not JWT-gated.
func RegisterWebhookRoutes(r *gin.Engine, h *handlers.WebhookHandler) {
	r.POST("/api/v1/webhooks/paystack", h.HandlePaystack)
}
