package wire

import (
	"restaurant-booking/internal/adaptor"
	"restaurant-booking/pkg/middleware"
	"restaurant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const webhookSecretHeader = "X-Webhook-Secret"

func wireWebhook(r chi.Router, webhookHandler *adaptor.WebhookHandler, config *utils.Config, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSecret(webhookSecretHeader, config.Security.WebhookSecretHash, log))

		// POST /api/webhook/events - one inbound chat event per request
		r.Post("/api/webhook/events", webhookHandler.HandleEvent)
	})
}
