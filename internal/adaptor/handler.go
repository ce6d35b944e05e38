package adaptor

import (
	"restaurant-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Webhook    *WebhookHandler
	Booking    *BookingHandler
	Restaurant *RestaurantHandler
	Health     *HealthHandler
}

func NewHandler(service *usecase.Service, checks map[string]HealthCheck, log *zap.Logger) *Handler {
	return &Handler{
		Webhook:    NewWebhookHandler(service.Conversation, log),
		Booking:    NewBookingHandler(service.Booking, log),
		Restaurant: NewRestaurantHandler(service.Restaurant, log),
		Health:     NewHealthHandler(checks, log),
	}
}
