package adaptor

import (
	"net/http"

	"restaurant-booking/internal/dto/request"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

type WebhookHandler struct {
	service usecase.ConversationService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.ConversationService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// HandleEvent handles POST /api/webhook/events
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var req request.InboundEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reply, err := h.service.Handle(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "handle "+string(req.Type)+" event")
		return
	}

	utils.ResponseSuccess(w, "success", reply)
}
