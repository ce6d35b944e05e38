package adaptor

import (
	"net/http"

	"restaurant-booking/internal/dto/request"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

type RestaurantHandler struct {
	service usecase.RestaurantService
	log     *zap.Logger
}

func NewRestaurantHandler(service usecase.RestaurantService, log *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		log:     log.With(zap.String("handler", "restaurant")),
	}
}

// RegisterContact handles PUT /api/admin/restaurants/contact
func (h *RestaurantHandler) RegisterContact(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.service.RegisterContact(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register restaurant contact")
		return
	}

	utils.ResponseSuccess(w, "success", contact)
}
