package adaptor

import (
	"net/http"

	"restaurant-booking/internal/dto/request"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetBooking handles GET /api/admin/bookings/{number}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	number, ok := bookingNumber(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), number)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateStatus handles PUT /api/admin/bookings/{number}/status
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	number, ok := bookingNumber(w, r)
	if !ok {
		return
	}

	var req request.StatusUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), number, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// AppendPreferences handles POST /api/admin/bookings/{number}/preferences
func (h *BookingHandler) AppendPreferences(w http.ResponseWriter, r *http.Request) {
	number, ok := bookingNumber(w, r)
	if !ok {
		return
	}

	var req request.PreferencesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.AppendPreferences(r.Context(), number, "", req.Text); err != nil {
		handleServiceError(w, h.log, err, "append preferences")
		return
	}

	booking, err := h.service.GetBooking(r.Context(), number)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}
	utils.ResponseSuccess(w, "success", booking)
}

func bookingNumber(w http.ResponseWriter, r *http.Request) (int64, bool) {
	number, ok := utils.ParseBookingNumber(chi.URLParam(r, "number"))
	if !ok {
		utils.ResponseBadRequest(w, "Booking number must be a positive integer", nil)
	}
	return number, ok
}
