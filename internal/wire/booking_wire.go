package wire

import (
	"restaurant-booking/internal/adaptor"
	"restaurant-booking/pkg/middleware"
	"restaurant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const adminTokenHeader = "X-Admin-Token"

// wireAdmin mounts the operator-facing routes under /api/admin.
func wireAdmin(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	restaurantHandler *adaptor.RestaurantHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireSecret(adminTokenHeader, config.Security.AdminTokenHash, log))

		r.Route("/bookings/{number}", func(r chi.Router) {
			// GET /api/admin/bookings/{number}
			r.Get("/", bookingHandler.GetBooking)
			// PUT /api/admin/bookings/{number}/status
			r.Put("/status", bookingHandler.UpdateStatus)
			// POST /api/admin/bookings/{number}/preferences
			r.Post("/preferences", bookingHandler.AppendPreferences)
		})

		wireRestaurant(r, restaurantHandler)
	})
}
