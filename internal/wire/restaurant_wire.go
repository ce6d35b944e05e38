package wire

import (
	"restaurant-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRestaurant(r chi.Router, restaurantHandler *adaptor.RestaurantHandler) {
	// PUT /api/admin/restaurants/contact - register or replace an operator contact
	r.Put("/restaurants/contact", restaurantHandler.RegisterContact)
}
