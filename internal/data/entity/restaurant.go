package entity

import "time"

// Restaurant is the reference carried through a booking dialogue.
type Restaurant struct {
	Name string `json:"name"`
}

// RestaurantContact is the operator contact registered for a restaurant.
type RestaurantContact struct {
	RestaurantName string    `db:"restaurant_name"`
	Contact        string    `db:"contact"`
	UpdatedAt      time.Time `db:"updated_at"`
}
