package response

import "time"

type ContactResponse struct {
	RestaurantName string    `json:"restaurant_name"`
	Contact        string    `json:"contact"`
	Kind           string    `json:"kind"`
	UpdatedAt      time.Time `json:"updated_at"`
}
