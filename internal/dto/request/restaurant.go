package request

type ContactRequest struct {
	RestaurantName string `json:"restaurant_name" validate:"required,max=200"`
	Contact        string `json:"contact" validate:"required,max=200"`
}
