package response

import (
	"time"

	"restaurant-booking/internal/data/entity"
)

type BookingResponse struct {
	BookingNumber     int64                `json:"booking_number"`
	RestaurantName    string               `json:"restaurant_name"`
	ClientName        string               `json:"client_name"`
	Phone             string               `json:"phone,omitempty"`
	Date              string               `json:"date"`
	Time              string               `json:"time"`
	Guests            int                  `json:"guests"`
	ContactMethod     string               `json:"contact_method"`
	RestaurantContact string               `json:"restaurant_contact,omitempty"`
	Preferences       string               `json:"preferences,omitempty"`
	ClientCode        string               `json:"client_code"`
	Status            entity.BookingStatus `json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
}

func NewBookingResponse(b *entity.Booking) *BookingResponse {
	return &BookingResponse{
		BookingNumber:     b.BookingNumber,
		RestaurantName:    b.RestaurantName,
		ClientName:        b.ClientName,
		Phone:             b.Phone,
		Date:              b.Date.String(),
		Time:              b.Time.String(),
		Guests:            b.Guests,
		ContactMethod:     b.ContactMethod,
		RestaurantContact: b.RestaurantContact,
		Preferences:       b.Preferences,
		ClientCode:        b.ClientCode,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
	}
}
