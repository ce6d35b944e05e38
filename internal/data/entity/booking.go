package entity

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is the durable reservation. Everything except Preferences is fixed
// once BookingNumber has been assigned by the store.
type Booking struct {
	Base
	BookingNumber     int64         `db:"booking_number"`
	RestaurantName    string        `db:"restaurant_name"`
	ClientName        string        `db:"client_name"`
	Phone             string        `db:"phone"`
	Date              Date          `db:"booking_date"`
	Time              TimeOfDay     `db:"booking_time"`
	Guests            int           `db:"guests"`
	ContactMethod     string        `db:"contact_method"`
	RestaurantContact string        `db:"restaurant_contact"`
	Preferences       string        `db:"preferences"`
	ClientCode        string        `db:"client_code"`
	Status            BookingStatus `db:"status"`
}
