package request

type EventType string

const (
	EventStart       EventType = "start"
	EventButton      EventType = "button"
	EventText        EventType = "text"
	EventPreferences EventType = "preferences"
)

type ProfileRequest struct {
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Username  string `json:"username" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=32"`
}

// InboundEventRequest is one event forwarded by the messaging transport.
type InboundEventRequest struct {
	UserID        string         `json:"user_id" validate:"required,max=128"`
	Type          EventType      `json:"type" validate:"required,oneof=start button text preferences"`
	Text          string         `json:"text" validate:"required_if=Type text,required_if=Type preferences,max=2000"`
	Data          string         `json:"data" validate:"required_if=Type button,max=64"`
	Restaurants   []string       `json:"restaurants" validate:"required_if=Type start,max=50,dive,required,notblank,max=200"`
	Profile       ProfileRequest `json:"profile"`
	BookingNumber int64          `json:"booking_number" validate:"required_if=Type preferences,gte=0"`
}
