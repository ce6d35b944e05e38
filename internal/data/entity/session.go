package entity

import "fmt"

type Step string

const (
	StepIdle                Step = "idle"
	StepRestaurantSelection Step = "restaurant_selection"
	StepTimeSelection       Step = "time_selection"
	StepWaitingCustomTime   Step = "waiting_custom_time"
	StepGuestSelection      Step = "guest_selection"
	StepWaitingCustomGuests Step = "waiting_custom_guests"
	StepDateSelection       Step = "date_selection"
	StepWaitingCustomDate   Step = "waiting_custom_date"
	StepCompleted           Step = "completed"
)

// ClientProfile carries whatever the messaging transport knows about the user.
type ClientProfile struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Session is the per-conversation booking state. Slots are filled strictly in
// the order restaurant, time, guests, date.
type Session struct {
	UserID     string        `json:"user_id"`
	Step       Step          `json:"step"`
	Profile    ClientProfile `json:"profile"`
	Candidates []Restaurant  `json:"candidates,omitempty"`
	Restaurant *Restaurant   `json:"restaurant,omitempty"`
	Time       *TimeOfDay    `json:"time,omitempty"`
	Guests     *int          `json:"guests,omitempty"`
	Date       *Date         `json:"date,omitempty"`
}

// NewSession returns the fresh, empty state for userID.
func NewSession(userID string) *Session {
	return &Session{UserID: userID, Step: StepIdle}
}

func (s *Session) IsEmpty() bool {
	return s.Step == StepIdle && s.Restaurant == nil && s.Time == nil &&
		s.Guests == nil && s.Date == nil && len(s.Candidates) == 0
}

// Validate checks that the filled slots agree with the current step.
func (s *Session) Validate() error {
	need := func(set bool, slot string) error {
		if !set {
			return fmt.Errorf("step %s requires %s to be set", s.Step, slot)
		}
		return nil
	}
	forbid := func(set bool, slot string) error {
		if set {
			return fmt.Errorf("step %s requires %s to be empty", s.Step, slot)
		}
		return nil
	}

	hasRestaurant := s.Restaurant != nil
	hasTime := s.Time != nil
	hasGuests := s.Guests != nil
	hasDate := s.Date != nil

	var checks []error
	switch s.Step {
	case StepIdle, StepRestaurantSelection:
		checks = []error{forbid(hasRestaurant, "restaurant"), forbid(hasTime, "time"),
			forbid(hasGuests, "guests"), forbid(hasDate, "date")}
	case StepTimeSelection, StepWaitingCustomTime:
		checks = []error{need(hasRestaurant, "restaurant"), forbid(hasTime, "time"),
			forbid(hasGuests, "guests"), forbid(hasDate, "date")}
	case StepGuestSelection, StepWaitingCustomGuests:
		checks = []error{need(hasRestaurant, "restaurant"), need(hasTime, "time"),
			forbid(hasGuests, "guests"), forbid(hasDate, "date")}
	case StepDateSelection, StepWaitingCustomDate:
		checks = []error{need(hasRestaurant, "restaurant"), need(hasTime, "time"),
			need(hasGuests, "guests"), forbid(hasDate, "date")}
	case StepCompleted:
		checks = []error{need(hasRestaurant, "restaurant"), need(hasTime, "time"),
			need(hasGuests, "guests"), need(hasDate, "date")}
	default:
		return fmt.Errorf("unknown step %q", s.Step)
	}

	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
