package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNoSession         = errors.New("no active booking session")
	ErrUnexpectedEvent   = errors.New("event not expected at current step")
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrIncompleteSession = errors.New("booking session is incomplete")
	ErrNoRestaurants     = errors.New("no restaurants to choose from")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNotBookingOwner   = errors.New("booking belongs to another client")
	ErrInvalidStatus     = errors.New("invalid booking status")
)

// ParseError means free text could not be normalized into a slot value.
type ParseError struct {
	Slot string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not understand %s", e.Slot)
}

// ValidationError means a normalized value is outside the allowed range.
type ValidationError struct {
	Slot   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s out of range: %s", e.Slot, e.Reason)
}

// PersistenceError means the booking store failed or rejected the write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("booking store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// DeliveryError means every notification channel failed for a booking.
type DeliveryError struct {
	BookingNumber int64
	Attempts      []NotificationAttempt
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("notification for booking %d failed on %d channel(s)", e.BookingNumber, len(e.Attempts))
}
