package usecase

import (
	"context"
	"strings"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/data/repository"

	"go.uber.org/zap"
)

// Finalizer turns a completed session into a stored booking.
type Finalizer interface {
	Finalize(ctx context.Context, userID string) (*entity.Booking, error)
}

type finalizer struct {
	bookings      repository.BookingRepository
	restaurants   repository.RestaurantRepository
	sessions      repository.SessionStore
	contactMethod string
	timeout       time.Duration
	log           *zap.Logger
}

func NewFinalizer(repo *repository.Repository, contactMethod string, timeout time.Duration, log *zap.Logger) Finalizer {
	return &finalizer{
		bookings:      repo.Booking,
		restaurants:   repo.Restaurant,
		sessions:      repo.Session,
		contactMethod: contactMethod,
		timeout:       timeout,
		log:           log.With(zap.String("service", "finalizer")),
	}
}

// Finalize stores the booking for userID's completed session and resets the
// session. On a store failure it returns *entity.PersistenceError and leaves
// the session completed so the user can retry without re-entering anything.
func (f *finalizer) Finalize(ctx context.Context, userID string) (*entity.Booking, error) {
	session, err := f.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step != entity.StepCompleted {
		return nil, entity.ErrIncompleteSession
	}
	if err := session.Validate(); err != nil {
		f.log.Error("Completed session fails validation", zap.Error(err), zap.String("user_id", userID))
		return nil, entity.ErrIncompleteSession
	}

	contact, err := f.lookupContact(ctx, session.Restaurant.Name)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "get contact", Err: err}
	}

	booking := &entity.Booking{
		RestaurantName:    session.Restaurant.Name,
		ClientName:        clientName(session),
		Phone:             session.Profile.Phone,
		Date:              *session.Date,
		Time:              *session.Time,
		Guests:            *session.Guests,
		ContactMethod:     f.contactMethod,
		RestaurantContact: contact,
		ClientCode:        userID,
		Status:            entity.BookingStatusPending,
	}

	insertCtx, cancel := f.withTimeout(ctx)
	number, err := f.bookings.Insert(insertCtx, booking)
	cancel()
	if err != nil {
		f.log.Error("Failed to store booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("restaurant", booking.RestaurantName),
		)
		return nil, &entity.PersistenceError{Op: "insert", Err: err}
	}
	booking.BookingNumber = number

	if err := f.sessions.Set(ctx, entity.NewSession(userID)); err != nil {
		f.log.Error("Booking stored but session reset failed",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("booking_number", number),
		)
	}

	f.log.Info("Booking finalized",
		zap.Int64("booking_number", number),
		zap.String("user_id", userID),
		zap.String("restaurant", booking.RestaurantName),
		zap.String("date", booking.Date.String()),
		zap.String("time", booking.Time.String()),
		zap.Int("guests", booking.Guests),
	)
	return booking, nil
}

func (f *finalizer) lookupContact(ctx context.Context, restaurant string) (string, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	contact, ok, err := f.restaurants.GetContact(ctx, restaurant)
	if err != nil {
		f.log.Error("Failed to look up restaurant contact", zap.Error(err), zap.String("restaurant", restaurant))
		return "", err
	}
	if !ok {
		return "", nil
	}
	return contact, nil
}

func (f *finalizer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.timeout)
}

// clientName prefers the full name, then the username, then a label built
// from the user id.
func clientName(session *entity.Session) string {
	p := session.Profile
	if name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName)); name != "" {
		return name
	}
	if p.Username != "" {
		return "@" + strings.TrimPrefix(p.Username, "@")
	}
	return "Guest " + session.UserID
}
