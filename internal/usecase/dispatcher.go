package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"restaurant-booking/internal/data/entity"

	"go.uber.org/zap"
)

// Transport is one notification channel to the restaurant operator.
type Transport interface {
	ResolveHandle(ctx context.Context, name string) (int64, error)
	Send(ctx context.Context, chatID int64, text string) error
}

// Channel is a configured transport in the fallback order. A channel with
// AcceptsUnknown set also tries contacts that are neither a handle nor a
// numeric id, by treating the raw string as a handle.
type Channel struct {
	Name           entity.NotificationChannel
	Transport      Transport
	AcceptsUnknown bool
}

type Dispatcher interface {
	// Dispatch makes at most one attempt per channel, in order, and stops at
	// the first delivery. The error is a *entity.DeliveryError when nothing
	// was delivered to a known contact.
	Dispatch(ctx context.Context, booking *entity.Booking) ([]entity.NotificationAttempt, error)
}

type dispatcher struct {
	channels  []Channel
	templates Templates
	timeout   time.Duration
	log       *zap.Logger
}

func NewDispatcher(channels []Channel, templates Templates, timeout time.Duration, log *zap.Logger) Dispatcher {
	return &dispatcher{
		channels:  channels,
		templates: templates,
		timeout:   timeout,
		log:       log.With(zap.String("service", "dispatcher")),
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, booking *entity.Booking) ([]entity.NotificationAttempt, error) {
	log := d.log.With(zap.Int64("booking_number", booking.BookingNumber))
	contact := entity.ParseContact(booking.RestaurantContact)

	if contact.Kind == entity.ContactNone {
		log.Warn("Restaurant has no contact, manual follow-up needed",
			zap.String("restaurant", booking.RestaurantName),
		)
		attempts := make([]entity.NotificationAttempt, 0, len(d.channels))
		for _, ch := range d.channels {
			attempts = append(attempts, entity.NotificationAttempt{
				BookingNumber: booking.BookingNumber,
				Channel:       ch.Name,
				Outcome:       entity.OutcomeSkipped,
			})
		}
		return attempts, nil
	}

	text := d.message(booking)
	var attempts []entity.NotificationAttempt
	for _, ch := range d.channels {
		attempt := entity.NotificationAttempt{BookingNumber: booking.BookingNumber, Channel: ch.Name}

		if contact.Kind == entity.ContactUnknown && !ch.AcceptsUnknown {
			attempt.Outcome = entity.OutcomeSkipped
			attempts = append(attempts, attempt)
			log.Info("Channel skipped for unrecognised contact",
				zap.String("channel", string(ch.Name)),
				zap.String("contact", contact.Raw),
			)
			continue
		}

		if err := d.deliver(ctx, ch, contact, text); err != nil {
			attempt.Outcome = entity.OutcomeFailed
			attempt.Err = err
			attempts = append(attempts, attempt)
			log.Warn("Notification attempt failed",
				zap.Error(err),
				zap.String("channel", string(ch.Name)),
			)
			continue
		}

		attempt.Outcome = entity.OutcomeDelivered
		attempts = append(attempts, attempt)
		log.Info("Notification delivered", zap.String("channel", string(ch.Name)))
		return attempts, nil
	}

	log.Error("All notification channels failed, manual notification required",
		zap.String("restaurant", booking.RestaurantName),
		zap.String("contact", booking.RestaurantContact),
		zap.Int("attempts", len(attempts)),
	)
	return attempts, &entity.DeliveryError{BookingNumber: booking.BookingNumber, Attempts: attempts}
}

func (d *dispatcher) deliver(ctx context.Context, ch Channel, contact entity.ContactDescriptor, text string) error {
	if ch.Transport == nil {
		return errors.New("channel has no transport")
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	var chatID int64
	switch contact.Kind {
	case entity.ContactChannelID:
		chatID = contact.ChannelID
	case entity.ContactHandle:
		id, err := ch.Transport.ResolveHandle(ctx, contact.Handle)
		if err != nil {
			return err
		}
		chatID = id
	default:
		id, err := ch.Transport.ResolveHandle(ctx, contact.Raw)
		if err != nil {
			return err
		}
		chatID = id
	}

	return ch.Transport.Send(ctx, chatID, text)
}

func (d *dispatcher) message(b *entity.Booking) string {
	phone := b.Phone
	if phone == "" {
		phone = "-"
	}
	preferences := b.Preferences
	if preferences == "" {
		preferences = "-"
	}
	return render(d.templates.OperatorNotice,
		"number", strconv.FormatInt(b.BookingNumber, 10),
		"restaurant", b.RestaurantName,
		"date", b.Date.String(),
		"time", b.Time.String(),
		"guests", strconv.Itoa(b.Guests),
		"client", b.ClientName,
		"phone", phone,
		"method", b.ContactMethod,
		"preferences", preferences,
	)
}
