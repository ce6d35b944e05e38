package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingRepository is the durable booking store. Booking numbers are
// allocated by the database identity column, never by the caller.
type BookingRepository interface {
	Insert(ctx context.Context, booking *entity.Booking) (int64, error)
	FindByNumber(ctx context.Context, number int64) (*entity.Booking, error)
	AppendPreferences(ctx context.Context, number int64, text string) error
	UpdateStatus(ctx context.Context, number int64, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_number, restaurant_name, client_name, phone, booking_date, booking_time,
	guests, contact_method, restaurant_contact, preferences, client_code, status, created_at, updated_at`

func (r *bookingRepository) Insert(ctx context.Context, booking *entity.Booking) (int64, error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := time.Now()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	query := `
		INSERT INTO bookings (id, restaurant_name, client_name, phone, booking_date, booking_time, guests,
		                      contact_method, restaurant_contact, preferences, client_code, status,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING booking_number
	`

	err := r.db.QueryRow(ctx, query,
		booking.ID,
		booking.RestaurantName,
		booking.ClientName,
		booking.Phone,
		booking.Date.In(time.UTC),
		booking.Time.String(),
		booking.Guests,
		booking.ContactMethod,
		booking.RestaurantContact,
		booking.Preferences,
		booking.ClientCode,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.BookingNumber)

	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("restaurant", booking.RestaurantName),
			zap.String("client_code", booking.ClientCode),
		)
		return 0, fmt.Errorf("insert booking for %s: %w", booking.ClientCode, err)
	}

	return booking.BookingNumber, nil
}

func (r *bookingRepository) FindByNumber(ctx context.Context, number int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_number = $1`

	var (
		booking  entity.Booking
		date     time.Time
		timeText string
	)
	err := r.db.QueryRow(ctx, query, number).Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.RestaurantName,
		&booking.ClientName,
		&booking.Phone,
		&date,
		&timeText,
		&booking.Guests,
		&booking.ContactMethod,
		&booking.RestaurantContact,
		&booking.Preferences,
		&booking.ClientCode,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by number",
			zap.Error(err),
			zap.Int64("booking_number", number),
		)
		return nil, fmt.Errorf("find booking %d: %w", number, err)
	}

	booking.Date = entity.DateOf(date)
	if booking.Time, err = entity.ParseTimeOfDay(timeText); err != nil {
		return nil, fmt.Errorf("booking %d has malformed time: %w", number, err)
	}

	return &booking, nil
}

// AppendPreferences adds text to the booking's preferences, separated from any
// existing text by a newline. The concatenation happens in SQL so concurrent
// appends do not overwrite each other.
func (r *bookingRepository) AppendPreferences(ctx context.Context, number int64, text string) error {
	query := `
		UPDATE bookings
		SET preferences = CASE WHEN preferences = '' THEN $2 ELSE preferences || E'\n' || $2 END,
		    updated_at = NOW()
		WHERE booking_number = $1
	`

	result, err := r.db.Exec(ctx, query, number, text)
	if err != nil {
		r.log.Error("Failed to append booking preferences",
			zap.Error(err),
			zap.Int64("booking_number", number),
		)
		return fmt.Errorf("append preferences to booking %d: %w", number, err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, number int64, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE booking_number = $1`

	result, err := r.db.Exec(ctx, query, number, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_number", number),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %d status to %s: %w", number, status, err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}
