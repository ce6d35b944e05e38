package repository

import (
	"restaurant-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking    BookingRepository
	Restaurant RestaurantRepository
	Session    SessionStore
}

// NewRepository builds the Postgres-backed stores. The session store is
// chosen by the caller since it may live in memory or in Redis.
func NewRepository(db database.PgxIface, sessions SessionStore, log *zap.Logger) *Repository {
	return &Repository{
		Booking:    NewBookingRepository(db, log),
		Restaurant: NewRestaurantRepository(db, log),
		Session:    sessions,
	}
}
