package repository

import (
	"context"
	"errors"
	"fmt"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RestaurantRepository interface {
	// GetContact returns the raw contact string registered for name. ok is
	// false when the restaurant has no contact.
	GetContact(ctx context.Context, name string) (contact string, ok bool, err error)
	UpsertContact(ctx context.Context, contact *entity.RestaurantContact) error
}

type restaurantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRestaurantRepository(db database.PgxIface, log *zap.Logger) RestaurantRepository {
	return &restaurantRepository{
		db:  db,
		log: log.With(zap.String("repository", "restaurant")),
	}
}

func (r *restaurantRepository) GetContact(ctx context.Context, name string) (string, bool, error) {
	query := `SELECT contact FROM restaurant_contacts WHERE restaurant_name = $1`

	var contact string
	err := r.db.QueryRow(ctx, query, name).Scan(&contact)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		r.log.Error("Failed to get restaurant contact",
			zap.Error(err),
			zap.String("restaurant", name),
		)
		return "", false, fmt.Errorf("get contact for %s: %w", name, err)
	}

	if contact == "" {
		return "", false, nil
	}
	return contact, true, nil
}

func (r *restaurantRepository) UpsertContact(ctx context.Context, contact *entity.RestaurantContact) error {
	query := `
		INSERT INTO restaurant_contacts (restaurant_name, contact, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (restaurant_name) DO UPDATE
		SET contact = EXCLUDED.contact, updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, contact.RestaurantName, contact.Contact).Scan(&contact.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to upsert restaurant contact",
			zap.Error(err),
			zap.String("restaurant", contact.RestaurantName),
		)
		return fmt.Errorf("upsert contact for %s: %w", contact.RestaurantName, err)
	}

	return nil
}
