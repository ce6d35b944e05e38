package usecase

import (
	"context"
	"fmt"
	"strings"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/internal/dto/request"
	"restaurant-booking/internal/dto/response"

	"go.uber.org/zap"
)

type RestaurantService interface {
	RegisterContact(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error)
}

type restaurantService struct {
	repo repository.RestaurantRepository
	log  *zap.Logger
}

func NewRestaurantService(repo repository.RestaurantRepository, log *zap.Logger) RestaurantService {
	return &restaurantService{
		repo: repo,
		log:  log.With(zap.String("service", "restaurant")),
	}
}

// RegisterContact stores the raw contact string as given. Strings that parse
// as neither a handle nor a channel id are accepted and logged, since the
// direct channel may still be able to use them.
func (s *restaurantService) RegisterContact(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error) {
	contact := &entity.RestaurantContact{
		RestaurantName: strings.TrimSpace(req.RestaurantName),
		Contact:        strings.TrimSpace(req.Contact),
	}
	descriptor := entity.ParseContact(contact.Contact)
	if descriptor.Kind == entity.ContactNone {
		return nil, fmt.Errorf("%w: empty contact", entity.ErrInvalidChoice)
	}
	if descriptor.Kind == entity.ContactUnknown {
		s.log.Warn("Registering unrecognised contact format",
			zap.String("restaurant", contact.RestaurantName),
			zap.String("contact", contact.Contact),
		)
	}

	if err := s.repo.UpsertContact(ctx, contact); err != nil {
		return nil, err
	}

	s.log.Info("Restaurant contact registered",
		zap.String("restaurant", contact.RestaurantName),
		zap.String("kind", descriptor.Kind.String()),
	)
	return &response.ContactResponse{
		RestaurantName: contact.RestaurantName,
		Contact:        contact.Contact,
		Kind:           descriptor.Kind.String(),
		UpdatedAt:      contact.UpdatedAt,
	}, nil
}
