package usecase

import (
	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

// Integrations are the outside services the booking flow talks to. Parser may
// be nil when no AI key is configured.
type Integrations struct {
	Parser    TextParser
	Operator  Transport
	Direct    Transport
	Clock     utils.Clock
	Templates Templates
}

type Service struct {
	Conversation ConversationService
	Booking      BookingService
	Restaurant   RestaurantService
}

func NewService(repo *repository.Repository, ext Integrations, config *utils.Config, log *zap.Logger) *Service {
	normalizer := NewNormalizer(ext.Parser, config.AI.ParseTimeout, log)
	collector := NewCollector(repo.Session, normalizer, ext.Templates, ext.Clock, log)
	finalizer := NewFinalizer(repo, config.Booking.ContactMethod, config.Booking.StoreTimeout, log)
	dispatcher := NewDispatcher([]Channel{
		{Name: entity.ChannelOperator, Transport: ext.Operator},
		{Name: entity.ChannelDirect, Transport: ext.Direct, AcceptsUnknown: true},
	}, ext.Templates, config.Messenger.Timeout, log)

	booking := NewBookingService(repo.Booking, log)

	return &Service{
		Conversation: NewConversationService(collector, finalizer, dispatcher, booking, ext.Templates, ext.Clock, log),
		Booking:      booking,
		Restaurant:   NewRestaurantService(repo.Restaurant, log),
	}
}
