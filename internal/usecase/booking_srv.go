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

type BookingService interface {
	GetBooking(ctx context.Context, number int64) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, number int64, req *request.StatusUpdateRequest) (*response.BookingResponse, error)

	// AppendPreferences adds free text to an existing booking. A non-empty
	// clientCode must match the booking's owner; operators pass "".
	AppendPreferences(ctx context.Context, number int64, clientCode, text string) error
}

type bookingService struct {
	repo repository.BookingRepository
	log  *zap.Logger
}

func NewBookingService(repo repository.BookingRepository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBooking(ctx context.Context, number int64) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, number)
	if err != nil {
		return nil, err
	}
	return response.NewBookingResponse(booking), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, number int64, req *request.StatusUpdateRequest) (*response.BookingResponse, error) {
	status := entity.BookingStatus(req.Status)
	if status != entity.BookingStatusConfirmed && status != entity.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidStatus, req.Status)
	}

	booking, err := s.find(ctx, number)
	if err != nil {
		return nil, err
	}

	// Cancelled is final.
	if booking.Status != entity.BookingStatusPending && booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: booking %d is %s", entity.ErrInvalidStatus, number, booking.Status)
	}

	if err := s.repo.UpdateStatus(ctx, number, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.log.Info("Booking status updated",
		zap.Int64("booking_number", number),
		zap.String("status", string(status)),
	)
	return response.NewBookingResponse(booking), nil
}

func (s *bookingService) AppendPreferences(ctx context.Context, number int64, clientCode, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: empty preferences", entity.ErrInvalidChoice)
	}

	booking, err := s.find(ctx, number)
	if err != nil {
		return err
	}
	if clientCode != "" && booking.ClientCode != clientCode {
		s.log.Warn("Preferences rejected for non-owner",
			zap.Int64("booking_number", number),
			zap.String("client_code", clientCode),
		)
		return entity.ErrNotBookingOwner
	}

	if err := s.repo.AppendPreferences(ctx, number, text); err != nil {
		return err
	}

	s.log.Info("Booking preferences appended", zap.Int64("booking_number", number))
	return nil
}

func (s *bookingService) find(ctx context.Context, number int64) (*entity.Booking, error) {
	booking, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: %d", entity.ErrBookingNotFound, number)
	}
	return booking, nil
}
