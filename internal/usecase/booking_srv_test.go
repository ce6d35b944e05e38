package usecase

import (
	"context"
	"testing"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBookingService_UpdateStatus(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewBookingService(repo, zap.NewNop())
	ctx := context.Background()

	number, err := repo.Insert(ctx, testBooking(""))
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(ctx, number, &request.StatusUpdateRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)

	resp, err = svc.UpdateStatus(ctx, number, &request.StatusUpdateRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)

	_, err = svc.UpdateStatus(ctx, number, &request.StatusUpdateRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, number, &request.StatusUpdateRequest{Status: "pending"})
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, 404, &request.StatusUpdateRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

func TestBookingService_AppendPreferencesAsOperator(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewBookingService(repo, zap.NewNop())
	ctx := context.Background()

	booking := testBooking("")
	booking.ClientCode = "u1"
	number, err := repo.Insert(ctx, booking)
	require.NoError(t, err)

	require.NoError(t, svc.AppendPreferences(ctx, number, "", "vegan menu"))
	require.NoError(t, svc.AppendPreferences(ctx, number, "u1", "high chair"))
	assert.ErrorIs(t, svc.AppendPreferences(ctx, number, "u1", "   "), entity.ErrInvalidChoice)

	got, err := svc.GetBooking(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, "vegan menu\nhigh chair", got.Preferences)
}

func TestRestaurantService_RegisterContact(t *testing.T) {
	repo := newFakeRestaurantRepo(nil)
	svc := NewRestaurantService(repo, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.RegisterContact(ctx, &request.ContactRequest{RestaurantName: " Luna ", Contact: "=@luna"})
	require.NoError(t, err)
	assert.Equal(t, "Luna", resp.RestaurantName)
	assert.Equal(t, "handle", resp.Kind)
	assert.Equal(t, "=@luna", repo.contacts["Luna"])

	resp, err = svc.RegisterContact(ctx, &request.ContactRequest{RestaurantName: "Sol", Contact: "call the manager"})
	require.NoError(t, err)
	assert.Equal(t, "unknown", resp.Kind)

	_, err = svc.RegisterContact(ctx, &request.ContactRequest{RestaurantName: "Sol", Contact: "  "})
	assert.ErrorIs(t, err, entity.ErrInvalidChoice)
}
