package wire

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant-booking/internal/adaptor"
	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type stubBookings struct {
	bookings map[int64]*entity.Booking
}

func (s *stubBookings) Insert(_ context.Context, b *entity.Booking) (int64, error) {
	return 0, errors.New("not used")
}

func (s *stubBookings) FindByNumber(_ context.Context, number int64) (*entity.Booking, error) {
	return s.bookings[number], nil
}

func (s *stubBookings) AppendPreferences(_ context.Context, number int64, text string) error {
	if _, ok := s.bookings[number]; !ok {
		return entity.ErrBookingNotFound
	}
	return nil
}

func (s *stubBookings) UpdateStatus(_ context.Context, number int64, status entity.BookingStatus) error {
	b, ok := s.bookings[number]
	if !ok {
		return entity.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type stubRestaurants struct{}

func (stubRestaurants) GetContact(_ context.Context, name string) (string, bool, error) {
	return "", false, nil
}

func (stubRestaurants) UpsertContact(_ context.Context, c *entity.RestaurantContact) error {
	c.UpdatedAt = time.Now()
	return nil
}

func hash(t *testing.T, secret string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestApp(t *testing.T, healthErr error) *App {
	t.Helper()

	repo := &repository.Repository{
		Booking: &stubBookings{bookings: map[int64]*entity.Booking{
			7: {BookingNumber: 7, RestaurantName: "Luna", Status: entity.BookingStatusPending},
		}},
		Restaurant: stubRestaurants{},
		Session:    repository.NewMemorySessionStore(),
	}

	config := &utils.Config{
		App: utils.AppConfig{RateLimit: 1000},
		AI:  utils.AIConfig{ParseTimeout: time.Second},
		Messenger: utils.MessengerConfig{
			Timeout: time.Second,
		},
		Booking: utils.BookingConfig{
			Timezone:      time.UTC,
			ContactMethod: "telegram",
			StoreTimeout:  time.Second,
		},
		Security: utils.SecurityConfig{
			WebhookSecretHash: hash(t, "hook"),
			AdminTokenHash:    hash(t, "admin"),
		},
	}

	ext := usecase.Integrations{
		Clock:     utils.NewFixedClock(time.Date(2030, 3, 14, 18, 5, 0, 0, time.UTC)),
		Templates: usecase.DefaultTemplates(),
	}
	checks := map[string]adaptor.HealthCheck{
		"postgres": func(context.Context) error { return healthErr },
	}

	return Wiring(repo, ext, checks, config, zap.NewNop())
}

func serve(app *App, method, path, header, value, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := serve(newTestApp(t, nil), http.MethodGet, "/health", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(newTestApp(t, errors.New("down")), http.MethodGet, "/health", "", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_AdminRoutes(t *testing.T) {
	app := newTestApp(t, nil)

	t.Run("missing token", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/admin/bookings/7", "", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/admin/bookings/7", adminTokenHeader, "nope", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("webhook secret is not an admin token", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/admin/bookings/7", adminTokenHeader, "hook", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("get booking", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/admin/bookings/7", adminTokenHeader, "admin", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"Luna"`)
	})

	t.Run("unknown booking", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/admin/bookings/99", adminTokenHeader, "admin", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update status", func(t *testing.T) {
		rec := serve(app, http.MethodPut, "/api/admin/bookings/7/status", adminTokenHeader, "admin",
			`{"status":"confirmed"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"confirmed"`)
	})

	t.Run("register contact", func(t *testing.T) {
		rec := serve(app, http.MethodPut, "/api/admin/restaurants/contact", adminTokenHeader, "admin",
			`{"restaurant_name":"Luna","contact":"@luna"}`)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}

func TestRouter_Webhook(t *testing.T) {
	app := newTestApp(t, nil)
	body := `{"user_id":"u1","type":"start","restaurants":["Luna","Sol"]}`

	rec := serve(app, http.MethodPost, "/api/webhook/events", webhookSecretHeader, "admin", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(app, http.MethodPost, "/api/webhook/events", webhookSecretHeader, "hook", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data struct {
			Step    string `json:"step"`
			Options []any  `json:"options"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, string(entity.StepRestaurantSelection), env.Data.Step)
	assert.Len(t, env.Data.Options, 2)
}
