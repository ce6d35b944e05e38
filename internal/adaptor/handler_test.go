package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/dto/request"
	"restaurant-booking/internal/dto/response"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConversation struct {
	got   *request.InboundEventRequest
	reply *response.ReplyResponse
	err   error
}

func (f *fakeConversation) Handle(_ context.Context, req *request.InboundEventRequest) (*response.ReplyResponse, error) {
	f.got = req
	return f.reply, f.err
}

type fakeBookingService struct {
	booking *response.BookingResponse
	err     error
	appends []string
}

func (f *fakeBookingService) GetBooking(_ context.Context, number int64) (*response.BookingResponse, error) {
	return f.booking, f.err
}

func (f *fakeBookingService) UpdateStatus(_ context.Context, number int64, req *request.StatusUpdateRequest) (*response.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	b := *f.booking
	b.Status = entity.BookingStatus(req.Status)
	return &b, nil
}

func (f *fakeBookingService) AppendPreferences(_ context.Context, number int64, clientCode, text string) error {
	if f.err != nil {
		return f.err
	}
	f.appends = append(f.appends, clientCode+"|"+text)
	return nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestWebhookHandler(t *testing.T) {
	conv := &fakeConversation{reply: &response.ReplyResponse{Step: "time_selection", Text: "What time?"}}
	h := http.HandlerFunc(NewWebhookHandler(conv, zap.NewNop()).HandleEvent)

	t.Run("malformed body", func(t *testing.T) {
		rec, _ := do(t, h, http.MethodPost, "/api/webhook/events", "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/api/webhook/events", `{"type":"button"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, string(env.Errors), "UserID")
		assert.Contains(t, string(env.Errors), "Data")
	})

	t.Run("blank restaurant name", func(t *testing.T) {
		conv.got = nil
		rec, env := do(t, h, http.MethodPost, "/api/webhook/events",
			`{"user_id":"u1","type":"start","restaurants":["Luna","   "]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, string(env.Errors), "Restaurants")
		assert.Nil(t, conv.got)
	})

	t.Run("unknown type", func(t *testing.T) {
		rec, _ := do(t, h, http.MethodPost, "/api/webhook/events", `{"user_id":"u1","type":"wave"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		rec, env := do(t, h, http.MethodPost, "/api/webhook/events",
			`{"user_id":"u1","type":"start","restaurants":["Luna"],"profile":{"first_name":"Ana"}}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Status)
		assert.Contains(t, string(env.Data), `"step":"time_selection"`)
		assert.Equal(t, "Ana", conv.got.Profile.FirstName)
		assert.Equal(t, []string{"Luna"}, conv.got.Restaurants)
	})

	t.Run("domain error", func(t *testing.T) {
		conv.err = entity.ErrNoRestaurants
		defer func() { conv.err = nil }()
		rec, _ := do(t, h, http.MethodPost, "/api/webhook/events", `{"user_id":"u1","type":"start","restaurants":[]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func newBookingRouter(svc *fakeBookingService) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/admin/bookings/{number}", h.GetBooking)
	r.Put("/api/admin/bookings/{number}/status", h.UpdateStatus)
	r.Post("/api/admin/bookings/{number}/preferences", h.AppendPreferences)
	return r
}

func TestBookingHandler(t *testing.T) {
	svc := &fakeBookingService{booking: &response.BookingResponse{BookingNumber: 3, Status: entity.BookingStatusPending}}
	router := newBookingRouter(svc)

	rec, _ := do(t, router, http.MethodGet, "/api/admin/bookings/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := do(t, router, http.MethodGet, "/api/admin/bookings/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"booking_number":3`)

	rec, _ = do(t, router, http.MethodPut, "/api/admin/bookings/3/status", `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, router, http.MethodPut, "/api/admin/bookings/3/status", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"status":"confirmed"`)

	rec, _ = do(t, router, http.MethodPost, "/api/admin/bookings/3/preferences", `{"text":"window"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"|window"}, svc.appends)
}

func TestBookingHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", entity.ErrBookingNotFound, http.StatusNotFound},
		{"invalid status", entity.ErrInvalidStatus, http.StatusConflict},
		{"not owner", entity.ErrNotBookingOwner, http.StatusForbidden},
		{"store down", &entity.PersistenceError{Op: "find", Err: errors.New("down")}, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newBookingRouter(&fakeBookingService{err: tt.err})
			rec, env := do(t, router, http.MethodPut, "/api/admin/bookings/3/status", `{"status":"cancelled"}`)
			assert.Equal(t, tt.want, rec.Code)
			assert.False(t, env.Status)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("refused") }

	h := http.HandlerFunc(NewHealthHandler(map[string]HealthCheck{"postgres": up}, zap.NewNop()).Health)
	rec, env := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"postgres":"up"}`, string(env.Data))

	h = http.HandlerFunc(NewHealthHandler(map[string]HealthCheck{"postgres": up, "redis": down}, zap.NewNop()).Health)
	rec, env = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"postgres":"up","redis":"down"}`, string(env.Data))
}
