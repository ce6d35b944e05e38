package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

var testNow = time.Date(2030, time.March, 14, 18, 5, 0, 0, time.UTC)

var testToday = entity.Date{Year: 2030, Month: time.March, Day: 14}

// fakeBookingRepo allocates numbers from an atomic counter, like a sequence.
type fakeBookingRepo struct {
	mu        sync.Mutex
	next      atomic.Int64
	bookings  map[int64]*entity.Booking
	insertErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*entity.Booking)}
}

func (r *fakeBookingRepo) Insert(_ context.Context, booking *entity.Booking) (int64, error) {
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	number := r.next.Add(1)
	stored := *booking
	stored.BookingNumber = number

	r.mu.Lock()
	r.bookings[number] = &stored
	r.mu.Unlock()
	return number, nil
}

func (r *fakeBookingRepo) FindByNumber(_ context.Context, number int64) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[number]
	if !ok {
		return nil, nil
	}
	out := *b
	return &out, nil
}

func (r *fakeBookingRepo) AppendPreferences(_ context.Context, number int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[number]
	if !ok {
		return entity.ErrBookingNotFound
	}
	if b.Preferences == "" {
		b.Preferences = text
	} else {
		b.Preferences += "\n" + text
	}
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, number int64, status entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[number]
	if !ok {
		return entity.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeRestaurantRepo struct {
	mu       sync.Mutex
	contacts map[string]string
	err      error
}

func newFakeRestaurantRepo(contacts map[string]string) *fakeRestaurantRepo {
	if contacts == nil {
		contacts = make(map[string]string)
	}
	return &fakeRestaurantRepo{contacts: contacts}
}

func (r *fakeRestaurantRepo) GetContact(_ context.Context, name string) (string, bool, error) {
	if r.err != nil {
		return "", false, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[name]
	return c, ok && c != "", nil
}

func (r *fakeRestaurantRepo) UpsertContact(_ context.Context, contact *entity.RestaurantContact) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts[contact.RestaurantName] = contact.Contact
	contact.UpdatedAt = testNow
	return nil
}

type sentMessage struct {
	ChatID int64
	Text   string
}

type fakeTransport struct {
	mu         sync.Mutex
	handles    map[string]int64
	resolveErr error
	sendErr    error
	block      bool
	resolved   []string
	sent       []sentMessage
}

func (t *fakeTransport) ResolveHandle(ctx context.Context, name string) (int64, error) {
	t.mu.Lock()
	t.resolved = append(t.resolved, name)
	t.mu.Unlock()

	if t.resolveErr != nil {
		return 0, t.resolveErr
	}
	id, ok := t.handles[name]
	if !ok {
		return 0, errors.New("chat not found")
	}
	return id, nil
}

func (t *fakeTransport) Send(ctx context.Context, chatID int64, text string) error {
	if t.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if t.sendErr != nil {
		return t.sendErr
	}
	t.mu.Lock()
	t.sent = append(t.sent, sentMessage{ChatID: chatID, Text: text})
	t.mu.Unlock()
	return nil
}

func (t *fakeTransport) sentCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sent)
}

type testEnv struct {
	repo        *repository.Repository
	bookings    *fakeBookingRepo
	restaurants *fakeRestaurantRepo
	parser      *fakeParser
	operator    *fakeTransport
	direct      *fakeTransport
	collector   Collector
	finalizer   Finalizer
	dispatcher  Dispatcher
	service     ConversationService
}

func newTestEnv() *testEnv {
	log := zap.NewNop()
	env := &testEnv{
		bookings:    newFakeBookingRepo(),
		restaurants: newFakeRestaurantRepo(map[string]string{"Luna": "@luna", "Sol": "123456"}),
		parser:      &fakeParser{replies: map[string]string{}},
		operator:    &fakeTransport{handles: map[string]int64{"luna": 111}},
		direct:      &fakeTransport{handles: map[string]int64{"luna": 222}},
	}
	env.repo = &repository.Repository{
		Booking:    env.bookings,
		Restaurant: env.restaurants,
		Session:    repository.NewMemorySessionStore(),
	}

	clock := utils.NewFixedClock(testNow)
	templates := DefaultTemplates()
	env.collector = NewCollector(env.repo.Session, NewNormalizer(env.parser, time.Second, log), templates, clock, log)
	env.finalizer = NewFinalizer(env.repo, "telegram", time.Second, log)
	env.dispatcher = NewDispatcher([]Channel{
		{Name: entity.ChannelOperator, Transport: env.operator},
		{Name: entity.ChannelDirect, Transport: env.direct, AcceptsUnknown: true},
	}, templates, 100*time.Millisecond, log)
	env.service = NewConversationService(env.collector, env.finalizer, env.dispatcher,
		NewBookingService(env.bookings, log), templates, clock, log)
	return env
}

func (e *testEnv) session(userID string) *entity.Session {
	s, err := e.repo.Session.Get(context.Background(), userID)
	if err != nil {
		panic(err)
	}
	return s
}

func restaurants(names ...string) []entity.Restaurant {
	out := make([]entity.Restaurant, len(names))
	for i, n := range names {
		out[i] = entity.Restaurant{Name: n}
	}
	return out
}
