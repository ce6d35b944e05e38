package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/dto/request"
	"restaurant-booking/internal/dto/response"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

// ConversationService processes inbound events. Events for the same user are
// handled one at a time; different users proceed in parallel.
type ConversationService interface {
	Handle(ctx context.Context, req *request.InboundEventRequest) (*response.ReplyResponse, error)
}

type conversationService struct {
	collector  Collector
	finalizer  Finalizer
	dispatcher Dispatcher
	bookings   BookingService
	templates  Templates
	clock      utils.Clock
	locks      *userLocks
	log        *zap.Logger
}

func NewConversationService(
	collector Collector,
	finalizer Finalizer,
	dispatcher Dispatcher,
	bookings BookingService,
	templates Templates,
	clock utils.Clock,
	log *zap.Logger,
) ConversationService {
	return &conversationService{
		collector:  collector,
		finalizer:  finalizer,
		dispatcher: dispatcher,
		bookings:   bookings,
		templates:  templates,
		clock:      clock,
		locks:      newUserLocks(),
		log:        log.With(zap.String("service", "conversation")),
	}
}

func (s *conversationService) Handle(ctx context.Context, req *request.InboundEventRequest) (*response.ReplyResponse, error) {
	unlock := s.locks.lock(req.UserID)
	defer unlock()

	switch req.Type {
	case request.EventStart:
		return s.start(ctx, req)
	case request.EventButton:
		return s.button(ctx, req.UserID, req.Data)
	case request.EventText:
		prompt, err := s.collector.OnText(ctx, req.UserID, req.Text)
		if err != nil {
			return s.recoverFrom(ctx, req.UserID, err)
		}
		return s.afterPrompt(ctx, req.UserID, prompt)
	case request.EventPreferences:
		return s.preferences(ctx, req)
	default:
		return nil, fmt.Errorf("%w: event type %q", entity.ErrUnexpectedEvent, req.Type)
	}
}

func (s *conversationService) start(ctx context.Context, req *request.InboundEventRequest) (*response.ReplyResponse, error) {
	restaurants := make([]entity.Restaurant, 0, len(req.Restaurants))
	for _, name := range req.Restaurants {
		if name = strings.TrimSpace(name); name != "" {
			restaurants = append(restaurants, entity.Restaurant{Name: name})
		}
	}
	profile := entity.ClientProfile{
		FirstName: req.Profile.FirstName,
		LastName:  req.Profile.LastName,
		Username:  req.Profile.Username,
		Phone:     req.Profile.Phone,
	}

	var (
		prompt *Prompt
		err    error
	)
	if strings.TrimSpace(req.Text) != "" {
		prompt, err = s.collector.StartFromFreeText(ctx, req.UserID, profile, req.Text, restaurants)
	} else {
		prompt, err = s.collector.StartFromSelection(ctx, req.UserID, profile, restaurants)
	}
	if err != nil {
		return nil, err
	}
	return s.afterPrompt(ctx, req.UserID, prompt)
}

func (s *conversationService) button(ctx context.Context, userID, data string) (*response.ReplyResponse, error) {
	action, arg, _ := strings.Cut(strings.TrimSpace(data), ":")
	invalid := fmt.Errorf("%w: button %q", entity.ErrInvalidChoice, data)

	var (
		prompt *Prompt
		err    error
	)
	switch action {
	case dataRestaurant:
		prompt, err = s.collector.OnRestaurantChosen(ctx, userID, utils.ParseInt(arg, -1))
	case dataTime:
		if arg == argCustom {
			prompt, err = s.collector.OnTimeCustomRequested(ctx, userID)
			break
		}
		t, perr := entity.ParseTimeOfDay(arg)
		if perr != nil {
			err = invalid
			break
		}
		prompt, err = s.collector.OnTimeChosen(ctx, userID, t)
	case dataGuests:
		if arg == argCustom {
			prompt, err = s.collector.OnGuestsCustomRequested(ctx, userID)
			break
		}
		guests, perr := strconv.Atoi(arg)
		if perr != nil {
			err = invalid
			break
		}
		prompt, err = s.collector.OnGuestsChosen(ctx, userID, guests)
	case dataDate:
		today := entity.DateOf(s.clock.Now())
		switch arg {
		case argCustom:
			prompt, err = s.collector.OnDateCustomRequested(ctx, userID)
		case argToday:
			prompt, err = s.collector.OnDateChosen(ctx, userID, today)
		case argTomorrow:
			prompt, err = s.collector.OnDateChosen(ctx, userID, today.AddDays(1))
		default:
			date, perr := entity.ParseDate(arg)
			if perr != nil {
				err = invalid
				break
			}
			prompt, err = s.collector.OnDateChosen(ctx, userID, date)
		}
	case dataFinalize:
		if arg != argRetry {
			err = invalid
			break
		}
		return s.finalize(ctx, userID)
	default:
		err = invalid
	}

	if err != nil {
		return s.recoverFrom(ctx, userID, err)
	}
	return s.afterPrompt(ctx, userID, prompt)
}

func (s *conversationService) afterPrompt(ctx context.Context, userID string, prompt *Prompt) (*response.ReplyResponse, error) {
	if prompt.Step == entity.StepCompleted {
		return s.finalize(ctx, userID)
	}
	return toReply(prompt), nil
}

func (s *conversationService) finalize(ctx context.Context, userID string) (*response.ReplyResponse, error) {
	booking, err := s.finalizer.Finalize(ctx, userID)
	var persistErr *entity.PersistenceError
	switch {
	case errors.As(err, &persistErr):
		reply := s.retryReply()
		reply.Failure = "persistence"
		return reply, nil
	case errors.Is(err, entity.ErrIncompleteSession):
		return s.recoverFrom(ctx, userID, err)
	case err != nil:
		return nil, err
	}

	// The user already has a booking number, so notification must not be
	// cut short if the inbound request goes away.
	if _, derr := s.dispatcher.Dispatch(context.WithoutCancel(ctx), booking); derr != nil {
		s.log.Warn("Booking confirmed without operator notification",
			zap.Int64("booking_number", booking.BookingNumber),
			zap.Error(derr),
		)
	}

	return &response.ReplyResponse{
		Step: string(entity.StepIdle),
		Text: render(s.templates.Confirmation,
			"number", strconv.FormatInt(booking.BookingNumber, 10),
			"restaurant", booking.RestaurantName,
			"date", booking.Date.String(),
			"time", booking.Time.String(),
			"guests", strconv.Itoa(booking.Guests),
		),
		Booking: response.NewBookingResponse(booking),
	}, nil
}

func (s *conversationService) preferences(ctx context.Context, req *request.InboundEventRequest) (*response.ReplyResponse, error) {
	if err := s.bookings.AppendPreferences(ctx, req.BookingNumber, req.UserID, req.Text); err != nil {
		return nil, err
	}

	step := entity.StepIdle
	if current, err := s.collector.Current(ctx, req.UserID); err == nil {
		step = current.Step
	}
	return &response.ReplyResponse{
		Step: string(step),
		Text: render(s.templates.PreferencesSaved, "number", strconv.FormatInt(req.BookingNumber, 10)),
	}, nil
}

// recoverFrom turns out-of-order or stale events into a reply that repeats
// the current question. Other errors are returned as is.
func (s *conversationService) recoverFrom(ctx context.Context, userID string, cause error) (*response.ReplyResponse, error) {
	switch {
	case errors.Is(cause, entity.ErrNoSession):
		return s.startFirstReply(), nil
	case errors.Is(cause, entity.ErrUnexpectedEvent),
		errors.Is(cause, entity.ErrInvalidChoice),
		errors.Is(cause, entity.ErrIncompleteSession):
	default:
		return nil, cause
	}

	s.log.Info("Ignoring event out of order", zap.String("user_id", userID), zap.Error(cause))

	current, err := s.collector.Current(ctx, userID)
	if errors.Is(err, entity.ErrNoSession) {
		return s.startFirstReply(), nil
	}
	if err != nil {
		return nil, err
	}
	if current.Step == entity.StepCompleted {
		return s.retryReply(), nil
	}

	reply := toReply(current)
	reply.Text = s.templates.UseButtons + "\n" + reply.Text
	return reply, nil
}

func (s *conversationService) startFirstReply() *response.ReplyResponse {
	return &response.ReplyResponse{Step: string(entity.StepIdle), Text: s.templates.StartFirst}
}

func (s *conversationService) retryReply() *response.ReplyResponse {
	return &response.ReplyResponse{
		Step:    string(entity.StepCompleted),
		Text:    s.templates.PersistenceFailed,
		Options: []response.OptionResponse{{Label: s.templates.RetryLabel, Data: dataFinalize + ":" + argRetry}},
	}
}

func toReply(p *Prompt) *response.ReplyResponse {
	reply := &response.ReplyResponse{Step: string(p.Step), Text: p.Text}
	for _, o := range p.Options {
		reply.Options = append(reply.Options, response.OptionResponse{Label: o.Label, Data: o.Data})
	}

	var parseErr *entity.ParseError
	var validationErr *entity.ValidationError
	switch {
	case errors.As(p.Failure, &parseErr):
		reply.Failure = "parse"
	case errors.As(p.Failure, &validationErr):
		reply.Failure = "validation"
	}
	return reply
}

// userLocks hands out one mutex per user id and drops it when unused.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*userLock)}
}

func (l *userLocks) lock(userID string) (unlock func()) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()

		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
