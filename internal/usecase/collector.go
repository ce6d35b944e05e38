package usecase

import (
	"context"
	"fmt"
	"strconv"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

// Button payloads understood by the collector.
const (
	dataRestaurant = "restaurant"
	dataTime       = "time"
	dataGuests     = "guests"
	dataDate       = "date"
	dataFinalize   = "finalize"

	argCustom   = "custom"
	argToday    = "today"
	argTomorrow = "tomorrow"
	argRetry    = "retry"
)

var quickPickGuests = []int{1, 2, 3, 4, 5, 6}

type Option struct {
	Label string
	Data  string
}

// Prompt is what the user should see next. Failure is set on re-prompts and
// holds a *entity.ParseError or *entity.ValidationError.
type Prompt struct {
	Step    entity.Step
	Text    string
	Options []Option
	Failure error
}

// Collector owns the booking session state machine. It never persists
// bookings; a Prompt with StepCompleted means the session is ready to finalize.
type Collector interface {
	StartFromSelection(ctx context.Context, userID string, profile entity.ClientProfile, restaurants []entity.Restaurant) (*Prompt, error)
	StartFromFreeText(ctx context.Context, userID string, profile entity.ClientProfile, text string, restaurants []entity.Restaurant) (*Prompt, error)

	OnRestaurantChosen(ctx context.Context, userID string, index int) (*Prompt, error)

	OnTimeChosen(ctx context.Context, userID string, t entity.TimeOfDay) (*Prompt, error)
	OnTimeCustomRequested(ctx context.Context, userID string) (*Prompt, error)
	OnTimeTextEntered(ctx context.Context, userID string, text string) (*Prompt, error)

	OnGuestsChosen(ctx context.Context, userID string, guests int) (*Prompt, error)
	OnGuestsCustomRequested(ctx context.Context, userID string) (*Prompt, error)
	OnGuestsTextEntered(ctx context.Context, userID string, text string) (*Prompt, error)

	OnDateChosen(ctx context.Context, userID string, date entity.Date) (*Prompt, error)
	OnDateCustomRequested(ctx context.Context, userID string) (*Prompt, error)
	OnDateTextEntered(ctx context.Context, userID string, text string) (*Prompt, error)

	// OnText routes free text to whichever Waiting* step is active.
	OnText(ctx context.Context, userID string, text string) (*Prompt, error)
	// Current rebuilds the prompt for the session's current step.
	Current(ctx context.Context, userID string) (*Prompt, error)
}

type collector struct {
	sessions   repository.SessionStore
	normalizer Normalizer
	templates  Templates
	clock      utils.Clock
	log        *zap.Logger
}

func NewCollector(sessions repository.SessionStore, normalizer Normalizer, templates Templates, clock utils.Clock, log *zap.Logger) Collector {
	return &collector{
		sessions:   sessions,
		normalizer: normalizer,
		templates:  templates,
		clock:      clock,
		log:        log.With(zap.String("service", "collector")),
	}
}

// StartFromSelection discards any previous session for userID, even when
// restaurants is empty.
func (c *collector) StartFromSelection(ctx context.Context, userID string, profile entity.ClientProfile, restaurants []entity.Restaurant) (*Prompt, error) {
	if len(restaurants) == 0 {
		return nil, c.discard(ctx, userID)
	}

	session := entity.NewSession(userID)
	session.Profile = profile

	if len(restaurants) == 1 {
		r := restaurants[0]
		session.Restaurant = &r
		session.Step = entity.StepTimeSelection
	} else {
		session.Candidates = append([]entity.Restaurant(nil), restaurants...)
		session.Step = entity.StepRestaurantSelection
	}

	if err := c.save(ctx, session); err != nil {
		return nil, err
	}
	c.log.Info("Booking started",
		zap.String("user_id", userID),
		zap.Int("candidates", len(restaurants)),
		zap.String("step", string(session.Step)),
	)
	return c.promptFor(session), nil
}

func (c *collector) StartFromFreeText(ctx context.Context, userID string, profile entity.ClientProfile, text string, restaurants []entity.Restaurant) (*Prompt, error) {
	if len(restaurants) == 0 {
		return nil, c.discard(ctx, userID)
	}

	if r, ok := c.normalizer.Restaurant(ctx, text, restaurants); ok {
		return c.StartFromSelection(ctx, userID, profile, []entity.Restaurant{r})
	}
	c.log.Debug("Restaurant not recognised in text, offering the list", zap.String("user_id", userID))
	return c.StartFromSelection(ctx, userID, profile, restaurants)
}

// discard clears the session of a start event that carried no restaurants.
func (c *collector) discard(ctx context.Context, userID string) error {
	if err := c.sessions.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	c.log.Info("Booking start without restaurants, previous session discarded", zap.String("user_id", userID))
	return entity.ErrNoRestaurants
}

func (c *collector) OnRestaurantChosen(ctx context.Context, userID string, index int) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepRestaurantSelection)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(session.Candidates) {
		return nil, fmt.Errorf("%w: restaurant %d of %d", entity.ErrInvalidChoice, index, len(session.Candidates))
	}

	r := session.Candidates[index]
	session.Restaurant = &r
	session.Candidates = nil
	return c.advance(ctx, session, entity.StepTimeSelection)
}

func (c *collector) OnTimeChosen(ctx context.Context, userID string, t entity.TimeOfDay) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepTimeSelection, entity.StepWaitingCustomTime)
	if err != nil {
		return nil, err
	}
	session.Time = &t
	return c.advance(ctx, session, entity.StepGuestSelection)
}

func (c *collector) OnTimeCustomRequested(ctx context.Context, userID string) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepTimeSelection, entity.StepWaitingCustomTime)
	if err != nil {
		return nil, err
	}
	return c.advance(ctx, session, entity.StepWaitingCustomTime)
}

func (c *collector) OnTimeTextEntered(ctx context.Context, userID string, text string) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepWaitingCustomTime)
	if err != nil {
		return nil, err
	}

	t, ok := c.normalizer.Time(ctx, text)
	if !ok {
		return c.reprompt(session, c.templates.TimeNotUnderstood, &entity.ParseError{Slot: "time"}), nil
	}
	session.Time = &t
	return c.advance(ctx, session, entity.StepGuestSelection)
}

func (c *collector) OnGuestsChosen(ctx context.Context, userID string, guests int) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepGuestSelection, entity.StepWaitingCustomGuests)
	if err != nil {
		return nil, err
	}
	return c.setGuests(ctx, session, guests)
}

func (c *collector) OnGuestsCustomRequested(ctx context.Context, userID string) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepGuestSelection, entity.StepWaitingCustomGuests)
	if err != nil {
		return nil, err
	}
	return c.advance(ctx, session, entity.StepWaitingCustomGuests)
}

func (c *collector) OnGuestsTextEntered(ctx context.Context, userID string, text string) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepWaitingCustomGuests)
	if err != nil {
		return nil, err
	}

	guests, ok := c.normalizer.Guests(ctx, text)
	if !ok {
		return c.reprompt(session, c.templates.GuestsNotUnderstood, &entity.ParseError{Slot: "guests"}), nil
	}
	return c.setGuests(ctx, session, guests)
}

func (c *collector) setGuests(ctx context.Context, session *entity.Session, guests int) (*Prompt, error) {
	if !entity.GuestsInRange(guests) {
		text := render(c.templates.GuestsOutOfRange,
			"min", strconv.Itoa(entity.MinGuests),
			"max", strconv.Itoa(entity.MaxGuests),
		)
		reason := fmt.Sprintf("%d is not between %d and %d", guests, entity.MinGuests, entity.MaxGuests)
		return c.reprompt(session, text, &entity.ValidationError{Slot: "guests", Reason: reason}), nil
	}

	session.Guests = &guests
	return c.advance(ctx, session, entity.StepDateSelection)
}

func (c *collector) OnDateChosen(ctx context.Context, userID string, date entity.Date) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepDateSelection, entity.StepWaitingCustomDate)
	if err != nil {
		return nil, err
	}
	return c.setDate(ctx, session, date)
}

func (c *collector) OnDateCustomRequested(ctx context.Context, userID string) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepDateSelection, entity.StepWaitingCustomDate)
	if err != nil {
		return nil, err
	}
	return c.advance(ctx, session, entity.StepWaitingCustomDate)
}

func (c *collector) OnDateTextEntered(ctx context.Context, userID string, text string) (*Prompt, error) {
	session, err := c.load(ctx, userID, entity.StepWaitingCustomDate)
	if err != nil {
		return nil, err
	}

	date, ok := c.normalizer.Date(ctx, text, c.today())
	if !ok {
		return c.reprompt(session, c.templates.DateNotUnderstood, &entity.ParseError{Slot: "date"}), nil
	}
	return c.setDate(ctx, session, date)
}

func (c *collector) setDate(ctx context.Context, session *entity.Session, date entity.Date) (*Prompt, error) {
	today := c.today()
	if date.Before(today) {
		reason := fmt.Sprintf("%s is before %s", date, today)
		return c.reprompt(session, c.templates.DateInPast, &entity.ValidationError{Slot: "date", Reason: reason}), nil
	}

	session.Date = &date
	return c.advance(ctx, session, entity.StepCompleted)
}

func (c *collector) OnText(ctx context.Context, userID string, text string) (*Prompt, error) {
	session, err := c.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case entity.StepWaitingCustomTime:
		return c.OnTimeTextEntered(ctx, userID, text)
	case entity.StepWaitingCustomGuests:
		return c.OnGuestsTextEntered(ctx, userID, text)
	case entity.StepWaitingCustomDate:
		return c.OnDateTextEntered(ctx, userID, text)
	case entity.StepIdle:
		return nil, entity.ErrNoSession
	default:
		return nil, fmt.Errorf("%w: text at step %s", entity.ErrUnexpectedEvent, session.Step)
	}
}

func (c *collector) Current(ctx context.Context, userID string) (*Prompt, error) {
	session, err := c.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step == entity.StepIdle {
		return nil, entity.ErrNoSession
	}
	return c.promptFor(session), nil
}

func (c *collector) load(ctx context.Context, userID string, allowed ...entity.Step) (*entity.Session, error) {
	session, err := c.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step == entity.StepIdle {
		return nil, entity.ErrNoSession
	}
	for _, step := range allowed {
		if session.Step == step {
			return session, nil
		}
	}
	return nil, fmt.Errorf("%w: at step %s", entity.ErrUnexpectedEvent, session.Step)
}

func (c *collector) advance(ctx context.Context, session *entity.Session, next entity.Step) (*Prompt, error) {
	prev := session.Step
	session.Step = next
	if err := c.save(ctx, session); err != nil {
		return nil, err
	}
	c.log.Debug("Session advanced",
		zap.String("user_id", session.UserID),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)
	return c.promptFor(session), nil
}

// reprompt leaves the stored session untouched.
func (c *collector) reprompt(session *entity.Session, text string, failure error) *Prompt {
	c.log.Info("Re-prompting",
		zap.String("user_id", session.UserID),
		zap.String("step", string(session.Step)),
		zap.String("reason", failure.Error()),
	)
	p := c.promptFor(session)
	p.Text = text
	p.Failure = failure
	return p
}

func (c *collector) save(ctx context.Context, session *entity.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("refusing to store session %s: %w", session.UserID, err)
	}
	return c.sessions.Set(ctx, session)
}

func (c *collector) today() entity.Date {
	return entity.DateOf(c.clock.Now())
}

func (c *collector) promptFor(session *entity.Session) *Prompt {
	p := &Prompt{Step: session.Step}
	tpl := c.templates

	switch session.Step {
	case entity.StepRestaurantSelection:
		p.Text = tpl.ChooseRestaurant
		for i, r := range session.Candidates {
			p.Options = append(p.Options, Option{
				Label: fmt.Sprintf("%d. %s", i+1, r.Name),
				Data:  fmt.Sprintf("%s:%d", dataRestaurant, i),
			})
		}
	case entity.StepTimeSelection:
		p.Text = render(tpl.ChooseTime, "restaurant", session.Restaurant.Name)
		for _, t := range SuggestTimes(c.clock.Now()) {
			p.Options = append(p.Options, Option{Label: t.String(), Data: dataTime + ":" + t.String()})
		}
		p.Options = append(p.Options, Option{Label: tpl.CustomLabel, Data: dataTime + ":" + argCustom})
	case entity.StepWaitingCustomTime:
		p.Text = tpl.AskCustomTime
	case entity.StepGuestSelection:
		p.Text = tpl.ChooseGuests
		for _, g := range quickPickGuests {
			n := strconv.Itoa(g)
			p.Options = append(p.Options, Option{Label: n, Data: dataGuests + ":" + n})
		}
		p.Options = append(p.Options, Option{Label: tpl.CustomLabel, Data: dataGuests + ":" + argCustom})
	case entity.StepWaitingCustomGuests:
		p.Text = tpl.AskCustomGuests
	case entity.StepDateSelection:
		today := c.today()
		p.Text = tpl.ChooseDate
		p.Options = []Option{
			{Label: tpl.TodayLabel, Data: dataDate + ":" + argToday},
			{Label: tpl.TomorrowLabel, Data: dataDate + ":" + argTomorrow},
		}
		after := today.AddDays(2)
		p.Options = append(p.Options,
			Option{Label: after.In(c.clock.Now().Location()).Format(tpl.DateLabelLayout), Data: dataDate + ":" + after.String()},
			Option{Label: tpl.CustomLabel, Data: dataDate + ":" + argCustom},
		)
	case entity.StepWaitingCustomDate:
		p.Text = render(tpl.AskCustomDate, "example", c.today().AddDays(1).String())
	case entity.StepCompleted:
		// the finalizer produces the confirmation text
	}
	return p
}
