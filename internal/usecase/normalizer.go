package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/pkg/ai"

	"go.uber.org/zap"
)

// TextParser is the AI parsing service.
type TextParser interface {
	Parse(ctx context.Context, kind ai.Kind, text string, hints ai.Hints) (string, error)
}

// Normalizer turns free text into canonical slot values. ok is false when the
// text could not be understood; service errors and timeouts count the same.
type Normalizer interface {
	Time(ctx context.Context, text string) (entity.TimeOfDay, bool)
	Date(ctx context.Context, text string, today entity.Date) (entity.Date, bool)
	Guests(ctx context.Context, text string) (int, bool)
	Restaurant(ctx context.Context, text string, candidates []entity.Restaurant) (entity.Restaurant, bool)
}

type normalizer struct {
	parser  TextParser
	timeout time.Duration
	log     *zap.Logger
}

// NewNormalizer builds a normalizer. parser may be nil, in which case only
// literal input (19:30, 2030-03-14, 4, an exact restaurant name) is accepted.
func NewNormalizer(parser TextParser, timeout time.Duration, log *zap.Logger) Normalizer {
	return &normalizer{
		parser:  parser,
		timeout: timeout,
		log:     log.With(zap.String("service", "normalizer")),
	}
}

func (n *normalizer) Time(ctx context.Context, text string) (entity.TimeOfDay, bool) {
	if t, err := entity.ParseTimeOfDay(text); err == nil {
		return t, true
	}

	reply, ok := n.ask(ctx, ai.KindTime, text, ai.Hints{})
	if !ok {
		return entity.TimeOfDay{}, false
	}
	t, err := entity.ParseTimeOfDay(reply)
	if err != nil {
		n.log.Warn("Parser returned malformed time", zap.String("reply", reply))
		return entity.TimeOfDay{}, false
	}
	return t, true
}

func (n *normalizer) Date(ctx context.Context, text string, today entity.Date) (entity.Date, bool) {
	if d, err := entity.ParseDate(text); err == nil {
		return d, true
	}

	reply, ok := n.ask(ctx, ai.KindDate, text, ai.Hints{Today: today.String()})
	if !ok {
		return entity.Date{}, false
	}
	d, err := entity.ParseDate(reply)
	if err != nil {
		n.log.Warn("Parser returned malformed date", zap.String("reply", reply))
		return entity.Date{}, false
	}
	return d, true
}

// Guests returns any integer the text resolves to. Bounds are checked by the
// caller so that out-of-range counts are reported differently from gibberish.
func (n *normalizer) Guests(ctx context.Context, text string) (int, bool) {
	if g, ok := guestCount(text); ok {
		return g, true
	}

	reply, ok := n.ask(ctx, ai.KindGuestCount, text, ai.Hints{})
	if !ok {
		return 0, false
	}
	g, ok := guestCount(reply)
	if !ok {
		n.log.Warn("Parser returned malformed guest count", zap.String("reply", reply))
		return 0, false
	}
	return g, true
}

// guestCount parses an integer. Integers too large for int are clamped just
// outside the guest bounds so they fail validation rather than parsing.
func guestCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	g, err := strconv.Atoi(s)
	if err == nil {
		return g, true
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		if strings.HasPrefix(s, "-") {
			return entity.MinGuests - 1, true
		}
		return entity.MaxGuests + 1, true
	}
	return 0, false
}

func (n *normalizer) Restaurant(ctx context.Context, text string, candidates []entity.Restaurant) (entity.Restaurant, bool) {
	if len(candidates) == 0 {
		return entity.Restaurant{}, false
	}
	if r, ok := matchRestaurant(text, candidates); ok {
		return r, true
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	reply, ok := n.ask(ctx, ai.KindRestaurantName, text, ai.Hints{Restaurants: names})
	if !ok {
		return entity.Restaurant{}, false
	}
	if r, ok := matchRestaurant(reply, candidates); ok {
		return r, true
	}
	n.log.Warn("Parser returned a name outside the candidate list", zap.String("reply", reply))
	return entity.Restaurant{}, false
}

func matchRestaurant(name string, candidates []entity.Restaurant) (entity.Restaurant, bool) {
	name = strings.TrimSpace(name)
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return entity.Restaurant{}, false
}

// ask calls the parser under the configured timeout. Sentinel replies and
// errors both come back as ok == false.
func (n *normalizer) ask(ctx context.Context, kind ai.Kind, text string, hints ai.Hints) (string, bool) {
	if n.parser == nil || strings.TrimSpace(text) == "" {
		return "", false
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	reply, err := n.parser.Parse(ctx, kind, text, hints)
	if err != nil {
		n.log.Warn("Text parsing failed",
			zap.Error(err),
			zap.String("kind", string(kind)),
		)
		return "", false
	}

	if reply == "" || strings.EqualFold(reply, ai.SentinelInvalid) || strings.EqualFold(reply, ai.SentinelUnknown) {
		n.log.Debug("Text not understood", zap.String("kind", string(kind)))
		return "", false
	}
	return reply, true
}
