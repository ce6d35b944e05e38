package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/pkg/ai"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeParser answers from a text -> reply table.
type fakeParser struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
	delay   time.Duration
	calls   int
	hints   ai.Hints
}

func (f *fakeParser) Parse(ctx context.Context, kind ai.Kind, text string, hints ai.Hints) (string, error) {
	f.mu.Lock()
	f.calls++
	f.hints = hints
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	if reply, ok := f.replies[text]; ok {
		return reply, nil
	}
	if kind == ai.KindRestaurantName {
		return ai.SentinelUnknown, nil
	}
	return ai.SentinelInvalid, nil
}

func TestNormalizer_Time(t *testing.T) {
	parser := &fakeParser{replies: map[string]string{"half past seven in the evening": "19:30"}}
	n := NewNormalizer(parser, time.Second, zap.NewNop())
	ctx := context.Background()

	got, ok := n.Time(ctx, "half past seven in the evening")
	assert.True(t, ok)
	assert.Equal(t, "19:30", got.String())

	got, ok = n.Time(ctx, "7:05")
	assert.True(t, ok)
	assert.Equal(t, "07:05", got.String())

	_, ok = n.Time(ctx, "whenever")
	assert.False(t, ok)
}

func TestNormalizer_SentinelsNeverLeak(t *testing.T) {
	parser := &fakeParser{replies: map[string]string{
		"a": "INVALID",
		"b": "unknown",
	}}
	n := NewNormalizer(parser, time.Second, zap.NewNop())

	for _, text := range []string{"a", "b"} {
		_, ok := n.Guests(context.Background(), text)
		assert.False(t, ok, text)
	}
}

func TestNormalizer_ErrorsAndTimeoutsAreUnparseable(t *testing.T) {
	n := NewNormalizer(&fakeParser{err: errors.New("boom")}, time.Second, zap.NewNop())
	_, ok := n.Time(context.Background(), "tonight")
	assert.False(t, ok)

	slow := &fakeParser{replies: map[string]string{"tonight": "20:00"}, delay: time.Second}
	n = NewNormalizer(slow, 10*time.Millisecond, zap.NewNop())
	_, ok = n.Time(context.Background(), "tonight")
	assert.False(t, ok)
}

func TestNormalizer_Guests(t *testing.T) {
	parser := &fakeParser{replies: map[string]string{"a thousand of us": "1000", "four people": "4"}}
	n := NewNormalizer(parser, time.Second, zap.NewNop())

	got, ok := n.Guests(context.Background(), "four people")
	assert.True(t, ok)
	assert.Equal(t, 4, got)

	got, ok = n.Guests(context.Background(), "a thousand of us")
	assert.True(t, ok)
	assert.Equal(t, 1000, got)

	got, ok = n.Guests(context.Background(), " 0 ")
	assert.True(t, ok)
	assert.Equal(t, 0, got)
	assert.Equal(t, 2, parser.calls)

	got, ok = n.Guests(context.Background(), "99999999999999999999")
	assert.True(t, ok)
	assert.False(t, entity.GuestsInRange(got))
	assert.Equal(t, 2, parser.calls)
}

func TestNormalizer_Date(t *testing.T) {
	parser := &fakeParser{replies: map[string]string{"next friday": "2030-03-15"}}
	n := NewNormalizer(parser, time.Second, zap.NewNop())
	today := entity.Date{Year: 2030, Month: time.March, Day: 11}

	got, ok := n.Date(context.Background(), "next friday", today)
	assert.True(t, ok)
	assert.Equal(t, entity.Date{Year: 2030, Month: time.March, Day: 15}, got)
	assert.Equal(t, "2030-03-11", parser.hints.Today)
}

func TestNormalizer_Restaurant(t *testing.T) {
	candidates := []entity.Restaurant{{Name: "Luna"}, {Name: "Sol y Sombra"}}
	parser := &fakeParser{replies: map[string]string{
		"book me at sol please": "Sol y Sombra",
		"somewhere else":        "Elsewhere",
	}}
	n := NewNormalizer(parser, time.Second, zap.NewNop())
	ctx := context.Background()

	got, ok := n.Restaurant(ctx, "luna", candidates)
	assert.True(t, ok)
	assert.Equal(t, "Luna", got.Name)

	got, ok = n.Restaurant(ctx, "book me at sol please", candidates)
	assert.True(t, ok)
	assert.Equal(t, "Sol y Sombra", got.Name)
	assert.Equal(t, []string{"Luna", "Sol y Sombra"}, parser.hints.Restaurants)

	_, ok = n.Restaurant(ctx, "somewhere else", candidates)
	assert.False(t, ok)
}

func TestNormalizer_WithoutParser(t *testing.T) {
	n := NewNormalizer(nil, time.Second, zap.NewNop())

	got, ok := n.Time(context.Background(), "20:15")
	assert.True(t, ok)
	assert.Equal(t, "20:15", got.String())

	_, ok = n.Time(context.Background(), "quarter past eight")
	assert.False(t, ok)
}
