package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("canonical", func(t *testing.T) {
		got, err := ParseTimeOfDay("19:30")
		require.NoError(t, err)
		assert.Equal(t, "19:30", got.String())
	})

	t.Run("single digit hour", func(t *testing.T) {
		got, err := ParseTimeOfDay("7:05")
		require.NoError(t, err)
		assert.Equal(t, "07:05", got.String())
	})

	for _, bad := range []string{"", "24:00", "12:60", "1230", "12:5", "ab:cd", "123:00"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ParseTimeOfDay(bad)
			assert.Error(t, err)
		})
	}
}

func TestTimeOfDay_AddMinutes(t *testing.T) {
	assert.Equal(t, TimeOfDay{Hour: 19, Minute: 0}, TimeOfDay{Hour: 18, Minute: 30}.AddMinutes(30))
	assert.Equal(t, TimeOfDay{Hour: 0, Minute: 30}, TimeOfDay{Hour: 23, Minute: 30}.AddMinutes(60))
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 45}, TimeOfDay{Hour: 0, Minute: 15}.AddMinutes(-30))
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.October, Day: 19}, d)
	assert.Equal(t, "2026-10-19", d.String())
	assert.Equal(t, "2026-11-01", d.AddDays(13).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))

	_, err = ParseDate("19.10.2026")
	assert.Error(t, err)
}

func TestGuestsInRange(t *testing.T) {
	assert.False(t, GuestsInRange(0))
	assert.True(t, GuestsInRange(1))
	assert.True(t, GuestsInRange(999))
	assert.False(t, GuestsInRange(1000))
}
