package usecase

import (
	"time"

	"restaurant-booking/internal/data/entity"
)

const (
	suggestionLead     = 15 * time.Minute
	suggestionInterval = 30
	suggestionCount    = 4
)

// SuggestTimes returns the quick-pick times offered for a booking made at now.
// The first slot is the next :00 or :30 at least suggestionLead away; an exact
// :30 after adding the lead rolls over to the next hour.
func SuggestTimes(now time.Time) []entity.TimeOfDay {
	target := entity.TimeOfDayOf(now.Add(suggestionLead))

	var first entity.TimeOfDay
	if target.Minute < 30 {
		first = entity.TimeOfDay{Hour: target.Hour, Minute: 30}
	} else {
		first = entity.TimeOfDay{Hour: target.Hour}.AddMinutes(60)
	}

	times := make([]entity.TimeOfDay, suggestionCount)
	for i := range times {
		times[i] = first.AddMinutes(i * suggestionInterval)
	}
	return times
}
