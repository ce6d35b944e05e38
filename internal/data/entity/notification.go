package entity

type NotificationChannel string

const (
	ChannelOperator NotificationChannel = "operator"
	ChannelDirect   NotificationChannel = "direct"
)

type NotificationOutcome string

const (
	OutcomeDelivered NotificationOutcome = "delivered"
	OutcomeFailed    NotificationOutcome = "failed"
	OutcomeSkipped   NotificationOutcome = "skipped"
)

// NotificationAttempt records one channel's result for one booking. Not persisted.
type NotificationAttempt struct {
	BookingNumber int64
	Channel       NotificationChannel
	Outcome       NotificationOutcome
	Err           error
}
