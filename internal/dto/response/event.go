package response

type OptionResponse struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// ReplyResponse is what the transport should show the user next. Failure is
// "parse", "validation" or "persistence" when the reply is a re-prompt or an
// error notice.
type ReplyResponse struct {
	Step    string           `json:"step"`
	Text    string           `json:"text"`
	Options []OptionResponse `json:"options,omitempty"`
	Failure string           `json:"failure,omitempty"`
	Booking *BookingResponse `json:"booking,omitempty"`
}
