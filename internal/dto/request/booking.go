package request

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

type PreferencesRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}
