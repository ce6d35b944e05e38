package usecase

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Templates holds every user-visible string. Placeholders are written as
// {name} and filled by render.
type Templates struct {
	ChooseRestaurant    string `mapstructure:"choose_restaurant"`
	ChooseTime          string `mapstructure:"choose_time"`
	AskCustomTime       string `mapstructure:"ask_custom_time"`
	TimeNotUnderstood   string `mapstructure:"time_not_understood"`
	ChooseGuests        string `mapstructure:"choose_guests"`
	AskCustomGuests     string `mapstructure:"ask_custom_guests"`
	GuestsNotUnderstood string `mapstructure:"guests_not_understood"`
	GuestsOutOfRange    string `mapstructure:"guests_out_of_range"`
	ChooseDate          string `mapstructure:"choose_date"`
	AskCustomDate       string `mapstructure:"ask_custom_date"`
	DateNotUnderstood   string `mapstructure:"date_not_understood"`
	DateInPast          string `mapstructure:"date_in_past"`
	Confirmation        string `mapstructure:"confirmation"`
	PersistenceFailed   string `mapstructure:"persistence_failed"`
	StartFirst          string `mapstructure:"start_first"`
	UseButtons          string `mapstructure:"use_buttons"`
	PreferencesSaved    string `mapstructure:"preferences_saved"`
	OperatorNotice      string `mapstructure:"operator_notice"`

	CustomLabel   string `mapstructure:"custom_label"`
	TodayLabel    string `mapstructure:"today_label"`
	TomorrowLabel string `mapstructure:"tomorrow_label"`
	RetryLabel    string `mapstructure:"retry_label"`
	// DateLabelLayout is a time.Format layout for dates past tomorrow.
	DateLabelLayout string `mapstructure:"date_label_layout"`
}

func DefaultTemplates() Templates {
	return Templates{
		ChooseRestaurant:    "Which restaurant would you like to book?",
		ChooseTime:          "What time would you like your table at {restaurant}?",
		AskCustomTime:       "Type the time you would like, for example 19:30.",
		TimeNotUnderstood:   "Sorry, I could not understand that time. Please try again, for example 19:30.",
		ChooseGuests:        "How many guests?",
		AskCustomGuests:     "Type the number of guests.",
		GuestsNotUnderstood: "Sorry, I could not understand the number of guests. Please type a number.",
		GuestsOutOfRange:    "The number of guests must be between {min} and {max}.",
		ChooseDate:          "Which day?",
		AskCustomDate:       "Type the date, for example {example} or \"next Friday\".",
		DateNotUnderstood:   "Sorry, I could not understand that date. Please try again.",
		DateInPast:          "That date has already passed. Please choose today or a later date.",
		Confirmation: "Your table is booked! Booking number: {number}\n" +
			"{restaurant}, {date} at {time}, guests: {guests}.",
		PersistenceFailed: "We could not save your booking right now. Your choices are kept, tap Retry to try again.",
		StartFirst:        "To book a table, pick a restaurant and start a new booking.",
		UseButtons:        "Please use the buttons to continue.",
		PreferencesSaved:  "Your wishes were added to booking #{number}.",
		OperatorNotice: "New booking #{number}\n" +
			"Restaurant: {restaurant}\n" +
			"Date: {date}\n" +
			"Time: {time}\n" +
			"Guests: {guests}\n" +
			"Client: {client}\n" +
			"Phone: {phone}\n" +
			"Contact method: {method}\n" +
			"Preferences: {preferences}",

		CustomLabel:   "Other",
		TodayLabel:    "Today",
		TomorrowLabel: "Tomorrow",
		RetryLabel:    "Retry",

		DateLabelLayout: "Mon 02 Jan",
	}
}

// LoadTemplates returns the defaults overridden by any keys present in the
// YAML file at path. An empty path means defaults only.
func LoadTemplates(path string) (Templates, error) {
	tpl := DefaultTemplates()
	if path == "" {
		return tpl, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Templates{}, fmt.Errorf("read templates %s: %w", path, err)
	}
	if err := v.Unmarshal(&tpl); err != nil {
		return Templates{}, fmt.Errorf("decode templates %s: %w", path, err)
	}
	return tpl, nil
}

func render(tpl string, pairs ...string) string {
	if len(pairs) == 0 {
		return tpl
	}
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(tpl)
}
