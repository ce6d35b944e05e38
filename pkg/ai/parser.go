package ai

import (
	"context"
	"fmt"
	"strings"
)

type Kind string

const (
	KindTime           Kind = "time"
	KindDate           Kind = "date"
	KindGuestCount     Kind = "guest_count"
	KindRestaurantName Kind = "restaurant_name"
)

// Sentinel replies the model is instructed to use when it cannot answer.
const (
	SentinelInvalid = "INVALID"
	SentinelUnknown = "UNKNOWN"
)

// Hints is the kind-specific context sent along with the text.
type Hints struct {
	Today       string   // YYYY-MM-DD, used for date parsing
	Restaurants []string // candidate names, used for name extraction
}

// Generator is anything that turns a prompt into a text reply.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Parser is the AI parsing service: parse(kind, text, context) -> raw reply.
type Parser struct {
	gen Generator
}

func NewParser(gen Generator) *Parser {
	return &Parser{gen: gen}
}

// Parse returns the model's cleaned reply. Sentinels are passed through
// untouched; interpreting them is the caller's job.
func (p *Parser) Parse(ctx context.Context, kind Kind, text string, hints Hints) (string, error) {
	prompt, err := buildPrompt(kind, text, hints)
	if err != nil {
		return "", err
	}

	reply, err := p.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	return cleanReply(reply), nil
}

func buildPrompt(kind Kind, text string, hints Hints) (string, error) {
	switch kind {
	case KindTime:
		return fmt.Sprintf(
			"Convert the text below into a time of day in 24-hour HH:MM format. "+
				"Reply with the time only. If the text does not describe a time, reply %s.\n\nText: %s",
			SentinelInvalid, text), nil
	case KindDate:
		return fmt.Sprintf(
			"Today is %s. Convert the text below into a calendar date in YYYY-MM-DD format, "+
				"resolving relative words like \"tomorrow\" or weekday names against today. "+
				"Reply with the date only. If the text does not describe a date, reply %s.\n\nText: %s",
			hints.Today, SentinelInvalid, text), nil
	case KindGuestCount:
		return fmt.Sprintf(
			"Extract the number of people from the text below and reply with that integer only, "+
				"digits without words. If there is no number of people, reply %s.\n\nText: %s",
			SentinelInvalid, text), nil
	case KindRestaurantName:
		var list strings.Builder
		for i, name := range hints.Restaurants {
			fmt.Fprintf(&list, "%d. %s\n", i+1, name)
		}
		return fmt.Sprintf(
			"Restaurants:\n%s\nWhich restaurant from this list does the text below refer to? "+
				"Reply with the exact name as written in the list. If none matches, reply %s.\n\nText: %s",
			list.String(), SentinelUnknown, text), nil
	default:
		return "", fmt.Errorf("unsupported parse kind %q", kind)
	}
}

func cleanReply(reply string) string {
	s := reply
	for {
		trimmed := strings.Trim(s, "`\"'. \t\r\n")
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}
