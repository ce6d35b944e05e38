package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContact(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ContactDescriptor
	}{
		{name: "at handle", raw: "@resto", want: ContactDescriptor{Kind: ContactHandle, Handle: "resto", Raw: "@resto"}},
		{name: "equals at handle", raw: "=@resto", want: ContactDescriptor{Kind: ContactHandle, Handle: "resto", Raw: "=@resto"}},
		{name: "channel id", raw: "123456", want: ContactDescriptor{Kind: ContactChannelID, ChannelID: 123456, Raw: "123456"}},
		{name: "empty", raw: "", want: ContactDescriptor{Kind: ContactNone}},
		{name: "whitespace only", raw: "   ", want: ContactDescriptor{Kind: ContactNone}},
		{name: "unknown", raw: "not-a-handle", want: ContactDescriptor{Kind: ContactUnknown, Raw: "not-a-handle"}},
		{name: "bare at sign", raw: "@", want: ContactDescriptor{Kind: ContactUnknown, Raw: "@"}},
		{name: "negative number", raw: "-100123", want: ContactDescriptor{Kind: ContactUnknown, Raw: "-100123"}},
		{name: "overflowing digits", raw: "99999999999999999999", want: ContactDescriptor{Kind: ContactUnknown, Raw: "99999999999999999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseContact(tt.raw))
		})
	}
}
