package entity

import (
	"strconv"
	"strings"
)

type ContactKind int

const (
	ContactNone ContactKind = iota
	ContactHandle
	ContactChannelID
	ContactUnknown
)

func (k ContactKind) String() string {
	switch k {
	case ContactHandle:
		return "handle"
	case ContactChannelID:
		return "channel_id"
	case ContactUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// ContactDescriptor is the parsed form of a restaurant's stored contact string.
// Exactly one of Handle, ChannelID or Raw is meaningful, selected by Kind.
type ContactDescriptor struct {
	Kind      ContactKind
	Handle    string
	ChannelID int64
	Raw       string
}

// ParseContact: "@name" and "=@name" are handles, all-digit strings are
// channel ids, empty input is no descriptor, anything else is Unknown.
func ParseContact(raw string) ContactDescriptor {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ContactDescriptor{Kind: ContactNone}
	}

	for _, prefix := range []string{"=@", "@"} {
		if name, ok := strings.CutPrefix(s, prefix); ok && name != "" {
			return ContactDescriptor{Kind: ContactHandle, Handle: name, Raw: s}
		}
	}

	if isDigits(s) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return ContactDescriptor{Kind: ContactChannelID, ChannelID: id, Raw: s}
		}
	}

	return ContactDescriptor{Kind: ContactUnknown, Raw: s}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
