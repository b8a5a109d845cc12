package machine

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestDistance = 2

// UnknownEventError is returned for an event name no rule mentions.
type UnknownEventError struct {
	Input      string
	Suggestion EventType
}

func (e *UnknownEventError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown event %q, did you mean %s?", e.Input, e.Suggestion)
	}
	return fmt.Sprintf("unknown event %q", e.Input)
}

// ParseEventType resolves a typed event name against the toggle table.
func ParseEventType(s string) (EventType, error) {
	return toggle.ParseEventType(s)
}

// ParseEventType matches s case-insensitively against the table's events.
func (d Definition) ParseEventType(s string) (EventType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	events := d.Events()
	for _, ev := range events {
		if string(ev) == name {
			return ev, nil
		}
	}

	uerr := &UnknownEventError{Input: strings.TrimSpace(s)}
	if name == "" {
		return "", uerr
	}
	best := maxSuggestDistance + 1
	for _, ev := range events {
		if dist := levenshtein.ComputeDistance(name, string(ev)); dist < best {
			best = dist
			uerr.Suggestion = ev
		}
	}
	return "", uerr
}
