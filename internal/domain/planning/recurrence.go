package planning

import (
	"strings"
	"time"
)

// RecurrenceExpander expands an RFC 5545 RRULE into concrete occurrences.
type RecurrenceExpander interface {
	// Expand returns the occurrences of rule anchored at dtstart that fall in
	// [windowStart, windowEnd]. dtstart carries the wall-clock location.
	Expand(rule string, dtstart, windowStart, windowEnd time.Time) ([]time.Time, error)
	// Validate parses rule without expanding it.
	Validate(rule string) error
}

// ValidateRecurrenceRule checks the rule declares a frequency component.
func ValidateRecurrenceRule(rule string) error {
	if strings.TrimSpace(rule) == "" {
		return NewInvalidRecurrenceError("recurrence rule is required")
	}
	if !strings.Contains(strings.ToUpper(rule), "FREQ=") {
		return NewInvalidRecurrenceError("recurrence rule must declare a FREQ component")
	}
	return nil
}
