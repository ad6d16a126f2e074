// Package recurrence expands RFC 5545 recurrence rules with rrule-go.
package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
)

// maxOccurrencesPerWindow bounds a single expansion.
const maxOccurrencesPerWindow = 1000

// RRuleExpander implements planning.RecurrenceExpander.
type RRuleExpander struct{}

var _ planning.RecurrenceExpander = (*RRuleExpander)(nil)

// NewRRuleExpander creates a new expander.
func NewRRuleExpander() *RRuleExpander {
	return &RRuleExpander{}
}

// Validate parses rule without expanding it.
func (e *RRuleExpander) Validate(rule string) error {
	_, err := parse(rule)
	return err
}

// Expand returns occurrences of rule anchored at dtstart within
// [windowStart, windowEnd], both inclusive. Occurrences are computed on
// dtstart's wall clock so DST shifts keep the local start time.
func (e *RRuleExpander) Expand(rule string, dtstart, windowStart, windowEnd time.Time) ([]time.Time, error) {
	opt, err := parse(rule)
	if err != nil {
		return nil, err
	}
	if windowEnd.Before(windowStart) {
		return nil, nil
	}

	opt.Dtstart = dtstart
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, planning.NewInvalidRecurrenceError(err.Error())
	}

	occurrences := r.Between(windowStart, windowEnd, true)
	if len(occurrences) > maxOccurrencesPerWindow {
		occurrences = occurrences[:maxOccurrencesPerWindow]
	}
	return occurrences, nil
}

// parse accepts a bare rule or one prefixed with "RRULE:". Any DTSTART in the
// rule text is ignored; the anchor always comes from the plan.
func parse(rule string) (*rrule.ROption, error) {
	if err := planning.ValidateRecurrenceRule(rule); err != nil {
		return nil, err
	}

	var body string
	for _, line := range strings.Split(strings.TrimSpace(rule), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToUpper(line), "DTSTART") {
			continue
		}
		body = line
	}

	opt, err := rrule.StrToROption(body)
	if err != nil {
		return nil, planning.NewInvalidRecurrenceError(fmt.Sprintf("%s: %v", body, err))
	}
	return opt, nil
}
