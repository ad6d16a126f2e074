package planning

import (
	"fmt"
	"sort"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// Break is a pause carved out of a plan's daily envelope.
type Break struct {
	ID          string
	StartTime   schedule.TimeOfDay
	EndTime     schedule.TimeOfDay
	BreakType   string
	Description string
}

// IsValid reports whether the break has a positive length.
func (b Break) IsValid() bool {
	return b.StartTime.Before(b.EndTime)
}

// ValidateBreaks checks every break lies inside [start, end] and that no two
// breaks overlap. Adjacent breaks are allowed.
func ValidateBreaks(breaks []Break, start, end schedule.TimeOfDay) error {
	for i, b := range breaks {
		if b.BreakType == "" {
			return errors.NewValidationError("break type is required", fmt.Sprintf("breaks[%d]", i))
		}
		if !b.IsValid() {
			return errors.NewValidationError("break start time must be before its end time",
				fmt.Sprintf("breaks[%d]: %s-%s", i, b.StartTime, b.EndTime))
		}
		if b.StartTime.Before(start) || b.EndTime.After(end) {
			return errors.NewValidationError("break must lie within the planning envelope",
				fmt.Sprintf("breaks[%d]: %s-%s outside %s-%s", i, b.StartTime, b.EndTime, start, end))
		}
	}

	sorted := make([]Break, len(breaks))
	copy(sorted, breaks)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].StartTime < sorted[b].StartTime })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartTime.Before(sorted[i-1].EndTime) {
			return errors.NewValidationError("breaks must not overlap",
				fmt.Sprintf("%s-%s overlaps %s-%s", sorted[i-1].StartTime, sorted[i-1].EndTime, sorted[i].StartTime, sorted[i].EndTime))
		}
	}
	return nil
}
