package adjustment

import (
	"fmt"
	"sort"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// Task is a named sub-period of a slot.
type Task struct {
	ID        string
	Name      string
	StartTime schedule.TimeOfDay
	EndTime   schedule.TimeOfDay
}

// ValidateTasks checks every task lies inside [start, end] and that tasks do not
// overlap each other.
func ValidateTasks(tasks []Task, start, end schedule.TimeOfDay) error {
	for i, t := range tasks {
		if t.Name == "" {
			return errors.NewValidationError("task name is required", fmt.Sprintf("tasks[%d]", i))
		}
		if !t.StartTime.Before(t.EndTime) {
			return errors.NewValidationError("task start time must be before its end time",
				fmt.Sprintf("tasks[%d]: %s-%s", i, t.StartTime, t.EndTime))
		}
		if t.StartTime.Before(start) || t.EndTime.After(end) {
			return errors.NewValidationError("task must lie within the slot",
				fmt.Sprintf("tasks[%d]: %s-%s outside %s-%s", i, t.StartTime, t.EndTime, start, end))
		}
	}

	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].StartTime < sorted[b].StartTime })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartTime.Before(sorted[i-1].EndTime) {
			return errors.NewValidationError("tasks must not overlap",
				fmt.Sprintf("%q overlaps %q", sorted[i-1].Name, sorted[i].Name))
		}
	}
	return nil
}
