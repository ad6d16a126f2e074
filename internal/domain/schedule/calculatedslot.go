package schedule

import (
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
)

// SlotSource tells which persisted entity produced a calculated slot.
type SlotSource string

const (
	SourceRpmEnvelope SlotSource = "RPM_ENVELOPE"
	SourceRpmBreak    SlotSource = "RPM_BREAK"
	SourceDas         SlotSource = "DAS"
)

// SlotTask is a sub-task carried by an adjustment slot.
type SlotTask struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"task_name" yaml:"task_name"`
	StartTime TimeOfDay `json:"task_start_time" yaml:"task_start_time"`
	EndTime   TimeOfDay `json:"task_end_time" yaml:"task_end_time"`
}

// SlotInfo is the payload carried through the interval algebra.
type SlotInfo struct {
	Type        string     `json:"type" yaml:"type"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Source      SlotSource `json:"source" yaml:"source"`
	Tasks       []SlotTask `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	RpmID       *uint      `json:"rpm_id,omitempty" yaml:"rpm_id,omitempty"`
	BreakID     string     `json:"break_id,omitempty" yaml:"break_id,omitempty"`
	DasID       *uint      `json:"das_id,omitempty" yaml:"das_id,omitempty"`
}

// CalculatedSlot is one resolved segment of a member's day. It is never
// persisted and can always be rebuilt from plans, assignments and adjustments.
type CalculatedSlot struct {
	StartTime TimeOfDay `json:"start_time" yaml:"start_time"`
	EndTime   TimeOfDay `json:"end_time" yaml:"end_time"`
	SlotDate  string    `json:"slot_date" yaml:"slot_date"`
	SlotInfo  `yaml:",inline"`
}

// LocalInterval places [start, end) on day's wall clock in loc.
func LocalInterval[T any](day time.Time, start, end TimeOfDay, loc *time.Location, value T) Interval[T] {
	return Interval[T]{
		Start: biztime.AtLocalTime(day, start.Seconds(), loc),
		End:   biztime.AtLocalTime(day, end.Seconds(), loc),
		Value: value,
	}
}

// ToCalculatedSlots formats UTC intervals back to local times paired with day.
// Invalid intervals are dropped; the input order is kept.
func ToCalculatedSlots(intervals []Interval[SlotInfo], day time.Time, loc *time.Location) []CalculatedSlot {
	slots := make([]CalculatedSlot, 0, len(intervals))
	date := biztime.FormatDate(day)
	for _, i := range intervals {
		if !i.IsValid() {
			continue
		}
		slots = append(slots, CalculatedSlot{
			StartTime: localClock(i.Start, day, loc),
			EndTime:   localClock(i.End, day, loc),
			SlotDate:  date,
			SlotInfo:  i.Value,
		})
	}
	return slots
}

// localClock converts an instant to a time of day relative to day in loc.
// Instants on a later local date clamp to EndOfDay, earlier ones to Midnight.
func localClock(t time.Time, day time.Time, loc *time.Location) TimeOfDay {
	local := t.In(loc)
	localDate := biztime.Date(local)
	switch {
	case localDate.After(biztime.Date(day)):
		return EndOfDay
	case localDate.Before(biztime.Date(day)):
		return Midnight
	default:
		return ClockOf(local)
	}
}
