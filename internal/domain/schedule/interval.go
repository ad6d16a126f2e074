// Package schedule holds the pure building blocks of daily timetable
// resolution: the time-of-day value type, ordered intervals and the
// subtract/overlay algebra used to compose a member's day.
package schedule

import (
	"sort"
	"time"
)

// Interval is a half-open span [Start, End) carrying a payload.
type Interval[T any] struct {
	Start time.Time
	End   time.Time
	Value T
}

// NewInterval builds an interval.
func NewInterval[T any](start, end time.Time, value T) Interval[T] {
	return Interval[T]{Start: start, End: end, Value: value}
}

// IsValid reports whether the interval has a positive length.
func (i Interval[T]) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns End - Start.
func (i Interval[T]) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Intersects reports whether the half-open spans share at least one instant.
func (i Interval[T]) Intersects(start, end time.Time) bool {
	return i.Start.Before(end) && i.End.After(start)
}

// Subtract removes every cut from the base intervals. A base interval hit
// by a cut is replaced by its remaining parts before and after the cut.
// Invalid intervals on either side are ignored. The result is sorted by start.
func Subtract[T, C any](base []Interval[T], cuts []Interval[C]) []Interval[T] {
	result := validOnly(base)

	for _, cut := range cuts {
		if !cut.IsValid() {
			continue
		}
		next := make([]Interval[T], 0, len(result)+1)
		for _, b := range result {
			if !b.Intersects(cut.Start, cut.End) {
				next = append(next, b)
				continue
			}
			if b.Start.Before(cut.Start) {
				next = append(next, Interval[T]{Start: b.Start, End: cut.Start, Value: b.Value})
			}
			if b.End.After(cut.End) {
				next = append(next, Interval[T]{Start: cut.End, End: b.End, Value: b.Value})
			}
		}
		result = next
	}

	return SortByStart(validOnly(result))
}

// Overlay lets overrides win over base: any base interval they intersect is
// split or truncated at their boundaries, then the overrides are appended.
// Invalid intervals are ignored. The result is sorted by start.
func Overlay[T any](base, overrides []Interval[T]) []Interval[T] {
	result := Subtract(base, overrides)
	result = append(result, validOnly(overrides)...)
	return SortByStart(result)
}

// Clip restricts intervals to [start, end), dropping what falls outside.
func Clip[T any](intervals []Interval[T], start, end time.Time) []Interval[T] {
	result := make([]Interval[T], 0, len(intervals))
	for _, i := range intervals {
		if !i.IsValid() || !i.Intersects(start, end) {
			continue
		}
		if i.Start.Before(start) {
			i.Start = start
		}
		if i.End.After(end) {
			i.End = end
		}
		result = append(result, i)
	}
	return result
}

// SortByStart orders intervals ascending by start, then by end.
// The sort is stable so equal spans keep their input order.
func SortByStart[T any](intervals []Interval[T]) []Interval[T] {
	sort.SliceStable(intervals, func(a, b int) bool {
		if intervals[a].Start.Equal(intervals[b].Start) {
			return intervals[a].End.Before(intervals[b].End)
		}
		return intervals[a].Start.Before(intervals[b].Start)
	})
	return intervals
}

// HasOverlap reports whether any two valid intervals intersect.
func HasOverlap[T any](intervals []Interval[T]) bool {
	sorted := SortByStart(validOnly(intervals))
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start.Before(sorted[i-1].End) {
			return true
		}
	}
	return false
}

func validOnly[T any](intervals []Interval[T]) []Interval[T] {
	result := make([]Interval[T], 0, len(intervals))
	for _, i := range intervals {
		if i.IsValid() {
			result = append(result, i)
		}
	}
	return result
}
