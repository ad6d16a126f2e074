// Package biztime provides calendar-day and establishment-timezone helpers.
//
// Design principles:
//   - Instants are stored and compared in UTC.
//   - A calendar day is a time.Time at 00:00:00 UTC; it carries no zone meaning.
//   - Local wall-clock times are only produced by combining a calendar day with a
//     time of day inside an explicit *time.Location. Implicit Local is prohibited.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DateLayout is the wire and storage format of calendar days.
const DateLayout = "2006-01-02"

var locationCache sync.Map // map[string]*time.Location

// LoadLocation resolves an IANA zone name, memoising successful lookups.
func LoadLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, fmt.Errorf("timezone is empty")
	}
	if loc, ok := locationCache.Load(tz); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	locationCache.Store(tz, loc)
	return loc, nil
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD into a calendar day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// MustParseDate is ParseDate that panics; meant for tests and constants.
func MustParseDate(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// Date normalises t to the calendar day it falls on in its own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LocalDayBounds returns [start, end) of day in loc, converted to UTC.
// The span is 23 or 25 hours on DST transition days.
func LocalDayBounds(day time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC()
}

// AtLocalTime places secondsOfDay on day's wall clock in loc and returns the UTC instant.
// 86400 seconds maps to the next local midnight.
func AtLocalTime(day time.Time, secondsOfDay int, loc *time.Location) time.Time {
	y, m, d := day.Date()
	h := secondsOfDay / 3600
	mi := (secondsOfDay % 3600) / 60
	s := secondsOfDay % 60
	return time.Date(y, m, d, h, mi, s, 0, loc).UTC()
}

// SameDate reports whether a and b are the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
