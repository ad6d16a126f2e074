package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a local wall-clock time expressed in seconds since midnight.
// The valid range is [0, EndOfDay]; EndOfDay ("24:00:00") closes a day.
type TimeOfDay int

const (
	// Midnight opens a day.
	Midnight TimeOfDay = 0
	// EndOfDay closes a day.
	EndOfDay TimeOfDay = 24 * 60 * 60
)

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM or HH:MM:SS", s)
	}

	fields := [3]int{}
	limits := [3]int{24, 59, 59}
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("invalid time of day %q: expected two digits per field", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		fields[i] = n
	}

	t := TimeOfDay(fields[0]*3600 + fields[1]*60 + fields[2])
	if t > EndOfDay {
		return 0, fmt.Errorf("invalid time of day %q: beyond 24:00:00", s)
	}
	return t, nil
}

// MustParseTimeOfDay is ParseTimeOfDay that panics on error.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ClockOf returns the wall-clock time of t in its own location.
func ClockOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(h*3600 + m*60 + s)
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return int(t)
}

// IsValid reports whether t lies within [00:00:00, 24:00:00].
func (t TimeOfDay) IsValid() bool {
	return t >= Midnight && t <= EndOfDay
}

func (t TimeOfDay) Before(o TimeOfDay) bool { return t < o }

func (t TimeOfDay) After(o TimeOfDay) bool { return t > o }

// String formats t as HH:MM:SS.
func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}
