package planning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	apperrors "github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

func tod(s string) schedule.TimeOfDay { return schedule.MustParseTimeOfDay(s) }

func newPlan(t *testing.T, breaks ...Break) *RecurringPlanningModel {
	t.Helper()
	rpm, err := NewRecurringPlanningModel(1, "Office hours", "", biztime.MustParseDate("2024-01-01"),
		tod("09:00"), tod("17:00"), "FREQ=DAILY", "", breaks)
	require.NoError(t, err)
	return rpm
}

func TestNewRecurringPlanningModel(t *testing.T) {
	rpm := newPlan(t, Break{StartTime: tod("12:00"), EndTime: tod("13:00"), BreakType: "MEAL"})

	assert.Equal(t, "Office hours", rpm.Name())
	assert.Equal(t, DefaultBlockType, rpm.DefaultBlockType())
	assert.Len(t, rpm.Breaks(), 1)
	assert.True(t, rpm.HasValidEnvelope())
}

func TestNewRecurringPlanningModel_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		end    string
		rule   string
		breaks []Break
		want   string
	}{
		{name: "inverted envelope", start: "17:00", end: "09:00", rule: "FREQ=DAILY", want: "global start time must be before global end time"},
		{name: "missing frequency", start: "09:00", end: "17:00", rule: "INTERVAL=2", want: "invalid recurrence rule"},
		{name: "break outside envelope", start: "09:00", end: "17:00", rule: "FREQ=DAILY",
			breaks: []Break{{StartTime: tod("08:00"), EndTime: tod("09:30"), BreakType: "MEAL"}}, want: "break must lie within the planning envelope"},
		{name: "overlapping breaks", start: "09:00", end: "17:00", rule: "FREQ=DAILY",
			breaks: []Break{
				{StartTime: tod("12:00"), EndTime: tod("13:00"), BreakType: "MEAL"},
				{StartTime: tod("12:30"), EndTime: tod("12:45"), BreakType: "REST"},
			}, want: "breaks must not overlap"},
		{name: "inverted break", start: "09:00", end: "17:00", rule: "FREQ=DAILY",
			breaks: []Break{{StartTime: tod("13:00"), EndTime: tod("12:00"), BreakType: "MEAL"}}, want: "break start time must be before its end time"},
		{name: "missing break type", start: "09:00", end: "17:00", rule: "FREQ=DAILY",
			breaks: []Break{{StartTime: tod("12:00"), EndTime: tod("13:00")}}, want: "break type is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecurringPlanningModel(1, "Plan", "", biztime.MustParseDate("2024-01-01"),
				tod(tt.start), tod(tt.end), tt.rule, "WORK", tt.breaks)
			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.want, appErr.Message)
		})
	}
}

func TestValidateBreaks_AdjacentAllowed(t *testing.T) {
	err := ValidateBreaks([]Break{
		{StartTime: tod("10:00"), EndTime: tod("10:15"), BreakType: "REST"},
		{StartTime: tod("10:15"), EndTime: tod("10:30"), BreakType: "REST"},
	}, tod("09:00"), tod("17:00"))
	assert.NoError(t, err)
}

func TestReshape_RejectsBreaksOutsideShrunkEnvelope(t *testing.T) {
	rpm := newPlan(t, Break{StartTime: tod("16:00"), EndTime: tod("16:30"), BreakType: "REST"})

	err := rpm.Reshape(tod("09:00"), tod("15:00"), rpm.Breaks())
	assert.True(t, apperrors.IsValidationError(err))
	assert.Equal(t, tod("17:00"), rpm.GlobalEndTime())

	require.NoError(t, rpm.Reshape(tod("08:00"), tod("18:00"), rpm.Breaks()))
	assert.Equal(t, tod("18:00"), rpm.GlobalEndTime())
}

func TestEnsureBreakIDs(t *testing.T) {
	rpm := newPlan(t,
		Break{ID: "brk_keep", StartTime: tod("10:00"), EndTime: tod("10:15"), BreakType: "REST"},
		Break{StartTime: tod("12:00"), EndTime: tod("13:00"), BreakType: "MEAL"},
	)

	n := 0
	require.NoError(t, rpm.EnsureBreakIDs(func() (string, error) {
		n++
		return "brk_new", nil
	}))
	assert.Equal(t, 1, n)
	assert.Equal(t, "brk_keep", rpm.Breaks()[0].ID)
	assert.Equal(t, "brk_new", rpm.Breaks()[1].ID)

	rpm2 := newPlan(t, Break{StartTime: tod("12:00"), EndTime: tod("13:00"), BreakType: "MEAL"})
	assert.Error(t, rpm2.EnsureBreakIDs(func() (string, error) { return "", errors.New("entropy") }))
}

func TestValidBreaks_DropsCorruptEntries(t *testing.T) {
	rpm, err := ReconstructRecurringPlanningModel(3, 1, "Legacy", "", biztime.MustParseDate("2024-01-01"),
		tod("09:00"), tod("17:00"), "FREQ=DAILY", "WORK",
		[]Break{
			{ID: "a", StartTime: tod("12:00"), EndTime: tod("13:00"), BreakType: "MEAL"},
			{ID: "b", StartTime: tod("15:00"), EndTime: tod("14:00"), BreakType: "REST"},
		}, time.Now(), time.Now())
	require.NoError(t, err)

	valid := rpm.ValidBreaks()
	require.Len(t, valid, 1)
	assert.Equal(t, "a", valid[0].ID)
}

type stubExpander struct {
	gotStart, gotFrom, gotTo time.Time
	out                      []time.Time
	err                      error
}

func (s *stubExpander) Expand(rule string, dtstart, from, to time.Time) ([]time.Time, error) {
	s.gotStart, s.gotFrom, s.gotTo = dtstart, from, to
	return s.out, s.err
}

func (s *stubExpander) Validate(rule string) error { return s.err }

func TestOccursOn_AnchorsAtLocalStart(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	rpm := newPlan(t)

	exp := &stubExpander{out: []time.Time{time.Now()}}
	ok, err := rpm.OccursOn(exp, biztime.MustParseDate("2024-10-24"), paris)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, paris, exp.gotStart.Location())
	assert.Equal(t, 9, exp.gotStart.Hour())
	assert.True(t, exp.gotFrom.Equal(time.Date(2024, 10, 23, 22, 0, 0, 0, time.UTC)))
	assert.True(t, exp.gotTo.Before(time.Date(2024, 10, 24, 22, 0, 0, 0, time.UTC)))

	exp = &stubExpander{err: errors.New("bad rule")}
	_, err = rpm.OccursOn(exp, biztime.MustParseDate("2024-10-24"), paris)
	assert.Error(t, err)
}
