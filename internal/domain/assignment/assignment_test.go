package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	apperrors "github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

func date(s string) time.Time { return biztime.MustParseDate(s) }

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func existing(t *testing.T, id uint, start string, end *time.Time) *Assignment {
	t.Helper()
	a, err := ReconstructAssignment(id, 7, 1, date(start), end, time.Now(), time.Now())
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	a, err := NewAssignment(7, 1, date("2024-01-01"), nil)
	require.NoError(t, err)
	assert.Nil(t, a.EndDate())
	assert.Equal(t, OpenEnd, a.EffectiveEnd())

	_, err = NewAssignment(7, 1, date("2024-02-01"), datePtr("2024-01-31"))
	assert.True(t, apperrors.IsValidationError(err))

	_, err = NewAssignment(0, 1, date("2024-01-01"), nil)
	assert.True(t, apperrors.IsValidationError(err))

	single, err := NewAssignment(7, 1, date("2024-01-01"), datePtr("2024-01-01"))
	require.NoError(t, err)
	assert.True(t, single.ActiveOn(date("2024-01-01")))
}

func TestAssignment_Overlaps(t *testing.T) {
	closed := existing(t, 1, "2024-01-01", datePtr("2024-01-31"))
	open := existing(t, 2, "2024-03-01", nil)

	tests := []struct {
		name     string
		target   *Assignment
		start    string
		end      *time.Time
		overlaps bool
	}{
		{name: "inside", target: closed, start: "2024-01-10", end: datePtr("2024-01-12"), overlaps: true},
		{name: "swallows", target: closed, start: "2023-12-01", end: datePtr("2024-02-28"), overlaps: true},
		{name: "shares last day", target: closed, start: "2024-01-31", end: datePtr("2024-02-10"), overlaps: true},
		{name: "starts the day after", target: closed, start: "2024-02-01", end: nil, overlaps: false},
		{name: "ends the day before", target: closed, start: "2023-12-01", end: datePtr("2023-12-31"), overlaps: false},
		{name: "open new range before open existing", target: open, start: "2024-02-01", end: nil, overlaps: true},
		{name: "far future against open existing", target: open, start: "2030-01-01", end: datePtr("2030-01-02"), overlaps: true},
		{name: "closed range before open existing", target: open, start: "2024-02-01", end: datePtr("2024-02-29"), overlaps: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.target.Overlaps(date(tt.start), tt.end))
		})
	}
}

func TestFindOverlap_ExcludesSelf(t *testing.T) {
	list := []*Assignment{
		existing(t, 1, "2024-01-01", datePtr("2024-01-31")),
		existing(t, 2, "2024-02-01", nil),
	}

	hit := FindOverlap(list, date("2024-01-15"), datePtr("2024-02-15"), 0)
	require.NotNil(t, hit)
	assert.Equal(t, uint(1), hit.ID())

	hit = FindOverlap(list, date("2024-02-10"), nil, 2)
	assert.Nil(t, hit)

	assert.Nil(t, FindOverlap(nil, date("2024-01-01"), nil, 0))
}

func TestAssignment_ActiveOn(t *testing.T) {
	a := existing(t, 1, "2024-01-01", datePtr("2024-01-31"))
	assert.False(t, a.ActiveOn(date("2023-12-31")))
	assert.True(t, a.ActiveOn(date("2024-01-01")))
	assert.True(t, a.ActiveOn(date("2024-01-31")))
	assert.False(t, a.ActiveOn(date("2024-02-01")))
}

func TestAssignment_Reschedule(t *testing.T) {
	a := existing(t, 1, "2024-01-01", datePtr("2024-01-31"))

	err := a.Reschedule(date("2024-03-01"), datePtr("2024-02-01"))
	assert.True(t, apperrors.IsValidationError(err))
	assert.Equal(t, date("2024-01-01"), a.StartDate())

	require.NoError(t, a.Reschedule(date("2024-02-01"), nil))
	assert.Nil(t, a.EndDate())
}

func TestNewOverlapError_NamesExistingAssignment(t *testing.T) {
	err := NewOverlapError(existing(t, 42, "2024-01-01", nil))
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	assert.Contains(t, appErr.Details, "assignment_id=42")
	assert.Contains(t, appErr.Details, "2024-01-01..open")
}
