// Package assignment binds members to recurring planning models over a
// date range and owns the per-member non-overlap rule.
package assignment

import (
	"fmt"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// OpenEnd stands in for a missing end date in comparisons.
var OpenEnd = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Assignment represents a member's binding to a plan for [startDate, endDate].
// A nil endDate means open-ended.
type Assignment struct {
	id           uint
	membershipID uint
	rpmID        uint
	startDate    time.Time
	endDate      *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewAssignment creates a validated assignment.
func NewAssignment(membershipID, rpmID uint, startDate time.Time, endDate *time.Time) (*Assignment, error) {
	if membershipID == 0 {
		return nil, errors.NewValidationError("membership ID is required")
	}
	if rpmID == 0 {
		return nil, errors.NewValidationError("recurring planning model ID is required")
	}

	now := biztime.NowUTC()
	a := &Assignment{
		membershipID: membershipID,
		rpmID:        rpmID,
		createdAt:    now,
		updatedAt:    now,
	}
	if err := a.setPeriod(startDate, endDate); err != nil {
		return nil, err
	}
	return a, nil
}

// ReconstructAssignment rebuilds an assignment from persistence.
func ReconstructAssignment(
	id, membershipID, rpmID uint,
	startDate time.Time,
	endDate *time.Time,
	createdAt, updatedAt time.Time,
) (*Assignment, error) {
	if id == 0 {
		return nil, fmt.Errorf("assignment ID cannot be zero")
	}
	return &Assignment{
		id:           id,
		membershipID: membershipID,
		rpmID:        rpmID,
		startDate:    startDate,
		endDate:      copyDate(endDate),
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (a *Assignment) ID() uint             { return a.id }
func (a *Assignment) MembershipID() uint   { return a.membershipID }
func (a *Assignment) RpmID() uint          { return a.rpmID }
func (a *Assignment) StartDate() time.Time { return a.startDate }
func (a *Assignment) EndDate() *time.Time  { return copyDate(a.endDate) }
func (a *Assignment) CreatedAt() time.Time { return a.createdAt }
func (a *Assignment) UpdatedAt() time.Time { return a.updatedAt }

// SetID sets the assignment ID (only for persistence layer use)
func (a *Assignment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("assignment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("assignment ID cannot be zero")
	}
	a.id = id
	return nil
}

// Reschedule moves the assignment to a new period.
func (a *Assignment) Reschedule(startDate time.Time, endDate *time.Time) error {
	if err := a.setPeriod(startDate, endDate); err != nil {
		return err
	}
	a.touch()
	return nil
}

// ChangeRpm points the assignment at another plan.
func (a *Assignment) ChangeRpm(rpmID uint) error {
	if rpmID == 0 {
		return errors.NewValidationError("recurring planning model ID is required")
	}
	a.rpmID = rpmID
	a.touch()
	return nil
}

// EffectiveEnd returns the end date, or OpenEnd when open-ended.
func (a *Assignment) EffectiveEnd() time.Time {
	if a.endDate == nil {
		return OpenEnd
	}
	return *a.endDate
}

// Overlaps reports whether the closed ranges [start, end] and the assignment's
// period share a day. A nil end is open-ended.
func (a *Assignment) Overlaps(start time.Time, end *time.Time) bool {
	newEnd := OpenEnd
	if end != nil {
		newEnd = biztime.Date(*end)
	}
	newStart := biztime.Date(start)
	return !newStart.After(a.EffectiveEnd()) && !a.startDate.After(newEnd)
}

// ActiveOn reports whether day falls within the assignment's period.
func (a *Assignment) ActiveOn(day time.Time) bool {
	d := biztime.Date(day)
	return !d.Before(a.startDate) && !d.After(a.EffectiveEnd())
}

// FindOverlap returns the first assignment other than excludeID whose period
// intersects [start, end], or nil.
func FindOverlap(existing []*Assignment, start time.Time, end *time.Time, excludeID uint) *Assignment {
	for _, e := range existing {
		if excludeID != 0 && e.id == excludeID {
			continue
		}
		if e.Overlaps(start, end) {
			return e
		}
	}
	return nil
}

func (a *Assignment) setPeriod(startDate time.Time, endDate *time.Time) error {
	if startDate.IsZero() {
		return errors.NewValidationError("start date is required")
	}
	start := biztime.Date(startDate)
	var end *time.Time
	if endDate != nil {
		e := biztime.Date(*endDate)
		if e.Before(start) {
			return errors.NewValidationError("end date must not be before start date",
				fmt.Sprintf("%s > %s", formatDate(start), formatDate(e)))
		}
		end = &e
	}
	a.startDate = start
	a.endDate = end
	return nil
}

func (a *Assignment) touch() {
	a.updatedAt = biztime.NowUTC()
}

func copyDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func formatDate(d time.Time) string {
	return biztime.FormatDate(d)
}
