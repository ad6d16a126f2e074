// Package adjustment provides the Daily Adjustment Slot aggregate: a manual,
// date-specific override that wins over a member's recurring plan.
package adjustment

import (
	"fmt"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// Slot represents one adjustment of a member's day.
type Slot struct {
	id               uint
	establishmentID  uint
	membershipID     uint
	slotDate         time.Time
	startTime        schedule.TimeOfDay
	endTime          schedule.TimeOfDay
	slotType         string
	description      string
	tasks            []Task
	sourceRpmID      *uint
	isManualOverride bool
	createdAt        time.Time
	updatedAt        time.Time
}

// SlotParams groups the mutable attributes of a slot.
type SlotParams struct {
	SlotDate         time.Time
	StartTime        schedule.TimeOfDay
	EndTime          schedule.TimeOfDay
	SlotType         string
	Description      string
	Tasks            []Task
	SourceRpmID      *uint
	IsManualOverride bool
}

// NewSlot creates a validated slot.
func NewSlot(establishmentID, membershipID uint, p SlotParams) (*Slot, error) {
	if establishmentID == 0 {
		return nil, errors.NewValidationError("establishment ID is required")
	}
	if membershipID == 0 {
		return nil, errors.NewValidationError("membership ID is required")
	}
	if p.SlotType == "" {
		return nil, errors.NewValidationError("slot type is required")
	}
	if p.SlotDate.IsZero() {
		return nil, errors.NewValidationError("slot date is required")
	}
	if err := validatePeriod(p.StartTime, p.EndTime); err != nil {
		return nil, err
	}
	if err := ValidateTasks(p.Tasks, p.StartTime, p.EndTime); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Slot{
		establishmentID:  establishmentID,
		membershipID:     membershipID,
		slotDate:         biztime.Date(p.SlotDate),
		startTime:        p.StartTime,
		endTime:          p.EndTime,
		slotType:         p.SlotType,
		description:      p.Description,
		tasks:            cloneTasks(p.Tasks),
		sourceRpmID:      copyID(p.SourceRpmID),
		isManualOverride: p.IsManualOverride,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructSlot rebuilds a slot from persistence without validation.
func ReconstructSlot(id, establishmentID, membershipID uint, p SlotParams, createdAt, updatedAt time.Time) (*Slot, error) {
	if id == 0 {
		return nil, fmt.Errorf("daily adjustment slot ID cannot be zero")
	}
	return &Slot{
		id:               id,
		establishmentID:  establishmentID,
		membershipID:     membershipID,
		slotDate:         p.SlotDate,
		startTime:        p.StartTime,
		endTime:          p.EndTime,
		slotType:         p.SlotType,
		description:      p.Description,
		tasks:            cloneTasks(p.Tasks),
		sourceRpmID:      copyID(p.SourceRpmID),
		isManualOverride: p.IsManualOverride,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (s *Slot) ID() uint                      { return s.id }
func (s *Slot) EstablishmentID() uint         { return s.establishmentID }
func (s *Slot) MembershipID() uint            { return s.membershipID }
func (s *Slot) SlotDate() time.Time           { return s.slotDate }
func (s *Slot) StartTime() schedule.TimeOfDay { return s.startTime }
func (s *Slot) EndTime() schedule.TimeOfDay   { return s.endTime }
func (s *Slot) SlotType() string              { return s.slotType }
func (s *Slot) Description() string           { return s.description }
func (s *Slot) Tasks() []Task                 { return cloneTasks(s.tasks) }
func (s *Slot) SourceRpmID() *uint            { return copyID(s.sourceRpmID) }
func (s *Slot) IsManualOverride() bool        { return s.isManualOverride }
func (s *Slot) CreatedAt() time.Time          { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time          { return s.updatedAt }

// SetID sets the slot ID (only for persistence layer use)
func (s *Slot) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("daily adjustment slot ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("daily adjustment slot ID cannot be zero")
	}
	s.id = id
	return nil
}

// Apply replaces the slot attributes. When p.Tasks is nil the current tasks
// are kept and must still fit the new bounds; they are never trimmed.
func (s *Slot) Apply(p SlotParams) error {
	if p.SlotType == "" {
		return errors.NewValidationError("slot type is required")
	}
	if p.SlotDate.IsZero() {
		return errors.NewValidationError("slot date is required")
	}
	if err := validatePeriod(p.StartTime, p.EndTime); err != nil {
		return err
	}
	tasks := p.Tasks
	if tasks == nil {
		tasks = s.tasks
	}
	if err := ValidateTasks(tasks, p.StartTime, p.EndTime); err != nil {
		return err
	}

	s.slotDate = biztime.Date(p.SlotDate)
	s.startTime = p.StartTime
	s.endTime = p.EndTime
	s.slotType = p.SlotType
	s.description = p.Description
	s.tasks = cloneTasks(tasks)
	s.sourceRpmID = copyID(p.SourceRpmID)
	s.isManualOverride = p.IsManualOverride
	s.updatedAt = biztime.NowUTC()
	return nil
}

// Params returns the current attributes, suitable as a base for Apply.
func (s *Slot) Params() SlotParams {
	return SlotParams{
		SlotDate:         s.slotDate,
		StartTime:        s.startTime,
		EndTime:          s.endTime,
		SlotType:         s.slotType,
		Description:      s.description,
		SourceRpmID:      copyID(s.sourceRpmID),
		IsManualOverride: s.isManualOverride,
	}
}

// EnsureTaskIDs assigns an identifier to every task missing one.
func (s *Slot) EnsureTaskIDs(newID func() (string, error)) error {
	for i := range s.tasks {
		if s.tasks[i].ID != "" {
			continue
		}
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate task ID: %w", err)
		}
		s.tasks[i].ID = id
	}
	return nil
}

// IsValid reports whether startTime < endTime.
func (s *Slot) IsValid() bool {
	return s.startTime.Before(s.endTime)
}

// Intersects reports whether the slot shares time with [start, end).
// Touching boundaries do not intersect.
func (s *Slot) Intersects(start, end schedule.TimeOfDay) bool {
	return s.startTime.Before(end) && s.endTime.After(start)
}

// FindOverlap returns the first slot other than excludeID intersecting
// [start, end), or nil. Callers pass slots of a single member and date.
func FindOverlap(existing []*Slot, start, end schedule.TimeOfDay, excludeID uint) *Slot {
	for _, e := range existing {
		if excludeID != 0 && e.id == excludeID {
			continue
		}
		if e.Intersects(start, end) {
			return e
		}
	}
	return nil
}

func validatePeriod(start, end schedule.TimeOfDay) error {
	if !start.IsValid() || !end.IsValid() {
		return errors.NewValidationError("slot times must lie within 00:00:00 and 24:00:00")
	}
	if !start.Before(end) {
		return errors.NewValidationError("slot start time must be before its end time",
			fmt.Sprintf("%s-%s", start, end))
	}
	return nil
}

func cloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return []Task{}
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
