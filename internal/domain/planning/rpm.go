// Package planning provides the Recurring Planning Model aggregate: a
// recurrence-driven daily work envelope with embedded breaks.
package planning

import (
	"fmt"
	"strings"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

const (
	// DefaultBlockType labels envelope segments when no type is given.
	DefaultBlockType = "WORK"

	maxNameLength = 150
)

// RecurringPlanningModel represents the plan aggregate root.
type RecurringPlanningModel struct {
	id               uint
	establishmentID  uint
	name             string
	description      string
	referenceDate    time.Time
	globalStartTime  schedule.TimeOfDay
	globalEndTime    schedule.TimeOfDay
	recurrenceRule   string
	defaultBlockType string
	breaks           []Break
	createdAt        time.Time
	updatedAt        time.Time
}

// NewRecurringPlanningModel creates a validated plan.
func NewRecurringPlanningModel(
	establishmentID uint,
	name string,
	description string,
	referenceDate time.Time,
	globalStartTime, globalEndTime schedule.TimeOfDay,
	recurrenceRule string,
	defaultBlockType string,
	breaks []Break,
) (*RecurringPlanningModel, error) {
	if establishmentID == 0 {
		return nil, errors.NewValidationError("establishment ID is required")
	}
	if defaultBlockType == "" {
		defaultBlockType = DefaultBlockType
	}

	now := biztime.NowUTC()
	rpm := &RecurringPlanningModel{
		establishmentID:  establishmentID,
		name:             strings.TrimSpace(name),
		description:      description,
		referenceDate:    biztime.Date(referenceDate),
		globalStartTime:  globalStartTime,
		globalEndTime:    globalEndTime,
		recurrenceRule:   strings.TrimSpace(recurrenceRule),
		defaultBlockType: defaultBlockType,
		breaks:           cloneBreaks(breaks),
		createdAt:        now,
		updatedAt:        now,
	}
	if err := validateName(rpm.name); err != nil {
		return nil, err
	}
	if err := ValidateRecurrenceRule(rpm.recurrenceRule); err != nil {
		return nil, err
	}
	if err := rpm.validateEnvelope(); err != nil {
		return nil, err
	}
	return rpm, nil
}

// ReconstructRecurringPlanningModel rebuilds a plan from persistence.
// Stored breaks and bounds are not re-validated.
func ReconstructRecurringPlanningModel(
	id uint,
	establishmentID uint,
	name string,
	description string,
	referenceDate time.Time,
	globalStartTime, globalEndTime schedule.TimeOfDay,
	recurrenceRule string,
	defaultBlockType string,
	breaks []Break,
	createdAt, updatedAt time.Time,
) (*RecurringPlanningModel, error) {
	if id == 0 {
		return nil, fmt.Errorf("recurring planning model ID cannot be zero")
	}
	if establishmentID == 0 {
		return nil, fmt.Errorf("establishment ID is required")
	}
	if defaultBlockType == "" {
		defaultBlockType = DefaultBlockType
	}
	return &RecurringPlanningModel{
		id:               id,
		establishmentID:  establishmentID,
		name:             name,
		description:      description,
		referenceDate:    referenceDate,
		globalStartTime:  globalStartTime,
		globalEndTime:    globalEndTime,
		recurrenceRule:   recurrenceRule,
		defaultBlockType: defaultBlockType,
		breaks:           cloneBreaks(breaks),
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (r *RecurringPlanningModel) ID() uint                            { return r.id }
func (r *RecurringPlanningModel) EstablishmentID() uint               { return r.establishmentID }
func (r *RecurringPlanningModel) Name() string                        { return r.name }
func (r *RecurringPlanningModel) Description() string                 { return r.description }
func (r *RecurringPlanningModel) ReferenceDate() time.Time            { return r.referenceDate }
func (r *RecurringPlanningModel) GlobalStartTime() schedule.TimeOfDay { return r.globalStartTime }
func (r *RecurringPlanningModel) GlobalEndTime() schedule.TimeOfDay   { return r.globalEndTime }
func (r *RecurringPlanningModel) RecurrenceRule() string              { return r.recurrenceRule }
func (r *RecurringPlanningModel) DefaultBlockType() string            { return r.defaultBlockType }
func (r *RecurringPlanningModel) CreatedAt() time.Time                { return r.createdAt }
func (r *RecurringPlanningModel) UpdatedAt() time.Time                { return r.updatedAt }

// Breaks returns a copy of the stored breaks.
func (r *RecurringPlanningModel) Breaks() []Break {
	return cloneBreaks(r.breaks)
}

// SetID sets the plan ID (only for persistence layer use)
func (r *RecurringPlanningModel) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("recurring planning model ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("recurring planning model ID cannot be zero")
	}
	r.id = id
	return nil
}

// Rename changes the plan name.
func (r *RecurringPlanningModel) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	r.name = name
	r.touch()
	return nil
}

// UpdateDescription replaces the free-text description.
func (r *RecurringPlanningModel) UpdateDescription(description string) {
	r.description = description
	r.touch()
}

// ChangeRecurrence replaces the rule and its anchor date.
func (r *RecurringPlanningModel) ChangeRecurrence(rule string, referenceDate time.Time) error {
	rule = strings.TrimSpace(rule)
	if err := ValidateRecurrenceRule(rule); err != nil {
		return err
	}
	r.recurrenceRule = rule
	r.referenceDate = biztime.Date(referenceDate)
	r.touch()
	return nil
}

// ChangeDefaultBlockType sets the type given to envelope segments.
func (r *RecurringPlanningModel) ChangeDefaultBlockType(blockType string) {
	if blockType == "" {
		blockType = DefaultBlockType
	}
	r.defaultBlockType = blockType
	r.touch()
}

// Reshape replaces the envelope and breaks together so they are validated
// against each other.
func (r *RecurringPlanningModel) Reshape(start, end schedule.TimeOfDay, breaks []Break) error {
	candidate := *r
	candidate.globalStartTime = start
	candidate.globalEndTime = end
	candidate.breaks = cloneBreaks(breaks)
	if err := candidate.validateEnvelope(); err != nil {
		return err
	}
	r.globalStartTime = start
	r.globalEndTime = end
	r.breaks = candidate.breaks
	r.touch()
	return nil
}

// EnsureBreakIDs assigns an identifier to every break missing one.
func (r *RecurringPlanningModel) EnsureBreakIDs(newID func() (string, error)) error {
	for i := range r.breaks {
		if r.breaks[i].ID != "" {
			continue
		}
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate break ID: %w", err)
		}
		r.breaks[i].ID = id
	}
	return nil
}

// HasValidEnvelope reports whether globalStartTime < globalEndTime.
func (r *RecurringPlanningModel) HasValidEnvelope() bool {
	return r.globalStartTime.Before(r.globalEndTime)
}

// ValidBreaks returns the stored breaks with a positive length, in stored order.
func (r *RecurringPlanningModel) ValidBreaks() []Break {
	valid := make([]Break, 0, len(r.breaks))
	for _, b := range r.breaks {
		if b.IsValid() {
			valid = append(valid, b)
		}
	}
	return valid
}

// OccursOn reports whether the recurrence produces an occurrence on day in loc.
// The recurrence is anchored at referenceDate + globalStartTime on loc's wall clock.
func (r *RecurringPlanningModel) OccursOn(expander RecurrenceExpander, day time.Time, loc *time.Location) (bool, error) {
	dtstart := biztime.AtLocalTime(r.referenceDate, r.globalStartTime.Seconds(), loc).In(loc)
	windowStart, windowEnd := biztime.LocalDayBounds(day, loc)

	occurrences, err := expander.Expand(r.recurrenceRule, dtstart, windowStart, windowEnd.Add(-time.Nanosecond))
	if err != nil {
		return false, err
	}
	return len(occurrences) > 0, nil
}

func (r *RecurringPlanningModel) validateEnvelope() error {
	if !r.globalStartTime.IsValid() || !r.globalEndTime.IsValid() {
		return errors.NewValidationError("global times must lie within 00:00:00 and 24:00:00")
	}
	if !r.HasValidEnvelope() {
		return errors.NewValidationError("global start time must be before global end time",
			fmt.Sprintf("%s-%s", r.globalStartTime, r.globalEndTime))
	}
	return ValidateBreaks(r.breaks, r.globalStartTime, r.globalEndTime)
}

func (r *RecurringPlanningModel) touch() {
	r.updatedAt = biztime.NowUTC()
}

func validateName(name string) error {
	if name == "" {
		return errors.NewValidationError("recurring planning model name is required")
	}
	if len(name) > maxNameLength {
		return errors.NewValidationError("recurring planning model name is too long",
			fmt.Sprintf("max %d characters", maxNameLength))
	}
	return nil
}

func cloneBreaks(breaks []Break) []Break {
	if breaks == nil {
		return []Break{}
	}
	out := make([]Break, len(breaks))
	copy(out, breaks)
	return out
}
