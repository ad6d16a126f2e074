// Package dto provides data transfer objects for recurring planning models.
package dto

import (
	"fmt"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
)

// BreakDTO is a break as exchanged with clients. ID is generated when empty.
type BreakDTO struct {
	ID          string `json:"id,omitempty"`
	StartTime   string `json:"start_time" validate:"required,timeofday"`
	EndTime     string `json:"end_time" validate:"required,timeofday"`
	BreakType   string `json:"break_type" validate:"required,max=50"`
	Description string `json:"description,omitempty" validate:"max=255"`
}

// CreateRpmRequest represents the request to create a recurring planning model.
type CreateRpmRequest struct {
	Name             string     `json:"name" validate:"required,max=150"`
	Description      string     `json:"description" validate:"max=500"`
	ReferenceDate    string     `json:"reference_date" validate:"required,date"`
	GlobalStartTime  string     `json:"global_start_time" validate:"required,timeofday"`
	GlobalEndTime    string     `json:"global_end_time" validate:"required,timeofday"`
	RecurrenceRule   string     `json:"recurrence_rule" validate:"required,max=500,rrule"`
	DefaultBlockType string     `json:"default_block_type" validate:"max=50"`
	Breaks           []BreakDTO `json:"breaks" validate:"omitempty,max=50,dive"`
}

// UpdateRpmRequest represents a partial update. Nil fields are left unchanged;
// a non-nil Breaks replaces the whole list.
type UpdateRpmRequest struct {
	Name             *string     `json:"name" validate:"omitempty,max=150"`
	Description      *string     `json:"description" validate:"omitempty,max=500"`
	ReferenceDate    *string     `json:"reference_date" validate:"omitempty,date"`
	GlobalStartTime  *string     `json:"global_start_time" validate:"omitempty,timeofday"`
	GlobalEndTime    *string     `json:"global_end_time" validate:"omitempty,timeofday"`
	RecurrenceRule   *string     `json:"recurrence_rule" validate:"omitempty,max=500,rrule"`
	DefaultBlockType *string     `json:"default_block_type" validate:"omitempty,max=50"`
	Breaks           *[]BreakDTO `json:"breaks"`
}

// ChangesShape reports whether the envelope or the breaks are touched.
func (r UpdateRpmRequest) ChangesShape() bool {
	return r.GlobalStartTime != nil || r.GlobalEndTime != nil || r.Breaks != nil
}

// ChangesRecurrence reports whether the rule or its anchor date are touched.
func (r UpdateRpmRequest) ChangesRecurrence() bool {
	return r.RecurrenceRule != nil || r.ReferenceDate != nil
}

// ListRpmRequest represents the filter of a plan listing.
type ListRpmRequest struct {
	Name     string `json:"name"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// CacheVariant identifies one page of one listing inside the establishment's list cache.
func (r ListRpmRequest) CacheVariant() string {
	return fmt.Sprintf("page:%d:size:%d:name:%s", r.Page, r.PageSize, r.Name)
}

// RpmResponse represents a recurring planning model in API responses.
type RpmResponse struct {
	ID               uint       `json:"id"`
	EstablishmentID  uint       `json:"establishment_id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	ReferenceDate    string     `json:"reference_date"`
	GlobalStartTime  string     `json:"global_start_time"`
	GlobalEndTime    string     `json:"global_end_time"`
	RecurrenceRule   string     `json:"recurrence_rule"`
	DefaultBlockType string     `json:"default_block_type"`
	Breaks           []BreakDTO `json:"breaks"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ListRpmResponse represents one page of plans.
type ListRpmResponse struct {
	Items    []*RpmResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ToRpmResponse converts a domain plan to its response shape.
func ToRpmResponse(rpm *planning.RecurringPlanningModel) *RpmResponse {
	if rpm == nil {
		return nil
	}
	return &RpmResponse{
		ID:               rpm.ID(),
		EstablishmentID:  rpm.EstablishmentID(),
		Name:             rpm.Name(),
		Description:      rpm.Description(),
		ReferenceDate:    biztime.FormatDate(rpm.ReferenceDate()),
		GlobalStartTime:  rpm.GlobalStartTime().String(),
		GlobalEndTime:    rpm.GlobalEndTime().String(),
		RecurrenceRule:   rpm.RecurrenceRule(),
		DefaultBlockType: rpm.DefaultBlockType(),
		Breaks:           mapper.Map(rpm.Breaks(), toBreakDTO),
		CreatedAt:        rpm.CreatedAt(),
		UpdatedAt:        rpm.UpdatedAt(),
	}
}

// ToRpmResponses converts a slice of domain plans.
func ToRpmResponses(rpms []*planning.RecurringPlanningModel) []*RpmResponse {
	return mapper.Map(rpms, ToRpmResponse)
}

// ToBreaks parses client breaks into domain breaks.
func ToBreaks(breaks []BreakDTO) ([]planning.Break, error) {
	return mapper.TryMap(breaks, func(b BreakDTO) (planning.Break, error) {
		start, err := schedule.ParseTimeOfDay(b.StartTime)
		if err != nil {
			return planning.Break{}, errors.NewValidationError("invalid break start time", err.Error())
		}
		end, err := schedule.ParseTimeOfDay(b.EndTime)
		if err != nil {
			return planning.Break{}, errors.NewValidationError("invalid break end time", err.Error())
		}
		return planning.Break{
			ID:          b.ID,
			StartTime:   start,
			EndTime:     end,
			BreakType:   b.BreakType,
			Description: b.Description,
		}, nil
	})
}

func toBreakDTO(b planning.Break) BreakDTO {
	return BreakDTO{
		ID:          b.ID,
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		BreakType:   b.BreakType,
		Description: b.Description,
	}
}
