// Package dto provides data transfer objects for daily adjustment slots.
package dto

import (
	"time"

	commondto "github.com/Kapooral/services-app-server-sub002/internal/application/common/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
)

// TaskDTO is a slot task as exchanged with clients. ID is generated when empty.
type TaskDTO struct {
	ID            string `json:"id,omitempty"`
	TaskName      string `json:"task_name" validate:"required,max=150"`
	TaskStartTime string `json:"task_start_time" validate:"required,timeofday"`
	TaskEndTime   string `json:"task_end_time" validate:"required,timeofday"`
}

// CreateDasRequest represents the request to create an adjustment slot.
type CreateDasRequest struct {
	MembershipID     uint      `json:"membership_id" validate:"required"`
	SlotDate         string    `json:"slot_date" validate:"required,date"`
	StartTime        string    `json:"start_time" validate:"required,timeofday"`
	EndTime          string    `json:"end_time" validate:"required,timeofday"`
	SlotType         string    `json:"slot_type" validate:"required,max=50"`
	Description      string    `json:"description" validate:"max=500"`
	Tasks            []TaskDTO `json:"tasks" validate:"omitempty,max=50,dive"`
	SourceRpmID      *uint     `json:"source_rpm_id" validate:"omitempty,gt=0"`
	IsManualOverride bool      `json:"is_manual_override"`
}

// UpdateDasRequest is a partial update. Nil fields are left unchanged; a
// non-nil Tasks replaces the whole list.
type UpdateDasRequest struct {
	SlotDate         *string    `json:"slot_date" validate:"omitempty,date"`
	StartTime        *string    `json:"start_time" validate:"omitempty,timeofday"`
	EndTime          *string    `json:"end_time" validate:"omitempty,timeofday"`
	SlotType         *string    `json:"slot_type" validate:"omitempty,max=50"`
	Description      *string    `json:"description" validate:"omitempty,max=500"`
	Tasks            *[]TaskDTO `json:"tasks"`
	SourceRpmID      *uint      `json:"source_rpm_id" validate:"omitempty,gt=0"`
	ClearSourceRpm   bool       `json:"clear_source_rpm"`
	IsManualOverride *bool      `json:"is_manual_override"`
}

// BulkUpdateDasItem patches one slot.
type BulkUpdateDasItem struct {
	ID    uint             `json:"id" validate:"required"`
	Patch UpdateDasRequest `json:"patch"`
}

// BulkUpdateDasRequest patches several slots independently.
type BulkUpdateDasRequest struct {
	Items []BulkUpdateDasItem `json:"items" validate:"required,min=1,max=500,dive"`
}

// BulkDeleteDasRequest removes several slots.
type BulkDeleteDasRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,max=500,dive,gt=0"`
}

// ListDasRequest filters an establishment's slots. Empty values are ignored.
type ListDasRequest struct {
	MembershipID uint   `json:"membership_id"`
	SlotDate     string `json:"slot_date" validate:"omitempty,date"`
	DateFrom     string `json:"date_from" validate:"omitempty,date"`
	DateTo       string `json:"date_to" validate:"omitempty,date"`
	Page         int    `json:"page"`
	PageSize     int    `json:"page_size"`
}

// DasResponse represents an adjustment slot in API responses.
type DasResponse struct {
	ID               uint      `json:"id"`
	EstablishmentID  uint      `json:"establishment_id"`
	MembershipID     uint      `json:"membership_id"`
	SlotDate         string    `json:"slot_date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	SlotType         string    `json:"slot_type"`
	Description      string    `json:"description"`
	Tasks            []TaskDTO `json:"tasks"`
	SourceRpmID      *uint     `json:"source_rpm_id"`
	IsManualOverride bool      `json:"is_manual_override"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ListDasResponse represents one page of slots.
type ListDasResponse struct {
	Items    []*DasResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// BulkUpdateDasResult is keyed by slot ID.
type BulkUpdateDasResult = commondto.BulkResult[*DasResponse]

// BulkDeleteDasResult lists the deleted slot IDs. IDs outside the
// establishment are skipped without an error entry.
type BulkDeleteDasResult = commondto.BulkResult[uint]

// ToDasResponse converts a domain slot to its response shape.
func ToDasResponse(s *adjustment.Slot) *DasResponse {
	if s == nil {
		return nil
	}
	return &DasResponse{
		ID:               s.ID(),
		EstablishmentID:  s.EstablishmentID(),
		MembershipID:     s.MembershipID(),
		SlotDate:         biztime.FormatDate(s.SlotDate()),
		StartTime:        s.StartTime().String(),
		EndTime:          s.EndTime().String(),
		SlotType:         s.SlotType(),
		Description:      s.Description(),
		Tasks:            mapper.Map(s.Tasks(), toTaskDTO),
		SourceRpmID:      s.SourceRpmID(),
		IsManualOverride: s.IsManualOverride(),
		CreatedAt:        s.CreatedAt(),
		UpdatedAt:        s.UpdatedAt(),
	}
}

// ToDasResponses converts a slice of domain slots.
func ToDasResponses(slots []*adjustment.Slot) []*DasResponse {
	return mapper.Map(slots, ToDasResponse)
}

// ToTasks parses client tasks into domain tasks.
func ToTasks(tasks []TaskDTO) ([]adjustment.Task, error) {
	return mapper.TryMap(tasks, func(t TaskDTO) (adjustment.Task, error) {
		start, err := schedule.ParseTimeOfDay(t.TaskStartTime)
		if err != nil {
			return adjustment.Task{}, errors.NewValidationError("invalid task start time", err.Error())
		}
		end, err := schedule.ParseTimeOfDay(t.TaskEndTime)
		if err != nil {
			return adjustment.Task{}, errors.NewValidationError("invalid task end time", err.Error())
		}
		return adjustment.Task{
			ID:        t.ID,
			Name:      t.TaskName,
			StartTime: start,
			EndTime:   end,
		}, nil
	})
}

// ToSlotParams parses a create request.
func ToSlotParams(req CreateDasRequest) (adjustment.SlotParams, error) {
	day, err := biztime.ParseDate(req.SlotDate)
	if err != nil {
		return adjustment.SlotParams{}, errors.NewValidationError("invalid slot date", err.Error())
	}
	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return adjustment.SlotParams{}, errors.NewValidationError("invalid start time", err.Error())
	}
	end, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return adjustment.SlotParams{}, errors.NewValidationError("invalid end time", err.Error())
	}
	tasks, err := ToTasks(req.Tasks)
	if err != nil {
		return adjustment.SlotParams{}, err
	}
	return adjustment.SlotParams{
		SlotDate:         day,
		StartTime:        start,
		EndTime:          end,
		SlotType:         req.SlotType,
		Description:      req.Description,
		Tasks:            tasks,
		SourceRpmID:      req.SourceRpmID,
		IsManualOverride: req.IsManualOverride,
	}, nil
}

// Merge applies the non-nil fields of the patch on top of base.
// base.Tasks stays nil unless the patch replaces them.
func (r UpdateDasRequest) Merge(base adjustment.SlotParams) (adjustment.SlotParams, error) {
	p := base
	if r.SlotDate != nil {
		d, err := biztime.ParseDate(*r.SlotDate)
		if err != nil {
			return p, errors.NewValidationError("invalid slot date", err.Error())
		}
		p.SlotDate = d
	}
	if r.StartTime != nil {
		t, err := schedule.ParseTimeOfDay(*r.StartTime)
		if err != nil {
			return p, errors.NewValidationError("invalid start time", err.Error())
		}
		p.StartTime = t
	}
	if r.EndTime != nil {
		t, err := schedule.ParseTimeOfDay(*r.EndTime)
		if err != nil {
			return p, errors.NewValidationError("invalid end time", err.Error())
		}
		p.EndTime = t
	}
	if r.SlotType != nil {
		p.SlotType = *r.SlotType
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Tasks != nil {
		tasks, err := ToTasks(*r.Tasks)
		if err != nil {
			return p, err
		}
		if tasks == nil {
			tasks = []adjustment.Task{}
		}
		p.Tasks = tasks
	}
	if r.SourceRpmID != nil {
		p.SourceRpmID = r.SourceRpmID
	}
	if r.ClearSourceRpm {
		p.SourceRpmID = nil
	}
	if r.IsManualOverride != nil {
		p.IsManualOverride = *r.IsManualOverride
	}
	return p, nil
}

func toTaskDTO(t adjustment.Task) TaskDTO {
	return TaskDTO{
		ID:            t.ID,
		TaskName:      t.Name,
		TaskStartTime: t.StartTime.String(),
		TaskEndTime:   t.EndTime.String(),
	}
}
