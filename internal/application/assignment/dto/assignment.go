// Package dto provides data transfer objects for member assignments.
package dto

import (
	"time"

	commondto "github.com/Kapooral/services-app-server-sub002/internal/application/common/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
)

// CreateAssignmentRequest binds one member to a plan.
type CreateAssignmentRequest struct {
	MembershipID uint    `json:"membership_id" validate:"required"`
	RpmID        uint    `json:"rpm_id" validate:"required"`
	StartDate    string  `json:"start_date" validate:"required,date"`
	EndDate      *string `json:"end_date" validate:"omitempty,date"`
}

// UpdateAssignmentRequest is a partial update. ClearEndDate makes the
// assignment open-ended and wins over EndDate.
type UpdateAssignmentRequest struct {
	RpmID        *uint   `json:"rpm_id" validate:"omitempty,gt=0"`
	StartDate    *string `json:"start_date" validate:"omitempty,date"`
	EndDate      *string `json:"end_date" validate:"omitempty,date"`
	ClearEndDate bool    `json:"clear_end_date"`
}

// ListAssignmentsRequest filters an establishment's assignments. Zero values are ignored.
type ListAssignmentsRequest struct {
	MembershipID uint `json:"membership_id"`
	RpmID        uint `json:"rpm_id"`
	Page         int  `json:"page"`
	PageSize     int  `json:"page_size"`
}

// BulkAssignRequest binds several members to one plan over the same period.
type BulkAssignRequest struct {
	MembershipIDs []uint  `json:"membership_ids" validate:"required,min=1,max=500,dive,gt=0"`
	RpmID         uint    `json:"rpm_id" validate:"required"`
	StartDate     string  `json:"start_date" validate:"required,date"`
	EndDate       *string `json:"end_date" validate:"omitempty,date"`
}

// BulkUnassignRequest removes several members from one plan.
type BulkUnassignRequest struct {
	MembershipIDs []uint `json:"membership_ids" validate:"required,min=1,max=500,dive,gt=0"`
	RpmID         uint   `json:"rpm_id" validate:"required"`
}

// AssignmentResponse represents an assignment in API responses.
type AssignmentResponse struct {
	ID           uint      `json:"id"`
	MembershipID uint      `json:"membership_id"`
	RpmID        uint      `json:"rpm_id"`
	StartDate    string    `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListAssignmentsResponse represents one page of assignments.
type ListAssignmentsResponse struct {
	Items    []*AssignmentResponse `json:"items"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// BulkAssignSuccess reports a member bound by a bulk assign.
type BulkAssignSuccess struct {
	MembershipID uint `json:"membership_id"`
	AssignmentID uint `json:"assignment_id"`
}

// BulkUnassignSuccess reports a member removed by a bulk unassign.
type BulkUnassignSuccess struct {
	MembershipID uint `json:"membership_id"`
}

// BulkAssignResult is keyed by membership ID.
type BulkAssignResult = commondto.BulkResult[BulkAssignSuccess]

// BulkUnassignResult is keyed by membership ID.
type BulkUnassignResult = commondto.BulkResult[BulkUnassignSuccess]

// ToAssignmentResponse converts a domain assignment to its response shape.
func ToAssignmentResponse(a *assignment.Assignment) *AssignmentResponse {
	if a == nil {
		return nil
	}
	var end *string
	if a.EndDate() != nil {
		s := biztime.FormatDate(*a.EndDate())
		end = &s
	}
	return &AssignmentResponse{
		ID:           a.ID(),
		MembershipID: a.MembershipID(),
		RpmID:        a.RpmID(),
		StartDate:    biztime.FormatDate(a.StartDate()),
		EndDate:      end,
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}

// ToAssignmentResponses converts a slice of domain assignments.
func ToAssignmentResponses(items []*assignment.Assignment) []*AssignmentResponse {
	return mapper.Map(items, ToAssignmentResponse)
}

// ParsePeriod parses a start date and an optional end date.
func ParsePeriod(start string, end *string) (time.Time, *time.Time, error) {
	startDate, err := biztime.ParseDate(start)
	if err != nil {
		return time.Time{}, nil, errors.NewValidationError("invalid start date", err.Error())
	}
	if end == nil {
		return startDate, nil, nil
	}
	endDate, err := biztime.ParseDate(*end)
	if err != nil {
		return time.Time{}, nil, errors.NewValidationError("invalid end date", err.Error())
	}
	return startDate, &endDate, nil
}
