package usecases

import (
	"context"

	"github.com/Kapooral/services-app-server-sub002/internal/application/assignment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// ListAssignmentsUseCase lists an establishment's assignments.
type ListAssignmentsUseCase struct {
	assignmentRepo assignment.Repository
	logger         logger.Interface
}

// NewListAssignmentsUseCase creates a new ListAssignmentsUseCase.
func NewListAssignmentsUseCase(assignmentRepo assignment.Repository, logger logger.Interface) *ListAssignmentsUseCase {
	return &ListAssignmentsUseCase{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (uc *ListAssignmentsUseCase) Execute(ctx context.Context, req dto.ListAssignmentsRequest, establishmentID uint) (*dto.ListAssignmentsResponse, error) {
	p := utils.ValidatePagination(req.Page, req.PageSize)

	items, total, err := uc.assignmentRepo.List(ctx, assignment.ListFilter{
		EstablishmentID: establishmentID,
		MembershipID:    req.MembershipID,
		RpmID:           req.RpmID,
		Page:            p.Page,
		PageSize:        p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list assignments", "establishment_id", establishmentID, "error", err)
		return nil, errors.Wrap(err, "failed to list assignments")
	}

	resp := &dto.ListAssignmentsResponse{
		Items:    dto.ToAssignmentResponses(items),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if resp.Items == nil {
		resp.Items = []*dto.AssignmentResponse{}
	}
	return resp, nil
}
