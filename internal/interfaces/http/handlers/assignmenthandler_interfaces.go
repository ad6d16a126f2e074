package handlers

import (
	"context"

	assignmentdto "github.com/Kapooral/services-app-server-sub002/internal/application/assignment/dto"
)

// Use case interfaces for AssignmentHandler

type createAssignmentUseCase interface {
	Execute(ctx context.Context, req assignmentdto.CreateAssignmentRequest, establishmentID uint) (*assignmentdto.AssignmentResponse, error)
}

type listAssignmentsUseCase interface {
	Execute(ctx context.Context, req assignmentdto.ListAssignmentsRequest, establishmentID uint) (*assignmentdto.ListAssignmentsResponse, error)
}

type updateAssignmentUseCase interface {
	Execute(ctx context.Context, id uint, req assignmentdto.UpdateAssignmentRequest, establishmentID uint) (*assignmentdto.AssignmentResponse, error)
}

type deleteAssignmentUseCase interface {
	Execute(ctx context.Context, id, establishmentID uint) error
}

type bulkAssignUseCase interface {
	Execute(ctx context.Context, req assignmentdto.BulkAssignRequest, establishmentID uint) (*assignmentdto.BulkAssignResult, error)
}

type bulkUnassignUseCase interface {
	Execute(ctx context.Context, req assignmentdto.BulkUnassignRequest, establishmentID uint) (*assignmentdto.BulkUnassignResult, error)
}
