package usecases

import (
	"context"
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// DeleteAssignmentUseCase removes an assignment.
type DeleteAssignmentUseCase struct {
	assignmentRepo assignment.Repository
	txMgr          db.Transactor
	invalidator    ScheduleCacheInvalidator
	logger         logger.Interface
}

// NewDeleteAssignmentUseCase creates a new DeleteAssignmentUseCase.
func NewDeleteAssignmentUseCase(
	assignmentRepo assignment.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *DeleteAssignmentUseCase {
	return &DeleteAssignmentUseCase{
		assignmentRepo: assignmentRepo,
		txMgr:          txMgr,
		invalidator:    invalidator,
		logger:         logger,
	}
}

func (uc *DeleteAssignmentUseCase) Execute(ctx context.Context, id, establishmentID uint) error {
	uc.logger.Infow("executing delete assignment use case", "id", id, "establishment_id", establishmentID)

	if id == 0 {
		return errors.NewValidationError("assignment ID is required")
	}

	var membershipID uint
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		a, err := uc.assignmentRepo.GetByIDForUpdate(txCtx, id, establishmentID)
		if err != nil {
			return fmt.Errorf("failed to get assignment: %w", err)
		}
		if a == nil {
			return assignment.NewNotFoundError(id)
		}
		membershipID = a.MembershipID()
		return uc.assignmentRepo.Delete(txCtx, id)
	})
	if err != nil {
		uc.logger.Warnw("failed to delete assignment", "id", id, "error", err)
		return errors.Wrap(err, "failed to delete assignment")
	}

	uc.invalidator.Member(ctx, cache.MemberRef{EstablishmentID: establishmentID, MembershipID: membershipID})

	uc.logger.Infow("assignment deleted successfully", "id", id, "membership_id", membershipID)
	return nil
}
