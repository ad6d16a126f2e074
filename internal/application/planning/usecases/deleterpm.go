package usecases

import (
	"context"
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// DeleteRpmUseCase handles plan deletion together with its assignments.
type DeleteRpmUseCase struct {
	rpmRepo        planning.Repository
	assignmentRepo assignment.Repository
	txMgr          db.Transactor
	invalidator    ScheduleCacheInvalidator
	logger         logger.Interface
}

// NewDeleteRpmUseCase creates a new DeleteRpmUseCase.
func NewDeleteRpmUseCase(
	rpmRepo planning.Repository,
	assignmentRepo assignment.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *DeleteRpmUseCase {
	return &DeleteRpmUseCase{
		rpmRepo:        rpmRepo,
		assignmentRepo: assignmentRepo,
		txMgr:          txMgr,
		invalidator:    invalidator,
		logger:         logger,
	}
}

// Execute removes the plan and its assignments, then drops the cached
// schedules of the members collected before removal.
func (uc *DeleteRpmUseCase) Execute(ctx context.Context, id, establishmentID uint) error {
	uc.logger.Infow("executing delete rpm use case", "id", id, "establishment_id", establishmentID)

	if id == 0 {
		return errors.NewValidationError("recurring planning model ID is required")
	}

	var refs []cache.MemberRef
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		rpm, err := uc.rpmRepo.GetByIDForUpdate(txCtx, id, establishmentID)
		if err != nil {
			uc.logger.Errorw("failed to get rpm", "id", id, "error", err)
			return fmt.Errorf("failed to get rpm: %w", err)
		}
		if rpm == nil {
			return planning.NewNotFoundError(id)
		}

		refs, err = assignedMembers(txCtx, uc.assignmentRepo, rpm)
		if err != nil {
			return err
		}

		memberIDs := make([]uint, 0, len(refs))
		for _, ref := range refs {
			memberIDs = append(memberIDs, ref.MembershipID)
		}
		if len(memberIDs) > 0 {
			if _, err := uc.assignmentRepo.DeleteByRpmAndMemberships(txCtx, id, memberIDs); err != nil {
				uc.logger.Errorw("failed to delete rpm assignments", "id", id, "error", err)
				return fmt.Errorf("failed to delete rpm assignments: %w", err)
			}
		}

		return uc.rpmRepo.Delete(txCtx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete recurring planning model")
	}

	uc.invalidator.Members(ctx, refs)
	uc.invalidator.RpmList(ctx, establishmentID)

	uc.logger.Infow("rpm deleted successfully", "id", id, "invalidated_members", len(refs))
	return nil
}
