package usecases

import (
	"context"
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/application/assignment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/membership"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// UpdateAssignmentUseCase moves an assignment to a new period or plan.
type UpdateAssignmentUseCase struct {
	guard       assignmentGuard
	txMgr       db.Transactor
	invalidator ScheduleCacheInvalidator
	logger      logger.Interface
}

// NewUpdateAssignmentUseCase creates a new UpdateAssignmentUseCase.
func NewUpdateAssignmentUseCase(
	assignmentRepo assignment.Repository,
	membershipRepo membership.Repository,
	rpmRepo planning.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *UpdateAssignmentUseCase {
	return &UpdateAssignmentUseCase{
		guard: assignmentGuard{
			membershipRepo: membershipRepo,
			rpmRepo:        rpmRepo,
			assignmentRepo: assignmentRepo,
		},
		txMgr:       txMgr,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Execute re-runs the overlap check against the proposed period, excluding itself.
func (uc *UpdateAssignmentUseCase) Execute(ctx context.Context, id uint, req dto.UpdateAssignmentRequest, establishmentID uint) (*dto.AssignmentResponse, error) {
	uc.logger.Infow("executing update assignment use case", "id", id, "establishment_id", establishmentID)

	if id == 0 {
		return nil, errors.NewValidationError("assignment ID is required")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var updated *assignment.Assignment
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		a, err := uc.guard.assignmentRepo.GetByIDForUpdate(txCtx, id, establishmentID)
		if err != nil {
			return fmt.Errorf("failed to get assignment: %w", err)
		}
		if a == nil {
			return assignment.NewNotFoundError(id)
		}

		if req.RpmID != nil && *req.RpmID != a.RpmID() {
			if err := uc.guard.requireRpm(txCtx, *req.RpmID, establishmentID); err != nil {
				return err
			}
			if err := a.ChangeRpm(*req.RpmID); err != nil {
				return err
			}
		}

		start, end := a.StartDate(), a.EndDate()
		if req.StartDate != nil {
			d, err := biztime.ParseDate(*req.StartDate)
			if err != nil {
				return errors.NewValidationError("invalid start date", err.Error())
			}
			start = d
		}
		if req.EndDate != nil {
			d, err := biztime.ParseDate(*req.EndDate)
			if err != nil {
				return errors.NewValidationError("invalid end date", err.Error())
			}
			end = &d
		}
		if req.ClearEndDate {
			end = nil
		}
		if err := a.Reschedule(start, end); err != nil {
			return err
		}

		if err := uc.guard.checkOverlap(txCtx, a.MembershipID(), start, end, a.ID()); err != nil {
			return err
		}
		if err := uc.guard.assignmentRepo.Update(txCtx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to update assignment", "id", id, "error", err)
		return nil, errors.Wrap(err, "failed to update assignment")
	}

	uc.invalidator.Member(ctx, cache.MemberRef{EstablishmentID: establishmentID, MembershipID: updated.MembershipID()})

	uc.logger.Infow("assignment updated successfully", "id", id)
	return dto.ToAssignmentResponse(updated), nil
}
