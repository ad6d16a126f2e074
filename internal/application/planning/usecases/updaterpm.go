package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kapooral/services-app-server-sub002/internal/application/planning/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/id"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// UpdateRpmUseCase handles partial updates of a plan.
type UpdateRpmUseCase struct {
	rpmRepo        planning.Repository
	assignmentRepo assignment.Repository
	expander       planning.RecurrenceExpander
	txMgr          db.Transactor
	invalidator    ScheduleCacheInvalidator
	logger         logger.Interface
}

// NewUpdateRpmUseCase creates a new UpdateRpmUseCase.
func NewUpdateRpmUseCase(
	rpmRepo planning.Repository,
	assignmentRepo assignment.Repository,
	expander planning.RecurrenceExpander,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *UpdateRpmUseCase {
	return &UpdateRpmUseCase{
		rpmRepo:        rpmRepo,
		assignmentRepo: assignmentRepo,
		expander:       expander,
		txMgr:          txMgr,
		invalidator:    invalidator,
		logger:         logger,
	}
}

// Execute locks the plan, applies the changes and, once committed, drops the
// cached schedules of every member currently assigned to it.
func (uc *UpdateRpmUseCase) Execute(ctx context.Context, rpmID uint, req dto.UpdateRpmRequest, establishmentID uint) (*dto.RpmResponse, error) {
	uc.logger.Infow("executing update rpm use case", "id", rpmID, "establishment_id", establishmentID)

	if rpmID == 0 {
		return nil, errors.NewValidationError("recurring planning model ID is required")
	}
	if err := uc.validate(req); err != nil {
		return nil, err
	}

	var (
		updated *planning.RecurringPlanningModel
		refs    []cache.MemberRef
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		rpm, err := uc.rpmRepo.GetByIDForUpdate(txCtx, rpmID, establishmentID)
		if err != nil {
			uc.logger.Errorw("failed to get rpm", "id", rpmID, "error", err)
			return fmt.Errorf("failed to get rpm: %w", err)
		}
		if rpm == nil {
			return planning.NewNotFoundError(rpmID)
		}

		if req.Name != nil && strings.TrimSpace(*req.Name) != rpm.Name() {
			exists, err := uc.rpmRepo.ExistsByName(txCtx, establishmentID, strings.TrimSpace(*req.Name), rpmID)
			if err != nil {
				return fmt.Errorf("failed to check rpm name: %w", err)
			}
			if exists {
				return planning.NewNameConflictError(strings.TrimSpace(*req.Name))
			}
			if err := rpm.Rename(*req.Name); err != nil {
				return err
			}
		}
		if err := applyChanges(rpm, req); err != nil {
			return err
		}
		if err := rpm.EnsureBreakIDs(id.NewBreakID); err != nil {
			return errors.NewInternalError("failed to generate break IDs", err.Error())
		}

		if err := uc.rpmRepo.Update(txCtx, rpm); err != nil {
			return err
		}

		refs, err = assignedMembers(txCtx, uc.assignmentRepo, rpm)
		if err != nil {
			uc.logger.Errorw("failed to list rpm assignments", "id", rpmID, "error", err)
			return err
		}
		updated = rpm
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update recurring planning model")
	}

	uc.invalidator.Members(ctx, refs)
	uc.invalidator.RpmList(ctx, establishmentID)

	uc.logger.Infow("rpm updated successfully", "id", rpmID, "invalidated_members", len(refs))
	return dto.ToRpmResponse(updated), nil
}

func (uc *UpdateRpmUseCase) validate(req dto.UpdateRpmRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}
	if req.Breaks != nil {
		for _, b := range *req.Breaks {
			if err := utils.ValidateStruct(b); err != nil {
				return err
			}
		}
	}
	if req.RecurrenceRule != nil {
		if err := uc.expander.Validate(*req.RecurrenceRule); err != nil {
			return err
		}
	}
	return nil
}

// applyChanges merges the non-nil fields into rpm. Envelope and breaks are
// validated together against the merged values.
func applyChanges(rpm *planning.RecurringPlanningModel, req dto.UpdateRpmRequest) error {
	if req.Description != nil {
		rpm.UpdateDescription(*req.Description)
	}
	if req.DefaultBlockType != nil {
		rpm.ChangeDefaultBlockType(*req.DefaultBlockType)
	}

	if req.ChangesRecurrence() {
		rule := rpm.RecurrenceRule()
		if req.RecurrenceRule != nil {
			rule = *req.RecurrenceRule
		}
		referenceDate := rpm.ReferenceDate()
		if req.ReferenceDate != nil {
			d, err := biztime.ParseDate(*req.ReferenceDate)
			if err != nil {
				return errors.NewValidationError("invalid reference date", err.Error())
			}
			referenceDate = d
		}
		if err := rpm.ChangeRecurrence(rule, referenceDate); err != nil {
			return err
		}
	}

	if !req.ChangesShape() {
		return nil
	}
	start, end := rpm.GlobalStartTime(), rpm.GlobalEndTime()
	if req.GlobalStartTime != nil {
		t, err := schedule.ParseTimeOfDay(*req.GlobalStartTime)
		if err != nil {
			return errors.NewValidationError("invalid global start time", err.Error())
		}
		start = t
	}
	if req.GlobalEndTime != nil {
		t, err := schedule.ParseTimeOfDay(*req.GlobalEndTime)
		if err != nil {
			return errors.NewValidationError("invalid global end time", err.Error())
		}
		end = t
	}
	breaks := rpm.Breaks()
	if req.Breaks != nil {
		parsed, err := dto.ToBreaks(*req.Breaks)
		if err != nil {
			return err
		}
		breaks = parsed
	}
	return rpm.Reshape(start, end, breaks)
}

// assignedMembers returns the distinct members currently assigned to rpm.
func assignedMembers(ctx context.Context, repo assignment.Repository, rpm *planning.RecurringPlanningModel) ([]cache.MemberRef, error) {
	assignments, err := repo.ListByRpm(ctx, rpm.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments of rpm %d: %w", rpm.ID(), err)
	}
	refs := make([]cache.MemberRef, 0, len(assignments))
	for _, a := range assignments {
		refs = append(refs, cache.MemberRef{
			EstablishmentID: rpm.EstablishmentID(),
			MembershipID:    a.MembershipID(),
		})
	}
	return refs, nil
}
