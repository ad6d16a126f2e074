package usecases

import (
	"context"
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/application/planning/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/id"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// CreateRpmUseCase handles recurring planning model creation.
type CreateRpmUseCase struct {
	rpmRepo     planning.Repository
	expander    planning.RecurrenceExpander
	txMgr       db.Transactor
	invalidator ScheduleCacheInvalidator
	logger      logger.Interface
}

// NewCreateRpmUseCase creates a new CreateRpmUseCase.
func NewCreateRpmUseCase(
	rpmRepo planning.Repository,
	expander planning.RecurrenceExpander,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *CreateRpmUseCase {
	return &CreateRpmUseCase{
		rpmRepo:     rpmRepo,
		expander:    expander,
		txMgr:       txMgr,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Execute validates the request, then persists the plan under a locked name check.
func (uc *CreateRpmUseCase) Execute(ctx context.Context, req dto.CreateRpmRequest, establishmentID uint) (*dto.RpmResponse, error) {
	uc.logger.Infow("executing create rpm use case", "establishment_id", establishmentID, "name", req.Name)

	rpm, err := uc.buildRpm(req, establishmentID)
	if err != nil {
		uc.logger.Warnw("invalid create rpm request", "establishment_id", establishmentID, "error", err)
		return nil, err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		exists, err := uc.rpmRepo.ExistsByName(txCtx, establishmentID, rpm.Name(), 0)
		if err != nil {
			uc.logger.Errorw("failed to check rpm name", "establishment_id", establishmentID, "error", err)
			return fmt.Errorf("failed to check rpm name: %w", err)
		}
		if exists {
			return planning.NewNameConflictError(rpm.Name())
		}
		return uc.rpmRepo.Create(txCtx, rpm)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create recurring planning model")
	}

	uc.invalidator.RpmList(ctx, establishmentID)

	uc.logger.Infow("rpm created successfully", "id", rpm.ID(), "establishment_id", establishmentID)
	return dto.ToRpmResponse(rpm), nil
}

func (uc *CreateRpmUseCase) buildRpm(req dto.CreateRpmRequest, establishmentID uint) (*planning.RecurringPlanningModel, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := uc.expander.Validate(req.RecurrenceRule); err != nil {
		return nil, err
	}

	referenceDate, err := biztime.ParseDate(req.ReferenceDate)
	if err != nil {
		return nil, errors.NewValidationError("invalid reference date", err.Error())
	}
	start, err := schedule.ParseTimeOfDay(req.GlobalStartTime)
	if err != nil {
		return nil, errors.NewValidationError("invalid global start time", err.Error())
	}
	end, err := schedule.ParseTimeOfDay(req.GlobalEndTime)
	if err != nil {
		return nil, errors.NewValidationError("invalid global end time", err.Error())
	}
	breaks, err := dto.ToBreaks(req.Breaks)
	if err != nil {
		return nil, err
	}

	rpm, err := planning.NewRecurringPlanningModel(
		establishmentID,
		req.Name,
		req.Description,
		referenceDate,
		start, end,
		req.RecurrenceRule,
		req.DefaultBlockType,
		breaks,
	)
	if err != nil {
		return nil, err
	}
	if err := rpm.EnsureBreakIDs(id.NewBreakID); err != nil {
		return nil, errors.NewInternalError("failed to generate break IDs", err.Error())
	}
	return rpm, nil
}
