package usecases

import (
	"context"

	"github.com/Kapooral/services-app-server-sub002/internal/application/assignment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/membership"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// CreateAssignmentUseCase binds a member to a plan.
type CreateAssignmentUseCase struct {
	guard       assignmentGuard
	txMgr       db.Transactor
	invalidator ScheduleCacheInvalidator
	logger      logger.Interface
}

// NewCreateAssignmentUseCase creates a new CreateAssignmentUseCase.
func NewCreateAssignmentUseCase(
	assignmentRepo assignment.Repository,
	membershipRepo membership.Repository,
	rpmRepo planning.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *CreateAssignmentUseCase {
	return &CreateAssignmentUseCase{
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

func (uc *CreateAssignmentUseCase) Execute(ctx context.Context, req dto.CreateAssignmentRequest, establishmentID uint) (*dto.AssignmentResponse, error) {
	uc.logger.Infow("executing create assignment use case",
		"membership_id", req.MembershipID,
		"rpm_id", req.RpmID,
		"establishment_id", establishmentID)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	start, end, err := dto.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	a, err := assignment.NewAssignment(req.MembershipID, req.RpmID, start, end)
	if err != nil {
		return nil, err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.guard.validateContext(txCtx, req.MembershipID, req.RpmID, establishmentID); err != nil {
			return err
		}
		if err := uc.guard.checkOverlap(txCtx, req.MembershipID, start, end, 0); err != nil {
			return err
		}
		return uc.guard.assignmentRepo.Create(txCtx, a)
	})
	if err != nil {
		uc.logger.Warnw("failed to create assignment", "membership_id", req.MembershipID, "error", err)
		return nil, errors.Wrap(err, "failed to create assignment")
	}

	uc.invalidator.Member(ctx, cache.MemberRef{EstablishmentID: establishmentID, MembershipID: a.MembershipID()})

	uc.logger.Infow("assignment created successfully", "id", a.ID(), "membership_id", a.MembershipID())
	return dto.ToAssignmentResponse(a), nil
}
