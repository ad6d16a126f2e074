package usecases

import (
	"context"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/application/assignment/dto"
	commondto "github.com/Kapooral/services-app-server-sub002/internal/application/common/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/membership"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// BulkAssignUseCase binds several members to one plan, each in its own transaction.
type BulkAssignUseCase struct {
	guard       assignmentGuard
	txMgr       db.Transactor
	invalidator ScheduleCacheInvalidator
	logger      logger.Interface
}

// NewBulkAssignUseCase creates a new BulkAssignUseCase.
func NewBulkAssignUseCase(
	assignmentRepo assignment.Repository,
	membershipRepo membership.Repository,
	rpmRepo planning.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *BulkAssignUseCase {
	return &BulkAssignUseCase{
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

// Execute validates the plan once, then assigns each member independently so
// one member's failure never rolls back the others.
func (uc *BulkAssignUseCase) Execute(ctx context.Context, req dto.BulkAssignRequest, establishmentID uint) (*dto.BulkAssignResult, error) {
	uc.logger.Infow("executing bulk assign use case",
		"rpm_id", req.RpmID,
		"members", len(req.MembershipIDs),
		"establishment_id", establishmentID)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	start, end, err := dto.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if end != nil && end.Before(start) {
		return nil, errors.NewValidationError("end date must not be before start date")
	}
	if err := uc.guard.requireRpm(ctx, req.RpmID, establishmentID); err != nil {
		return nil, errors.Wrap(err, "failed to validate recurring planning model")
	}

	result := commondto.NewBulkResult[dto.BulkAssignSuccess]()
	assigned := make([]cache.MemberRef, 0, len(req.MembershipIDs))

	for _, membershipID := range mapper.Distinct(req.MembershipIDs) {
		a, err := uc.assignOne(ctx, membershipID, req.RpmID, establishmentID, start, end)
		if err != nil {
			uc.logger.Warnw("bulk assign item failed", "membership_id", membershipID, "error", err)
			result.AddError(membershipID, err, constants.BulkCodeMembershipNotFound, constants.BulkCodeAssignmentOverlap)
			continue
		}
		result.AddSuccess(dto.BulkAssignSuccess{MembershipID: membershipID, AssignmentID: a.ID()})
		assigned = append(assigned, cache.MemberRef{EstablishmentID: establishmentID, MembershipID: membershipID})
	}

	uc.invalidator.Members(ctx, assigned)

	uc.logger.Infow("bulk assign completed",
		"rpm_id", req.RpmID,
		"successes", len(result.Successes),
		"errors", len(result.Errors))
	return result, nil
}

func (uc *BulkAssignUseCase) assignOne(ctx context.Context, membershipID, rpmID, establishmentID uint, start time.Time, end *time.Time) (*assignment.Assignment, error) {
	a, err := assignment.NewAssignment(membershipID, rpmID, start, end)
	if err != nil {
		return nil, err
	}
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.guard.requireMember(txCtx, membershipID, establishmentID); err != nil {
			return err
		}
		if err := uc.guard.checkOverlap(txCtx, membershipID, start, end, 0); err != nil {
			return err
		}
		return uc.guard.assignmentRepo.Create(txCtx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
