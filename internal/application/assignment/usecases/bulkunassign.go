package usecases

import (
	"context"
	"fmt"

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

// BulkUnassignUseCase removes several members from one plan in a single statement.
type BulkUnassignUseCase struct {
	guard       assignmentGuard
	txMgr       db.Transactor
	invalidator ScheduleCacheInvalidator
	logger      logger.Interface
}

// NewBulkUnassignUseCase creates a new BulkUnassignUseCase.
func NewBulkUnassignUseCase(
	assignmentRepo assignment.Repository,
	membershipRepo membership.Repository,
	rpmRepo planning.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *BulkUnassignUseCase {
	return &BulkUnassignUseCase{
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

// Execute reports members outside the establishment as errors and deletes the
// plan's assignments of the remaining ones.
func (uc *BulkUnassignUseCase) Execute(ctx context.Context, req dto.BulkUnassignRequest, establishmentID uint) (*dto.BulkUnassignResult, error) {
	uc.logger.Infow("executing bulk unassign use case",
		"rpm_id", req.RpmID,
		"members", len(req.MembershipIDs),
		"establishment_id", establishmentID)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := uc.guard.requireRpm(ctx, req.RpmID, establishmentID); err != nil {
		return nil, errors.Wrap(err, "failed to validate recurring planning model")
	}

	requested := mapper.Distinct(req.MembershipIDs)
	valid, err := uc.guard.membershipRepo.FilterInEstablishment(ctx, requested, establishmentID)
	if err != nil {
		uc.logger.Errorw("failed to filter memberships", "establishment_id", establishmentID, "error", err)
		return nil, errors.Wrap(err, "failed to validate memberships")
	}

	result := commondto.NewBulkResult[dto.BulkUnassignSuccess]()
	validSet := make(map[uint]struct{}, len(valid))
	for _, id := range valid {
		validSet[id] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := validSet[id]; !ok {
			result.AddErrorCode(id, constants.BulkCodeMembershipNotFound, "membership not found")
		}
	}
	if len(valid) == 0 {
		return result, nil
	}

	var deleted int64
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		n, err := uc.guard.assignmentRepo.DeleteByRpmAndMemberships(txCtx, req.RpmID, valid)
		if err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to bulk unassign", "rpm_id", req.RpmID, "error", err)
		return nil, errors.Wrap(err, "failed to unassign members")
	}

	refs := make([]cache.MemberRef, 0, len(valid))
	for _, id := range valid {
		result.AddSuccess(dto.BulkUnassignSuccess{MembershipID: id})
		refs = append(refs, cache.MemberRef{EstablishmentID: establishmentID, MembershipID: id})
	}
	uc.invalidator.Members(ctx, refs)

	uc.logger.Infow("bulk unassign completed",
		"rpm_id", req.RpmID,
		"deleted", deleted,
		"errors", len(result.Errors))
	return result, nil
}
