package usecases

import (
	"context"
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/membership"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/id"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// CreateDasUseCase records a manual adjustment of a member's day.
type CreateDasUseCase struct {
	writer         slotWriter
	membershipRepo membership.Repository
	invalidator    ScheduleCacheInvalidator
	logger         logger.Interface
}

// NewCreateDasUseCase creates a new CreateDasUseCase.
func NewCreateDasUseCase(
	slotRepo adjustment.Repository,
	membershipRepo membership.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *CreateDasUseCase {
	return &CreateDasUseCase{
		writer:         slotWriter{slotRepo: slotRepo, txMgr: txMgr},
		membershipRepo: membershipRepo,
		invalidator:    invalidator,
		logger:         logger,
	}
}

func (uc *CreateDasUseCase) Execute(ctx context.Context, req dto.CreateDasRequest, establishmentID uint) (*dto.DasResponse, error) {
	uc.logger.Infow("executing create das use case",
		"membership_id", req.MembershipID,
		"slot_date", req.SlotDate,
		"establishment_id", establishmentID)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	params, err := dto.ToSlotParams(req)
	if err != nil {
		return nil, err
	}
	slot, err := adjustment.NewSlot(establishmentID, req.MembershipID, params)
	if err != nil {
		return nil, err
	}
	if err := slot.EnsureTaskIDs(id.NewTaskID); err != nil {
		return nil, errors.NewInternalError("failed to generate task IDs", err.Error())
	}

	err = uc.writer.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		m, err := uc.membershipRepo.GetMembershipInEstablishment(txCtx, req.MembershipID, establishmentID)
		if err != nil {
			return fmt.Errorf("failed to get membership: %w", err)
		}
		if m == nil {
			return membership.NewNotFoundError(req.MembershipID)
		}
		if err := uc.writer.checkOverlap(txCtx, slot.MembershipID(), slot.SlotDate(), slot.StartTime(), slot.EndTime(), 0); err != nil {
			return err
		}
		return uc.writer.slotRepo.Create(txCtx, slot)
	})
	if err != nil {
		uc.logger.Warnw("failed to create das", "membership_id", req.MembershipID, "error", err)
		return nil, errors.Wrap(err, "failed to create daily adjustment slot")
	}

	uc.invalidator.MemberDates(ctx, refOf(slot), slot.SlotDate())

	uc.logger.Infow("das created successfully", "id", slot.ID(), "membership_id", slot.MembershipID())
	return dto.ToDasResponse(slot), nil
}
