package usecases

import (
	"context"
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// DeleteDasUseCase removes a slot.
type DeleteDasUseCase struct {
	slotRepo    adjustment.Repository
	txMgr       db.Transactor
	invalidator ScheduleCacheInvalidator
	logger      logger.Interface
}

// NewDeleteDasUseCase creates a new DeleteDasUseCase.
func NewDeleteDasUseCase(
	slotRepo adjustment.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *DeleteDasUseCase {
	return &DeleteDasUseCase{
		slotRepo:    slotRepo,
		txMgr:       txMgr,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (uc *DeleteDasUseCase) Execute(ctx context.Context, id, establishmentID uint) error {
	uc.logger.Infow("executing delete das use case", "id", id, "establishment_id", establishmentID)

	if id == 0 {
		return errors.NewValidationError("daily adjustment slot ID is required")
	}

	slot, err := deleteSlot(ctx, uc.slotRepo, uc.txMgr, id, establishmentID)
	if err != nil {
		uc.logger.Warnw("failed to delete das", "id", id, "error", err)
		return errors.Wrap(err, "failed to delete daily adjustment slot")
	}
	if slot == nil {
		return adjustment.NewNotFoundError(id)
	}

	uc.invalidator.MemberDates(ctx, refOf(slot), slot.SlotDate())

	uc.logger.Infow("das deleted successfully", "id", id)
	return nil
}

// deleteSlot locks and removes the slot when it belongs to establishmentID.
// It returns nil without error when nothing matched.
func deleteSlot(ctx context.Context, repo adjustment.Repository, txMgr db.Transactor, slotID, establishmentID uint) (*adjustment.Slot, error) {
	var deleted *adjustment.Slot
	err := txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		slot, err := repo.GetByIDForUpdate(txCtx, slotID, establishmentID)
		if err != nil {
			return fmt.Errorf("failed to get slot: %w", err)
		}
		if slot == nil {
			return nil
		}
		n, err := repo.DeleteInEstablishment(txCtx, slotID, establishmentID)
		if err != nil {
			return err
		}
		if n > 0 {
			deleted = slot
		}
		return nil
	})
	return deleted, err
}
