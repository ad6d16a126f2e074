package usecases

import (
	"context"

	"github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	commondto "github.com/Kapooral/services-app-server-sub002/internal/application/common/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// BulkDeleteDasUseCase removes several slots, each in its own transaction.
// IDs outside the actor's establishment are skipped silently.
type BulkDeleteDasUseCase struct {
	slotRepo    adjustment.Repository
	txMgr       db.Transactor
	invalidator ScheduleCacheInvalidator
	logger      logger.Interface
}

// NewBulkDeleteDasUseCase creates a new BulkDeleteDasUseCase.
func NewBulkDeleteDasUseCase(
	slotRepo adjustment.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *BulkDeleteDasUseCase {
	return &BulkDeleteDasUseCase{
		slotRepo:    slotRepo,
		txMgr:       txMgr,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (uc *BulkDeleteDasUseCase) Execute(ctx context.Context, req dto.BulkDeleteDasRequest, establishmentID uint) (*dto.BulkDeleteDasResult, error) {
	uc.logger.Infow("executing bulk delete das use case", "ids", len(req.IDs), "establishment_id", establishmentID)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	result := commondto.NewBulkResult[uint]()
	skipped := 0
	for _, slotID := range mapper.Distinct(req.IDs) {
		slot, err := deleteSlot(ctx, uc.slotRepo, uc.txMgr, slotID, establishmentID)
		if err != nil {
			uc.logger.Warnw("bulk delete das item failed", "id", slotID, "error", err)
			result.AddError(slotID, err, constants.BulkCodeSlotNotFound, constants.BulkCodeSlotOverlap)
			continue
		}
		if slot == nil {
			skipped++
			continue
		}
		uc.invalidator.MemberDates(ctx, refOf(slot), slot.SlotDate())
		result.AddSuccess(slotID)
	}

	uc.logger.Infow("bulk delete das completed",
		"deleted", len(result.Successes),
		"skipped", skipped,
		"errors", len(result.Errors))
	return result, nil
}
