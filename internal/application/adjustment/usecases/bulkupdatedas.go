package usecases

import (
	"context"

	"github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	commondto "github.com/Kapooral/services-app-server-sub002/internal/application/common/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// BulkUpdateDasUseCase patches several slots, each in its own transaction.
type BulkUpdateDasUseCase struct {
	writer      slotWriter
	invalidator ScheduleCacheInvalidator
	logger      logger.Interface
}

// NewBulkUpdateDasUseCase creates a new BulkUpdateDasUseCase.
func NewBulkUpdateDasUseCase(
	slotRepo adjustment.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *BulkUpdateDasUseCase {
	return &BulkUpdateDasUseCase{
		writer:      slotWriter{slotRepo: slotRepo, txMgr: txMgr},
		invalidator: invalidator,
		logger:      logger,
	}
}

func (uc *BulkUpdateDasUseCase) Execute(ctx context.Context, req dto.BulkUpdateDasRequest, establishmentID uint) (*dto.BulkUpdateDasResult, error) {
	uc.logger.Infow("executing bulk update das use case", "items", len(req.Items), "establishment_id", establishmentID)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	result := commondto.NewBulkResult[*dto.DasResponse]()
	for _, item := range req.Items {
		slot, oldDate, err := uc.writer.update(ctx, item.ID, item.Patch, establishmentID)
		if err != nil {
			uc.logger.Warnw("bulk update das item failed", "id", item.ID, "error", err)
			result.AddError(item.ID, err, constants.BulkCodeSlotNotFound, constants.BulkCodeSlotOverlap)
			continue
		}
		uc.invalidator.MemberDates(ctx, refOf(slot), affectedDays(slot, oldDate)...)
		result.AddSuccess(dto.ToDasResponse(slot))
	}

	uc.logger.Infow("bulk update das completed",
		"successes", len(result.Successes),
		"errors", len(result.Errors))
	return result, nil
}
