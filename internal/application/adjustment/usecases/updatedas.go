package usecases

import (
	"context"

	"github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// UpdateDasUseCase patches a slot. Existing tasks must still fit a resized
// slot; they are never trimmed.
type UpdateDasUseCase struct {
	writer      slotWriter
	invalidator ScheduleCacheInvalidator
	logger      logger.Interface
}

// NewUpdateDasUseCase creates a new UpdateDasUseCase.
func NewUpdateDasUseCase(
	slotRepo adjustment.Repository,
	txMgr db.Transactor,
	invalidator ScheduleCacheInvalidator,
	logger logger.Interface,
) *UpdateDasUseCase {
	return &UpdateDasUseCase{
		writer:      slotWriter{slotRepo: slotRepo, txMgr: txMgr},
		invalidator: invalidator,
		logger:      logger,
	}
}

func (uc *UpdateDasUseCase) Execute(ctx context.Context, id uint, req dto.UpdateDasRequest, establishmentID uint) (*dto.DasResponse, error) {
	uc.logger.Infow("executing update das use case", "id", id, "establishment_id", establishmentID)

	if id == 0 {
		return nil, errors.NewValidationError("daily adjustment slot ID is required")
	}

	slot, oldDate, err := uc.writer.update(ctx, id, req, establishmentID)
	if err != nil {
		uc.logger.Warnw("failed to update das", "id", id, "error", err)
		return nil, errors.Wrap(err, "failed to update daily adjustment slot")
	}

	uc.invalidator.MemberDates(ctx, refOf(slot), affectedDays(slot, oldDate)...)

	uc.logger.Infow("das updated successfully", "id", id)
	return dto.ToDasResponse(slot), nil
}
