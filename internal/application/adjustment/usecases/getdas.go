package usecases

import (
	"context"

	"github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// GetDasUseCase retrieves a slot of the actor's establishment.
type GetDasUseCase struct {
	slotRepo adjustment.Repository
	logger   logger.Interface
}

// NewGetDasUseCase creates a new GetDasUseCase.
func NewGetDasUseCase(slotRepo adjustment.Repository, logger logger.Interface) *GetDasUseCase {
	return &GetDasUseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

func (uc *GetDasUseCase) Execute(ctx context.Context, id, establishmentID uint) (*dto.DasResponse, error) {
	if id == 0 {
		return nil, errors.NewValidationError("daily adjustment slot ID is required")
	}

	slot, err := uc.slotRepo.GetByID(ctx, id, establishmentID)
	if err != nil {
		uc.logger.Errorw("failed to get das", "id", id, "error", err)
		return nil, errors.Wrap(err, "failed to get daily adjustment slot")
	}
	if slot == nil {
		return nil, adjustment.NewNotFoundError(id)
	}
	return dto.ToDasResponse(slot), nil
}
