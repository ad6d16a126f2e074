package usecases

import (
	"context"

	"github.com/Kapooral/services-app-server-sub002/internal/application/planning/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// GetRpmUseCase retrieves a plan of the actor's establishment.
type GetRpmUseCase struct {
	rpmRepo planning.Repository
	logger  logger.Interface
}

// NewGetRpmUseCase creates a new GetRpmUseCase.
func NewGetRpmUseCase(rpmRepo planning.Repository, logger logger.Interface) *GetRpmUseCase {
	return &GetRpmUseCase{
		rpmRepo: rpmRepo,
		logger:  logger,
	}
}

func (uc *GetRpmUseCase) Execute(ctx context.Context, id, establishmentID uint) (*dto.RpmResponse, error) {
	if id == 0 {
		return nil, errors.NewValidationError("recurring planning model ID is required")
	}

	rpm, err := uc.rpmRepo.GetByID(ctx, id, establishmentID)
	if err != nil {
		uc.logger.Errorw("failed to get rpm", "id", id, "establishment_id", establishmentID, "error", err)
		return nil, errors.Wrap(err, "failed to get recurring planning model")
	}
	if rpm == nil {
		return nil, planning.NewNotFoundError(id)
	}

	return dto.ToRpmResponse(rpm), nil
}
