package handlers

import (
	"context"

	planningdto "github.com/Kapooral/services-app-server-sub002/internal/application/planning/dto"
)

// Use case interfaces for RpmHandler

type createRpmUseCase interface {
	Execute(ctx context.Context, req planningdto.CreateRpmRequest, establishmentID uint) (*planningdto.RpmResponse, error)
}

type getRpmUseCase interface {
	Execute(ctx context.Context, id, establishmentID uint) (*planningdto.RpmResponse, error)
}

type listRpmUseCase interface {
	Execute(ctx context.Context, req planningdto.ListRpmRequest, establishmentID uint) (*planningdto.ListRpmResponse, error)
}

type updateRpmUseCase interface {
	Execute(ctx context.Context, id uint, req planningdto.UpdateRpmRequest, establishmentID uint) (*planningdto.RpmResponse, error)
}

type deleteRpmUseCase interface {
	Execute(ctx context.Context, id, establishmentID uint) error
}
