package handlers

import (
	"context"

	adjustmentdto "github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
)

// Use case interfaces for DasHandler

type createDasUseCase interface {
	Execute(ctx context.Context, req adjustmentdto.CreateDasRequest, establishmentID uint) (*adjustmentdto.DasResponse, error)
}

type getDasUseCase interface {
	Execute(ctx context.Context, id, establishmentID uint) (*adjustmentdto.DasResponse, error)
}

type listDasUseCase interface {
	Execute(ctx context.Context, req adjustmentdto.ListDasRequest, establishmentID uint) (*adjustmentdto.ListDasResponse, error)
}

type updateDasUseCase interface {
	Execute(ctx context.Context, id uint, req adjustmentdto.UpdateDasRequest, establishmentID uint) (*adjustmentdto.DasResponse, error)
}

type deleteDasUseCase interface {
	Execute(ctx context.Context, id, establishmentID uint) error
}

type bulkUpdateDasUseCase interface {
	Execute(ctx context.Context, req adjustmentdto.BulkUpdateDasRequest, establishmentID uint) (*adjustmentdto.BulkUpdateDasResult, error)
}

type bulkDeleteDasUseCase interface {
	Execute(ctx context.Context, req adjustmentdto.BulkDeleteDasRequest, establishmentID uint) (*adjustmentdto.BulkDeleteDasResult, error)
}
