package usecases

import (
	"context"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// ListDasUseCase lists an establishment's slots.
type ListDasUseCase struct {
	slotRepo adjustment.Repository
	logger   logger.Interface
}

// NewListDasUseCase creates a new ListDasUseCase.
func NewListDasUseCase(slotRepo adjustment.Repository, logger logger.Interface) *ListDasUseCase {
	return &ListDasUseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

func (uc *ListDasUseCase) Execute(ctx context.Context, req dto.ListDasRequest, establishmentID uint) (*dto.ListDasResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	p := utils.ValidatePagination(req.Page, req.PageSize)

	filter := adjustment.ListFilter{
		EstablishmentID: establishmentID,
		MembershipID:    req.MembershipID,
		SlotDate:        optionalDate(req.SlotDate),
		DateFrom:        optionalDate(req.DateFrom),
		DateTo:          optionalDate(req.DateTo),
		Page:            p.Page,
		PageSize:        p.PageSize,
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, errors.NewValidationError("date_to must not be before date_from")
	}

	slots, total, err := uc.slotRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list das", "establishment_id", establishmentID, "error", err)
		return nil, errors.Wrap(err, "failed to list daily adjustment slots")
	}

	resp := &dto.ListDasResponse{
		Items:    dto.ToDasResponses(slots),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if resp.Items == nil {
		resp.Items = []*dto.DasResponse{}
	}
	return resp, nil
}

// optionalDate parses an already validated date; empty yields nil.
func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := biztime.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}
