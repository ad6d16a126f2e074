package usecases

import (
	"context"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/application/planning/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// ListRpmUseCase lists an establishment's plans through a short-lived page cache.
type ListRpmUseCase struct {
	rpmRepo planning.Repository
	store   cache.Store
	keys    cache.ScheduleKeys
	ttl     time.Duration
	logger  logger.Interface
}

// NewListRpmUseCase creates a new ListRpmUseCase.
func NewListRpmUseCase(
	rpmRepo planning.Repository,
	store cache.Store,
	keys cache.ScheduleKeys,
	ttl time.Duration,
	logger logger.Interface,
) *ListRpmUseCase {
	return &ListRpmUseCase{
		rpmRepo: rpmRepo,
		store:   store,
		keys:    keys,
		ttl:     ttl,
		logger:  logger,
	}
}

func (uc *ListRpmUseCase) Execute(ctx context.Context, req dto.ListRpmRequest, establishmentID uint) (*dto.ListRpmResponse, error) {
	p := utils.ValidatePagination(req.Page, req.PageSize)
	req.Page, req.PageSize = p.Page, p.PageSize

	key := uc.keys.RpmList(establishmentID, req.CacheVariant())
	cached, hit, err := cache.GetJSON[dto.ListRpmResponse](ctx, uc.store, key)
	if err != nil {
		uc.logger.Warnw("failed to read rpm list cache", "key", key, "error", err)
	}
	if hit {
		return &cached, nil
	}

	rpms, total, err := uc.rpmRepo.List(ctx, planning.ListFilter{
		EstablishmentID: establishmentID,
		Name:            req.Name,
		Page:            req.Page,
		PageSize:        req.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list rpms", "establishment_id", establishmentID, "error", err)
		return nil, errors.Wrap(err, "failed to list recurring planning models")
	}

	resp := &dto.ListRpmResponse{
		Items:    dto.ToRpmResponses(rpms),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if resp.Items == nil {
		resp.Items = []*dto.RpmResponse{}
	}

	if err := cache.SetJSON(ctx, uc.store, key, resp, uc.ttl); err != nil {
		uc.logger.Warnw("failed to write rpm list cache", "key", key, "error", err)
	}
	return resp, nil
}
