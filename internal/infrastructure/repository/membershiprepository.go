package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/membership"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
)

// MembershipRepositoryImpl implements the membership.Repository interface.
type MembershipRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewMembershipRepository creates a new membership repository instance.
func NewMembershipRepository(db *gorm.DB, logger logger.Interface) membership.Repository {
	return &MembershipRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// GetMembership retrieves a membership by ID.
func (r *MembershipRepositoryImpl) GetMembership(ctx context.Context, id uint) (*membership.Membership, error) {
	var model models.MembershipModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get membership", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &membership.Membership{ID: model.ID, EstablishmentID: model.EstablishmentID}, nil
}

// GetMembershipInEstablishment retrieves a membership that belongs to establishmentID.
func (r *MembershipRepositoryImpl) GetMembershipInEstablishment(ctx context.Context, id, establishmentID uint) (*membership.Membership, error) {
	var model models.MembershipModel

	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForEstablishment(establishmentID)).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get membership", "id", id, "establishment_id", establishmentID, "error", err)
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &membership.Membership{ID: model.ID, EstablishmentID: model.EstablishmentID}, nil
}

// FilterInEstablishment returns the ids that belong to establishmentID, in input order.
func (r *MembershipRepositoryImpl) FilterInEstablishment(ctx context.Context, ids []uint, establishmentID uint) ([]uint, error) {
	ids = mapper.Distinct(ids)
	if len(ids) == 0 {
		return []uint{}, nil
	}

	var found []uint
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.MembershipModel{}).
		Scopes(db.ForEstablishment(establishmentID)).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		r.logger.Errorw("failed to filter memberships", "establishment_id", establishmentID, "error", err)
		return nil, fmt.Errorf("failed to filter memberships: %w", err)
	}

	valid := make(map[uint]struct{}, len(found))
	for _, id := range found {
		valid[id] = struct{}{}
	}
	result := make([]uint, 0, len(found))
	for _, id := range ids {
		if _, ok := valid[id]; ok {
			result = append(result, id)
		}
	}
	return result, nil
}

// GetEstablishment retrieves an establishment by ID.
func (r *MembershipRepositoryImpl) GetEstablishment(ctx context.Context, id uint) (*membership.Establishment, error) {
	var model models.EstablishmentModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get establishment", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get establishment: %w", err)
	}
	return &membership.Establishment{ID: model.ID, Name: model.Name, Timezone: model.Timezone}, nil
}
