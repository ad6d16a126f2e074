package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/mappers"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// AdjustmentSlotRepositoryImpl implements the adjustment.Repository interface.
type AdjustmentSlotRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AdjustmentSlotMapper
	logger logger.Interface
}

// NewAdjustmentSlotRepository creates a new daily adjustment slot repository instance.
func NewAdjustmentSlotRepository(db *gorm.DB, logger logger.Interface) adjustment.Repository {
	return &AdjustmentSlotRepositoryImpl{
		db:     db,
		mapper: mappers.NewAdjustmentSlotMapper(),
		logger: logger,
	}
}

// Create creates a new slot in the database.
func (r *AdjustmentSlotRepositoryImpl) Create(ctx context.Context, s *adjustment.Slot) error {
	model := r.mapper.ToModel(s)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create adjustment slot", "membership_id", model.MembershipID, "date", model.SlotDate, "error", err)
		return fmt.Errorf("failed to create adjustment slot: %w", err)
	}

	if err := s.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set adjustment slot ID: %w", err)
	}

	r.logger.Infow("adjustment slot created", "id", model.ID, "membership_id", model.MembershipID, "date", model.SlotDate)
	return nil
}

// Update persists every mutable column of the slot.
func (r *AdjustmentSlotRepositoryImpl) Update(ctx context.Context, s *adjustment.Slot) error {
	model := r.mapper.ToModel(s)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.DailyAdjustmentSlotModel{}).
		Where("id = ?", model.ID).
		Scopes(db.ForEstablishment(model.EstablishmentID)).
		Updates(map[string]any{
			"slot_date":          model.SlotDate,
			"start_time":         model.StartTime,
			"end_time":           model.EndTime,
			"slot_type":          model.SlotType,
			"description":        model.Description,
			"tasks":              model.Tasks,
			"source_rpm_id":      model.SourceRpmID,
			"is_manual_override": model.IsManualOverride,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update adjustment slot", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update adjustment slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return adjustment.NewNotFoundError(model.ID)
	}

	r.logger.Infow("adjustment slot updated", "id", model.ID)
	return nil
}

// DeleteInEstablishment removes the slot only when it belongs to establishmentID.
func (r *AdjustmentSlotRepositoryImpl) DeleteInEstablishment(ctx context.Context, id, establishmentID uint) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForEstablishment(establishmentID)).
		Where("id = ?", id).
		Delete(&models.DailyAdjustmentSlotModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete adjustment slot", "id", id, "error", result.Error)
		return 0, fmt.Errorf("failed to delete adjustment slot: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		r.logger.Infow("adjustment slot deleted", "id", id)
	}
	return result.RowsAffected, nil
}

// GetByID retrieves a slot scoped to its establishment.
func (r *AdjustmentSlotRepositoryImpl) GetByID(ctx context.Context, id, establishmentID uint) (*adjustment.Slot, error) {
	return r.get(ctx, id, establishmentID, false)
}

// GetByIDForUpdate is GetByID locking the row until the transaction ends.
func (r *AdjustmentSlotRepositoryImpl) GetByIDForUpdate(ctx context.Context, id, establishmentID uint) (*adjustment.Slot, error) {
	return r.get(ctx, id, establishmentID, true)
}

func (r *AdjustmentSlotRepositoryImpl) get(ctx context.Context, id, establishmentID uint, lock bool) (*adjustment.Slot, error) {
	var model models.DailyAdjustmentSlotModel

	query := db.GetTxFromContext(ctx, r.db).Scopes(db.ForEstablishment(establishmentID))
	if lock {
		query = query.Scopes(db.LockForUpdate())
	}
	if err := query.Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get adjustment slot", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get adjustment slot: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map adjustment slot", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map adjustment slot: %w", err)
	}
	return entity, nil
}

// ListByMemberAndDate returns the member's slots on day ordered by start time.
func (r *AdjustmentSlotRepositoryImpl) ListByMemberAndDate(ctx context.Context, membershipID uint, day time.Time) ([]*adjustment.Slot, error) {
	var modelList []*models.DailyAdjustmentSlotModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("membership_id = ? AND slot_date = ?", membershipID, biztime.FormatDate(day)).
		Order("start_time ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list adjustment slots", "membership_id", membershipID, "error", err)
		return nil, fmt.Errorf("failed to list adjustment slots: %w", err)
	}

	return r.toEntities(modelList)
}

// List retrieves slots of an establishment with optional filters, ordered by date and start time.
func (r *AdjustmentSlotRepositoryImpl) List(ctx context.Context, filter adjustment.ListFilter) ([]*adjustment.Slot, int64, error) {
	var modelList []*models.DailyAdjustmentSlotModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.DailyAdjustmentSlotModel{}).
		Scopes(db.ForEstablishment(filter.EstablishmentID))
	if filter.MembershipID != 0 {
		query = query.Where("membership_id = ?", filter.MembershipID)
	}
	if filter.SlotDate != nil {
		query = query.Where("slot_date = ?", biztime.FormatDate(*filter.SlotDate))
	}
	if filter.DateFrom != nil {
		query = query.Where("slot_date >= ?", biztime.FormatDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		query = query.Where("slot_date <= ?", biztime.FormatDate(*filter.DateTo))
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count adjustment slots", "error", err)
		return nil, 0, fmt.Errorf("failed to count adjustment slots: %w", err)
	}

	if err := query.Order("slot_date ASC").Order("start_time ASC").Order("id ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list adjustment slots", "error", err)
		return nil, 0, fmt.Errorf("failed to list adjustment slots: %w", err)
	}

	entities, err := r.toEntities(modelList)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *AdjustmentSlotRepositoryImpl) toEntities(modelList []*models.DailyAdjustmentSlotModel) ([]*adjustment.Slot, error) {
	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map adjustment slots", "error", err)
		return nil, fmt.Errorf("failed to map adjustment slots: %w", err)
	}
	return entities, nil
}
