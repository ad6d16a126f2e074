package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/mappers"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// RpmRepositoryImpl implements the planning.Repository interface.
type RpmRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RpmMapper
	logger logger.Interface
}

// NewRpmRepository creates a new recurring planning model repository instance.
func NewRpmRepository(db *gorm.DB, logger logger.Interface) planning.Repository {
	return &RpmRepositoryImpl{
		db:     db,
		mapper: mappers.NewRpmMapper(),
		logger: logger,
	}
}

// Create creates a new plan in the database.
func (r *RpmRepositoryImpl) Create(ctx context.Context, rpm *planning.RecurringPlanningModel) error {
	model := r.mapper.ToModel(rpm)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return planning.NewNameConflictError(rpm.Name())
		}
		r.logger.Errorw("failed to create recurring planning model", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create recurring planning model: %w", err)
	}

	if err := rpm.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set recurring planning model ID: %w", err)
	}

	r.logger.Infow("recurring planning model created", "id", model.ID, "establishment_id", model.EstablishmentID, "name", model.Name)
	return nil
}

// Update persists every mutable column of the plan.
func (r *RpmRepositoryImpl) Update(ctx context.Context, rpm *planning.RecurringPlanningModel) error {
	model := r.mapper.ToModel(rpm)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.RecurringPlanningModelModel{}).
		Where("id = ?", model.ID).
		Scopes(db.ForEstablishment(model.EstablishmentID)).
		Updates(map[string]any{
			"name":               model.Name,
			"description":        model.Description,
			"reference_date":     model.ReferenceDate,
			"global_start_time":  model.GlobalStartTime,
			"global_end_time":    model.GlobalEndTime,
			"recurrence_rule":    model.RecurrenceRule,
			"default_block_type": model.DefaultBlockType,
			"breaks":             model.Breaks,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return planning.NewNameConflictError(rpm.Name())
		}
		r.logger.Errorw("failed to update recurring planning model", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update recurring planning model: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return planning.NewNotFoundError(model.ID)
	}

	r.logger.Infow("recurring planning model updated", "id", model.ID, "name", model.Name)
	return nil
}

// Delete removes a plan by ID.
func (r *RpmRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.RecurringPlanningModelModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete recurring planning model", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete recurring planning model: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return planning.NewNotFoundError(id)
	}

	r.logger.Infow("recurring planning model deleted", "id", id)
	return nil
}

// GetByID retrieves a plan scoped to its establishment.
func (r *RpmRepositoryImpl) GetByID(ctx context.Context, id, establishmentID uint) (*planning.RecurringPlanningModel, error) {
	return r.get(ctx, id, establishmentID, false)
}

// GetByIDForUpdate retrieves a plan and locks its row until the transaction ends.
func (r *RpmRepositoryImpl) GetByIDForUpdate(ctx context.Context, id, establishmentID uint) (*planning.RecurringPlanningModel, error) {
	return r.get(ctx, id, establishmentID, true)
}

func (r *RpmRepositoryImpl) get(ctx context.Context, id, establishmentID uint, lock bool) (*planning.RecurringPlanningModel, error) {
	var model models.RecurringPlanningModelModel

	query := db.GetTxFromContext(ctx, r.db).Scopes(db.ForEstablishment(establishmentID))
	if lock {
		query = query.Scopes(db.LockForUpdate())
	}
	if err := query.Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get recurring planning model", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get recurring planning model: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map recurring planning model", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map recurring planning model: %w", err)
	}
	return entity, nil
}

// ExistsByName checks name uniqueness within an establishment. Matching rows
// are locked when called inside a transaction.
func (r *RpmRepositoryImpl) ExistsByName(ctx context.Context, establishmentID uint, name string, excludeID uint) (bool, error) {
	var ids []uint

	query := db.GetTxFromContext(ctx, r.db).Model(&models.RecurringPlanningModelModel{}).
		Scopes(db.ForEstablishment(establishmentID)).
		Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if db.InTransaction(ctx) {
		query = query.Scopes(db.LockForUpdate())
	}

	if err := query.Limit(1).Pluck("id", &ids).Error; err != nil {
		r.logger.Errorw("failed to check recurring planning model name", "name", name, "error", err)
		return false, fmt.Errorf("failed to check recurring planning model name: %w", err)
	}
	return len(ids) > 0, nil
}

// List retrieves plans of an establishment ordered by name.
func (r *RpmRepositoryImpl) List(ctx context.Context, filter planning.ListFilter) ([]*planning.RecurringPlanningModel, int64, error) {
	var modelList []*models.RecurringPlanningModelModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.RecurringPlanningModelModel{}).
		Scopes(db.ForEstablishment(filter.EstablishmentID))
	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count recurring planning models", "error", err)
		return nil, 0, fmt.Errorf("failed to count recurring planning models: %w", err)
	}

	if err := query.Order("name ASC").Order("id ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list recurring planning models", "error", err)
		return nil, 0, fmt.Errorf("failed to list recurring planning models: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map recurring planning models", "error", err)
		return nil, 0, fmt.Errorf("failed to map recurring planning models: %w", err)
	}
	return entities, total, nil
}
