package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/mappers"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

const assignmentColumns = constants.TableRpmMemberAssignments + ".*"

// AssignmentRepositoryImpl implements the assignment.Repository interface.
type AssignmentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AssignmentMapper
	logger logger.Interface
}

// NewAssignmentRepository creates a new assignment repository instance.
func NewAssignmentRepository(db *gorm.DB, logger logger.Interface) assignment.Repository {
	return &AssignmentRepositoryImpl{
		db:     db,
		mapper: mappers.NewAssignmentMapper(),
		logger: logger,
	}
}

// inEstablishment joins the owning membership so reads stay inside one tenant.
func inEstablishment(establishmentID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN "+constants.TableMemberships+" m ON m.id = "+constants.TableRpmMemberAssignments+".membership_id").
			Scopes(db.ForEstablishmentWithAlias("m", establishmentID))
	}
}

// Create creates a new assignment in the database.
func (r *AssignmentRepositoryImpl) Create(ctx context.Context, a *assignment.Assignment) error {
	model := r.mapper.ToModel(a)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create assignment", "membership_id", model.MembershipID, "rpm_id", model.RpmID, "error", err)
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set assignment ID: %w", err)
	}

	r.logger.Infow("assignment created", "id", model.ID, "membership_id", model.MembershipID, "rpm_id", model.RpmID)
	return nil
}

// Update persists the period and plan of an assignment.
func (r *AssignmentRepositoryImpl) Update(ctx context.Context, a *assignment.Assignment) error {
	model := r.mapper.ToModel(a)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.RpmMemberAssignmentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"rpm_id":     model.RpmID,
			"start_date": model.StartDate,
			"end_date":   model.EndDate,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update assignment", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return assignment.NewNotFoundError(model.ID)
	}

	r.logger.Infow("assignment updated", "id", model.ID)
	return nil
}

// Delete removes an assignment by ID.
func (r *AssignmentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.RpmMemberAssignmentModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete assignment", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return assignment.NewNotFoundError(id)
	}

	r.logger.Infow("assignment deleted", "id", id)
	return nil
}

// GetByID retrieves an assignment whose member belongs to establishmentID.
func (r *AssignmentRepositoryImpl) GetByID(ctx context.Context, id, establishmentID uint) (*assignment.Assignment, error) {
	return r.get(ctx, id, establishmentID, false)
}

// GetByIDForUpdate is GetByID locking the row until the transaction ends.
func (r *AssignmentRepositoryImpl) GetByIDForUpdate(ctx context.Context, id, establishmentID uint) (*assignment.Assignment, error) {
	return r.get(ctx, id, establishmentID, true)
}

func (r *AssignmentRepositoryImpl) get(ctx context.Context, id, establishmentID uint, lock bool) (*assignment.Assignment, error) {
	var model models.RpmMemberAssignmentModel

	query := db.GetTxFromContext(ctx, r.db).Model(&models.RpmMemberAssignmentModel{}).
		Select(assignmentColumns).
		Scopes(inEstablishment(establishmentID))
	if lock {
		query = query.Scopes(db.LockForUpdate())
	}
	if err := query.Where(constants.TableRpmMemberAssignments+".id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get assignment", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map assignment", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map assignment: %w", err)
	}
	return entity, nil
}

// ListByMembership returns all assignments of a member ordered by start date.
func (r *AssignmentRepositoryImpl) ListByMembership(ctx context.Context, membershipID uint) ([]*assignment.Assignment, error) {
	var modelList []*models.RpmMemberAssignmentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("membership_id = ?", membershipID).
		Order("start_date ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list assignments by membership", "membership_id", membershipID, "error", err)
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return r.toEntities(modelList)
}

// FindActiveOn returns the assignment whose period contains day. When stored
// data overlaps, the latest start wins.
func (r *AssignmentRepositoryImpl) FindActiveOn(ctx context.Context, membershipID uint, day time.Time) (*assignment.Assignment, error) {
	var model models.RpmMemberAssignmentModel
	d := biztime.FormatDate(day)

	err := db.GetTxFromContext(ctx, r.db).
		Where("membership_id = ?", membershipID).
		Where("start_date <= ?", d).
		Where("(end_date IS NULL OR end_date >= ?)", d).
		Order("start_date DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find active assignment", "membership_id", membershipID, "date", d, "error", err)
		return nil, fmt.Errorf("failed to find active assignment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListByRpm returns every assignment pointing at a plan.
func (r *AssignmentRepositoryImpl) ListByRpm(ctx context.Context, rpmID uint) ([]*assignment.Assignment, error) {
	var modelList []*models.RpmMemberAssignmentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("rpm_id = ?", rpmID).
		Order("membership_id ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list assignments by rpm", "rpm_id", rpmID, "error", err)
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return r.toEntities(modelList)
}

// DeleteByRpmAndMemberships removes the plan's assignments of the given members in one statement.
func (r *AssignmentRepositoryImpl) DeleteByRpmAndMemberships(ctx context.Context, rpmID uint, membershipIDs []uint) (int64, error) {
	if len(membershipIDs) == 0 {
		return 0, nil
	}

	result := db.GetTxFromContext(ctx, r.db).
		Where("rpm_id = ? AND membership_id IN ?", rpmID, membershipIDs).
		Delete(&models.RpmMemberAssignmentModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete assignments", "rpm_id", rpmID, "error", result.Error)
		return 0, fmt.Errorf("failed to delete assignments: %w", result.Error)
	}

	r.logger.Infow("assignments deleted", "rpm_id", rpmID, "count", result.RowsAffected)
	return result.RowsAffected, nil
}

// List retrieves assignments of an establishment with optional filters.
func (r *AssignmentRepositoryImpl) List(ctx context.Context, filter assignment.ListFilter) ([]*assignment.Assignment, int64, error) {
	var modelList []*models.RpmMemberAssignmentModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.RpmMemberAssignmentModel{}).
		Scopes(inEstablishment(filter.EstablishmentID))
	if filter.MembershipID != 0 {
		query = query.Where(constants.TableRpmMemberAssignments+".membership_id = ?", filter.MembershipID)
	}
	if filter.RpmID != 0 {
		query = query.Where(constants.TableRpmMemberAssignments+".rpm_id = ?", filter.RpmID)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count assignments", "error", err)
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	if err := query.Select(assignmentColumns).
		Order(constants.TableRpmMemberAssignments + ".start_date ASC").
		Order(constants.TableRpmMemberAssignments + ".id ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list assignments", "error", err)
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	entities, err := r.toEntities(modelList)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *AssignmentRepositoryImpl) toEntities(modelList []*models.RpmMemberAssignmentModel) ([]*assignment.Assignment, error) {
	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map assignments", "error", err)
		return nil, fmt.Errorf("failed to map assignments: %w", err)
	}
	return entities, nil
}
