package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// AutoMigrateModels lists the persistence models owned by this service.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.EstablishmentModel{},
		&models.MembershipModel{},
		&models.RecurringPlanningModelModel{},
		&models.RpmMemberAssignmentModel{},
		&models.DailyAdjustmentSlotModel{},
	}
}

// GormAutoMigrateStrategy creates or alters tables from the persistence
// models. Meant for tests and local databases.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) Name() string { return StrategyAutoMigrate }

func (s *GormAutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	models := AutoMigrateModels()
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migration completed", "models", len(models))
	return nil
}
