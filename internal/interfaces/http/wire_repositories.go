package http

import (
	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/membership"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/repository"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	rpmRepo        planning.Repository
	assignmentRepo assignment.Repository
	slotRepo       adjustment.Repository
	membershipRepo membership.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		rpmRepo:        repository.NewRpmRepository(db, log),
		assignmentRepo: repository.NewAssignmentRepository(db, log),
		slotRepo:       repository.NewAdjustmentSlotRepository(db, log),
		membershipRepo: repository.NewMembershipRepository(db, log),
	}
}
