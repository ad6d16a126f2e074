package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/membership"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
)

// assignmentGuard holds the checks shared by every assignment write.
type assignmentGuard struct {
	membershipRepo membership.Repository
	rpmRepo        planning.Repository
	assignmentRepo assignment.Repository
}

// validateContext checks the member and the plan both belong to establishmentID.
func (g assignmentGuard) validateContext(ctx context.Context, membershipID, rpmID, establishmentID uint) error {
	if err := g.requireMember(ctx, membershipID, establishmentID); err != nil {
		return err
	}
	return g.requireRpm(ctx, rpmID, establishmentID)
}

func (g assignmentGuard) requireMember(ctx context.Context, membershipID, establishmentID uint) error {
	m, err := g.membershipRepo.GetMembershipInEstablishment(ctx, membershipID, establishmentID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}
	if m == nil {
		return membership.NewNotFoundError(membershipID)
	}
	return nil
}

func (g assignmentGuard) requireRpm(ctx context.Context, rpmID, establishmentID uint) error {
	rpm, err := g.rpmRepo.GetByID(ctx, rpmID, establishmentID)
	if err != nil {
		return fmt.Errorf("failed to get rpm: %w", err)
	}
	if rpm == nil {
		return planning.NewNotFoundError(rpmID)
	}
	return nil
}

// checkOverlap rejects a period intersecting another assignment of the member.
// The read is not locked: two concurrent writers may both pass.
func (g assignmentGuard) checkOverlap(ctx context.Context, membershipID uint, start time.Time, end *time.Time, excludeID uint) error {
	existing, err := g.assignmentRepo.ListByMembership(ctx, membershipID)
	if err != nil {
		return fmt.Errorf("failed to list member assignments: %w", err)
	}
	if clash := assignment.FindOverlap(existing, start, end, excludeID); clash != nil {
		return assignment.NewOverlapError(clash)
	}
	return nil
}
