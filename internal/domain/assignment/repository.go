package assignment

import (
	"context"
	"time"
)

// Repository defines the persistence port for assignments. Every read is
// scoped to an establishment through the assigned membership.
// Lookups return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, a *Assignment) error
	Update(ctx context.Context, a *Assignment) error
	Delete(ctx context.Context, id uint) error

	GetByID(ctx context.Context, id, establishmentID uint) (*Assignment, error)

	// GetByIDForUpdate is GetByID taking a row lock inside the current transaction.
	GetByIDForUpdate(ctx context.Context, id, establishmentID uint) (*Assignment, error)

	// ListByMembership returns all assignments of a member, ordered by start date.
	ListByMembership(ctx context.Context, membershipID uint) ([]*Assignment, error)

	// FindActiveOn returns the assignment whose period contains day.
	FindActiveOn(ctx context.Context, membershipID uint, day time.Time) (*Assignment, error)

	// ListByRpm returns every assignment pointing at a plan.
	ListByRpm(ctx context.Context, rpmID uint) ([]*Assignment, error)

	// DeleteByRpmAndMemberships removes the plan's assignments for the given members.
	DeleteByRpmAndMemberships(ctx context.Context, rpmID uint, membershipIDs []uint) (int64, error)

	List(ctx context.Context, filter ListFilter) ([]*Assignment, int64, error)
}

// ListFilter defines the filter options for listing assignments.
type ListFilter struct {
	EstablishmentID uint
	MembershipID    uint
	RpmID           uint
	Page            int
	PageSize        int
}
