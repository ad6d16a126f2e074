package adjustment

import (
	"context"
	"time"
)

// Repository defines the persistence port for adjustment slots.
// Lookups return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, s *Slot) error
	Update(ctx context.Context, s *Slot) error

	// DeleteInEstablishment removes the slot only when it belongs to the
	// establishment and reports how many rows went away.
	DeleteInEstablishment(ctx context.Context, id, establishmentID uint) (int64, error)

	GetByID(ctx context.Context, id, establishmentID uint) (*Slot, error)

	// GetByIDForUpdate is GetByID taking a row lock inside the current transaction.
	GetByIDForUpdate(ctx context.Context, id, establishmentID uint) (*Slot, error)

	// ListByMemberAndDate returns the member's slots on day ordered by start time.
	ListByMemberAndDate(ctx context.Context, membershipID uint, day time.Time) ([]*Slot, error)

	List(ctx context.Context, filter ListFilter) ([]*Slot, int64, error)
}

// ListFilter defines the filter options for listing slots. Zero values are ignored.
type ListFilter struct {
	EstablishmentID uint
	MembershipID    uint
	SlotDate        *time.Time
	DateFrom        *time.Time
	DateTo          *time.Time
	Page            int
	PageSize        int
}
