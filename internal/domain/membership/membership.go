// Package membership exposes the read models this service needs from the
// establishment directory: who a member is attached to and which timezone
// that establishment runs on.
package membership

import (
	"context"
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// Membership links a staff member to one establishment.
type Membership struct {
	ID              uint
	EstablishmentID uint
}

// Establishment carries the IANA timezone schedules are expressed in.
type Establishment struct {
	ID       uint
	Name     string
	Timezone string
}

// Repository looks up memberships and establishments.
// Lookups return (nil, nil) when nothing matches.
type Repository interface {
	GetMembership(ctx context.Context, id uint) (*Membership, error)

	// GetMembershipInEstablishment returns the membership only when it belongs to establishmentID.
	GetMembershipInEstablishment(ctx context.Context, id, establishmentID uint) (*Membership, error)

	// FilterInEstablishment returns the subset of ids that belong to establishmentID.
	FilterInEstablishment(ctx context.Context, ids []uint, establishmentID uint) ([]uint, error)

	GetEstablishment(ctx context.Context, id uint) (*Establishment, error)
}

// NewNotFoundError reports a membership missing from the actor's establishment.
func NewNotFoundError(id uint) error {
	return errors.NewNotFoundError("membership not found", fmt.Sprintf("id=%d", id))
}

// NewEstablishmentNotFoundError reports a membership whose establishment row is gone.
func NewEstablishmentNotFoundError(establishmentID uint) error {
	return errors.NewNotFoundError("establishment not found", fmt.Sprintf("id=%d", establishmentID))
}

// NewMissingTimezoneError reports an establishment without a usable timezone.
func NewMissingTimezoneError(establishmentID uint, detail string) error {
	return errors.NewConfigurationError("establishment timezone is not configured",
		fmt.Sprintf("establishment_id=%d %s", establishmentID, detail))
}
