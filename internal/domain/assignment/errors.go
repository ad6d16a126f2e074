package assignment

import (
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// NewNotFoundError reports an assignment missing from the actor's establishment.
func NewNotFoundError(id uint) error {
	return errors.NewNotFoundError("assignment not found", fmt.Sprintf("id=%d", id))
}

// NewOverlapError reports a period colliding with an existing assignment of the same member.
func NewOverlapError(existing *Assignment) error {
	end := "open"
	if existing.EndDate() != nil {
		end = formatDate(*existing.EndDate())
	}
	return errors.NewConflictError("assignment period overlaps an existing assignment",
		fmt.Sprintf("assignment_id=%d period=%s..%s", existing.ID(), formatDate(existing.StartDate()), end))
}
