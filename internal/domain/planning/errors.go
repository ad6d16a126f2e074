package planning

import (
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// NewNotFoundError reports a plan missing from the actor's establishment.
func NewNotFoundError(id uint) error {
	return errors.NewNotFoundError("recurring planning model not found", fmt.Sprintf("id=%d", id))
}

// NewNameConflictError reports a duplicate plan name inside one establishment.
func NewNameConflictError(name string) error {
	return errors.NewConflictError("recurring planning model name already exists", fmt.Sprintf("name=%s", name))
}

// NewInvalidRecurrenceError reports a recurrence rule that cannot be expanded.
func NewInvalidRecurrenceError(detail string) error {
	return errors.NewValidationError("invalid recurrence rule", detail)
}
