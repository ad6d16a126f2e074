package adjustment

import (
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// NewNotFoundError reports an adjustment slot missing from the actor's establishment.
func NewNotFoundError(id uint) error {
	return errors.NewNotFoundError("daily adjustment slot not found", fmt.Sprintf("id=%d", id))
}

// NewOverlapError reports a slot colliding with another slot of the same member and date.
func NewOverlapError(existing *Slot) error {
	return errors.NewConflictError("daily adjustment slot overlaps an existing slot",
		fmt.Sprintf("slot_id=%d date=%s period=%s-%s", existing.ID(), biztime.FormatDate(existing.SlotDate()),
			existing.StartTime(), existing.EndTime()))
}
