package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/id"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// slotWriter holds the transactional update shared by single and bulk updates.
type slotWriter struct {
	slotRepo adjustment.Repository
	txMgr    db.Transactor
}

// checkOverlap rejects a period intersecting another slot of the member on day.
// The read is not locked: two concurrent writers may both pass.
func (w slotWriter) checkOverlap(ctx context.Context, membershipID uint, day time.Time, start, end schedule.TimeOfDay, excludeID uint) error {
	existing, err := w.slotRepo.ListByMemberAndDate(ctx, membershipID, day)
	if err != nil {
		return fmt.Errorf("failed to list member slots: %w", err)
	}
	if clash := adjustment.FindOverlap(existing, start, end, excludeID); clash != nil {
		return adjustment.NewOverlapError(clash)
	}
	return nil
}

// update locks the slot, merges the patch and persists it. It returns the
// updated slot and the date the slot occupied before the change.
func (w slotWriter) update(ctx context.Context, slotID uint, patch dto.UpdateDasRequest, establishmentID uint) (*adjustment.Slot, time.Time, error) {
	if err := validatePatch(patch); err != nil {
		return nil, time.Time{}, err
	}

	var (
		updated *adjustment.Slot
		oldDate time.Time
	)
	err := w.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		slot, err := w.slotRepo.GetByIDForUpdate(txCtx, slotID, establishmentID)
		if err != nil {
			return fmt.Errorf("failed to get slot: %w", err)
		}
		if slot == nil {
			return adjustment.NewNotFoundError(slotID)
		}
		oldDate = slot.SlotDate()

		params, err := patch.Merge(slot.Params())
		if err != nil {
			return err
		}
		if err := slot.Apply(params); err != nil {
			return err
		}
		if err := slot.EnsureTaskIDs(id.NewTaskID); err != nil {
			return errors.NewInternalError("failed to generate task IDs", err.Error())
		}

		if err := w.checkOverlap(txCtx, slot.MembershipID(), slot.SlotDate(), slot.StartTime(), slot.EndTime(), slot.ID()); err != nil {
			return err
		}
		if err := w.slotRepo.Update(txCtx, slot); err != nil {
			return err
		}
		updated = slot
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return updated, oldDate, nil
}

// affectedDays returns the dates whose cached schedule a move touches.
func affectedDays(slot *adjustment.Slot, oldDate time.Time) []time.Time {
	if oldDate.IsZero() || biztime.SameDate(oldDate, slot.SlotDate()) {
		return []time.Time{slot.SlotDate()}
	}
	return []time.Time{oldDate, slot.SlotDate()}
}

func refOf(slot *adjustment.Slot) cache.MemberRef {
	return cache.MemberRef{EstablishmentID: slot.EstablishmentID(), MembershipID: slot.MembershipID()}
}

func validatePatch(patch dto.UpdateDasRequest) error {
	if err := utils.ValidateStruct(patch); err != nil {
		return err
	}
	if patch.Tasks != nil {
		for _, t := range *patch.Tasks {
			if err := utils.ValidateStruct(t); err != nil {
				return err
			}
		}
	}
	return nil
}
