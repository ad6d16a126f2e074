package cache

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
)

const invalidationConcurrency = 8

// MemberRef identifies a member inside its establishment.
type MemberRef struct {
	EstablishmentID uint
	MembershipID    uint
}

// ScheduleInvalidator drops cached schedules after writes. It runs after
// commit and never fails the caller: errors are logged.
type ScheduleInvalidator struct {
	store  Store
	keys   ScheduleKeys
	logger logger.Interface
}

// NewScheduleInvalidator creates a new invalidator.
func NewScheduleInvalidator(store Store, keys ScheduleKeys, logger logger.Interface) *ScheduleInvalidator {
	return &ScheduleInvalidator{
		store:  store,
		keys:   keys,
		logger: logger,
	}
}

// Member drops every cached day of one member.
func (i *ScheduleInvalidator) Member(ctx context.Context, ref MemberRef) {
	pattern := i.keys.MemberPattern(ref.EstablishmentID, ref.MembershipID)
	if _, err := i.store.DeleteByPattern(ctx, pattern); err != nil {
		i.logger.Warnw("failed to invalidate member schedules",
			"establishment_id", ref.EstablishmentID,
			"membership_id", ref.MembershipID,
			"error", err)
	}
}

// Members drops the cached days of several members concurrently.
func (i *ScheduleInvalidator) Members(ctx context.Context, refs []MemberRef) {
	refs = mapper.Distinct(refs)
	if len(refs) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(invalidationConcurrency)
	for _, ref := range refs {
		g.Go(func() error {
			i.Member(gctx, ref)
			return nil
		})
	}
	_ = g.Wait()

	i.logger.Debugw("member schedules invalidated", "members", len(refs))
}

// MemberDates drops specific cached days of one member.
func (i *ScheduleInvalidator) MemberDates(ctx context.Context, ref MemberRef, days ...time.Time) {
	for _, day := range days {
		key := i.keys.Daily(ref.EstablishmentID, ref.MembershipID, day)
		if err := i.store.Delete(ctx, key); err != nil {
			i.logger.Warnw("failed to invalidate member schedule",
				"key", key,
				"error", err)
		}
	}
}

// RpmList drops every cached plan list page of an establishment.
func (i *ScheduleInvalidator) RpmList(ctx context.Context, establishmentID uint) {
	if _, err := i.store.DeleteByPattern(ctx, i.keys.RpmListPattern(establishmentID)); err != nil {
		i.logger.Warnw("failed to invalidate plan list cache",
			"establishment_id", establishmentID,
			"error", err)
	}
}
