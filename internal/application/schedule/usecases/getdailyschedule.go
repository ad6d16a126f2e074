package usecases

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Kapooral/services-app-server-sub002/internal/application/schedule/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/membership"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

type block = schedule.Interval[schedule.SlotInfo]

// GetDailyScheduleUseCase resolves a member's day from the active plan
// assignment and the day's adjustment slots.
//
// Stored data the write side should have rejected (inverted envelopes or
// breaks, unparsable recurrence rules, dangling plan references) never fails
// the call: the offending item is skipped and logged at warn level.
type GetDailyScheduleUseCase struct {
	membershipRepo membership.Repository
	assignmentRepo assignment.Repository
	rpmRepo        planning.Repository
	slotRepo       adjustment.Repository
	expander       planning.RecurrenceExpander
	store          cache.Store
	keys           cache.ScheduleKeys
	ttl            time.Duration
	logger         logger.Interface
}

// NewGetDailyScheduleUseCase creates a new GetDailyScheduleUseCase.
func NewGetDailyScheduleUseCase(
	membershipRepo membership.Repository,
	assignmentRepo assignment.Repository,
	rpmRepo planning.Repository,
	slotRepo adjustment.Repository,
	expander planning.RecurrenceExpander,
	store cache.Store,
	keys cache.ScheduleKeys,
	ttl time.Duration,
	logger logger.Interface,
) *GetDailyScheduleUseCase {
	return &GetDailyScheduleUseCase{
		membershipRepo: membershipRepo,
		assignmentRepo: assignmentRepo,
		rpmRepo:        rpmRepo,
		slotRepo:       slotRepo,
		expander:       expander,
		store:          store,
		keys:           keys,
		ttl:            ttl,
		logger:         logger,
	}
}

func (uc *GetDailyScheduleUseCase) Execute(ctx context.Context, req dto.GetDailyScheduleRequest) (*dto.DailyScheduleResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	day, err := biztime.ParseDate(req.Date)
	if err != nil {
		return nil, errors.NewValidationError("invalid date", err.Error())
	}

	member, err := uc.lookupMember(ctx, req)
	if err != nil {
		return nil, err
	}

	est, err := uc.membershipRepo.GetEstablishment(ctx, member.EstablishmentID)
	if err != nil {
		uc.logger.Errorw("failed to get establishment", "establishment_id", member.EstablishmentID, "error", err)
		return nil, errors.Wrap(err, "failed to get establishment")
	}
	if est == nil {
		return nil, membership.NewEstablishmentNotFoundError(member.EstablishmentID)
	}
	loc, err := biztime.LoadLocation(est.Timezone)
	if err != nil {
		uc.logger.Errorw("establishment timezone unusable", "establishment_id", est.ID, "timezone", est.Timezone, "error", err)
		return nil, membership.NewMissingTimezoneError(est.ID, err.Error())
	}

	resp := &dto.DailyScheduleResponse{
		MembershipID:    member.ID,
		EstablishmentID: est.ID,
		Date:            biztime.FormatDate(day),
		Timezone:        est.Timezone,
	}

	key := uc.keys.Daily(est.ID, member.ID, day)
	cached, found, err := cache.GetJSON[[]schedule.CalculatedSlot](ctx, uc.store, key)
	if err != nil {
		uc.logger.Warnw("schedule cache read failed", "key", key, "error", err)
	} else if found {
		uc.logger.Debugw("schedule served from cache", "key", key)
		resp.Slots = nonNil(cached)
		return resp, nil
	}

	slots, err := uc.resolve(ctx, member.ID, est.ID, day, loc)
	if err != nil {
		uc.logger.Errorw("failed to resolve daily schedule",
			"membership_id", member.ID,
			"date", resp.Date,
			"error", err,
		)
		return nil, errors.Wrap(err, "failed to resolve daily schedule")
	}

	if err := cache.SetJSON(ctx, uc.store, key, slots, uc.ttl); err != nil {
		uc.logger.Warnw("schedule cache write failed", "key", key, "error", err)
	}

	resp.Slots = nonNil(slots)
	return resp, nil
}

func (uc *GetDailyScheduleUseCase) lookupMember(ctx context.Context, req dto.GetDailyScheduleRequest) (*membership.Membership, error) {
	var (
		member *membership.Membership
		err    error
	)
	if req.EstablishmentID != 0 {
		member, err = uc.membershipRepo.GetMembershipInEstablishment(ctx, req.MembershipID, req.EstablishmentID)
	} else {
		member, err = uc.membershipRepo.GetMembership(ctx, req.MembershipID)
	}
	if err != nil {
		uc.logger.Errorw("failed to get membership", "membership_id", req.MembershipID, "error", err)
		return nil, errors.Wrap(err, "failed to get membership")
	}
	if member == nil {
		return nil, membership.NewNotFoundError(req.MembershipID)
	}
	return member, nil
}

// resolve composes the day: plan envelope minus breaks, then adjustment
// slots layered on top.
func (uc *GetDailyScheduleUseCase) resolve(ctx context.Context, membershipID, establishmentID uint, day time.Time, loc *time.Location) ([]schedule.CalculatedSlot, error) {
	var (
		active *assignment.Assignment
		slots  []*adjustment.Slot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := uc.assignmentRepo.FindActiveOn(gctx, membershipID, day)
		if err != nil {
			return fmt.Errorf("failed to find active assignment: %w", err)
		}
		active = a
		return nil
	})
	g.Go(func() error {
		s, err := uc.slotRepo.ListByMemberAndDate(gctx, membershipID, day)
		if err != nil {
			return fmt.Errorf("failed to list adjustment slots: %w", err)
		}
		slots = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	blocks, err := uc.planBlocks(ctx, active, establishmentID, day, loc)
	if err != nil {
		return nil, err
	}
	blocks = layer(blocks, uc.adjustmentBlocks(slots, day, loc))

	return schedule.ToCalculatedSlots(blocks, day, loc), nil
}

// planBlocks returns the working blocks and breaks the assigned plan yields on day.
func (uc *GetDailyScheduleUseCase) planBlocks(ctx context.Context, active *assignment.Assignment, establishmentID uint, day time.Time, loc *time.Location) ([]block, error) {
	if active == nil {
		return nil, nil
	}

	rpm, err := uc.rpmRepo.GetByID(ctx, active.RpmID(), establishmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get planning model: %w", err)
	}
	if rpm == nil {
		uc.logger.Warnw("assignment points at a missing planning model",
			"assignment_id", active.ID(),
			"rpm_id", active.RpmID(),
		)
		return nil, nil
	}

	occurs, err := rpm.OccursOn(uc.expander, day, loc)
	if err != nil {
		uc.logger.Warnw("planning model recurrence rule unusable, ignoring plan",
			"rpm_id", rpm.ID(),
			"rule", rpm.RecurrenceRule(),
			"error", err,
		)
		return nil, nil
	}
	if !occurs {
		return nil, nil
	}
	if !rpm.HasValidEnvelope() {
		uc.logger.Warnw("planning model envelope inverted, ignoring plan",
			"rpm_id", rpm.ID(),
			"start", rpm.GlobalStartTime(),
			"end", rpm.GlobalEndTime(),
		)
		return nil, nil
	}

	rpmID := rpm.ID()
	envelope := schedule.LocalInterval(day, rpm.GlobalStartTime(), rpm.GlobalEndTime(), loc, schedule.SlotInfo{
		Type:   rpm.DefaultBlockType(),
		Source: schedule.SourceRpmEnvelope,
		RpmID:  &rpmID,
	})

	valid := rpm.ValidBreaks()
	if dropped := len(rpm.Breaks()) - len(valid); dropped > 0 {
		uc.logger.Warnw("dropping inverted planning model breaks", "rpm_id", rpmID, "dropped", dropped)
	}

	breaks := make([]block, 0, len(valid))
	for _, b := range valid {
		breaks = append(breaks, schedule.LocalInterval(day, b.StartTime, b.EndTime, loc, schedule.SlotInfo{
			Type:        b.BreakType,
			Description: b.Description,
			Source:      schedule.SourceRpmBreak,
			RpmID:       &rpmID,
			BreakID:     b.ID,
		}))
	}
	breaks = schedule.Clip(breaks, envelope.Start, envelope.End)

	return layer([]block{envelope}, breaks), nil
}

func (uc *GetDailyScheduleUseCase) adjustmentBlocks(slots []*adjustment.Slot, day time.Time, loc *time.Location) []block {
	blocks := make([]block, 0, len(slots))
	for _, s := range slots {
		if !s.IsValid() {
			uc.logger.Warnw("skipping inverted adjustment slot",
				"das_id", s.ID(),
				"start", s.StartTime(),
				"end", s.EndTime(),
			)
			continue
		}
		dasID := s.ID()
		blocks = append(blocks, schedule.LocalInterval(day, s.StartTime(), s.EndTime(), loc, schedule.SlotInfo{
			Type:        s.SlotType(),
			Description: s.Description(),
			Source:      schedule.SourceDas,
			Tasks:       slotTasks(s.Tasks()),
			RpmID:       s.SourceRpmID(),
			DasID:       &dasID,
		}))
	}
	return blocks
}

// layer overlays each override in turn so a later one wins over an earlier
// one it overlaps. The result never contains two overlapping blocks.
func layer(base, overrides []block) []block {
	result := schedule.SortByStart(base)
	for _, o := range overrides {
		result = schedule.Overlay(result, []block{o})
	}
	return result
}

func slotTasks(tasks []adjustment.Task) []schedule.SlotTask {
	if len(tasks) == 0 {
		return nil
	}
	out := make([]schedule.SlotTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, schedule.SlotTask{
			ID:        t.ID,
			Name:      t.Name,
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
		})
	}
	return out
}

func nonNil(slots []schedule.CalculatedSlot) []schedule.CalculatedSlot {
	if slots == nil {
		return []schedule.CalculatedSlot{}
	}
	return slots
}
