package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kapooral/services-app-server-sub002/internal/application/schedule/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/application/testutil"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	apperrors "github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

const (
	dailyRule   = "FREQ=DAILY"
	weekdayRule = "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"
	scheduleTTL = 15 * time.Minute
)

type fixture struct {
	env    *testutil.Env
	est    uint
	member uint
}

func newFixture(t *testing.T, timezone string) *fixture {
	t.Helper()
	env := testutil.NewEnv(t)
	est := env.Establishment(t, timezone)
	return &fixture{env: env, est: est, member: env.Member(t, est)}
}

func (f *fixture) useCase() *GetDailyScheduleUseCase {
	return f.useCaseWithStore(f.env.Store)
}

func (f *fixture) useCaseWithStore(store cache.Store) *GetDailyScheduleUseCase {
	e := f.env
	return NewGetDailyScheduleUseCase(e.MembershipRepo, e.AssignmentRepo, e.RpmRepo, e.SlotRepo,
		e.Expander, store, e.Keys, scheduleTTL, e.Logger)
}

func (f *fixture) resolve(t *testing.T, date string) []schedule.CalculatedSlot {
	t.Helper()
	resp, err := f.useCase().Execute(context.Background(), dto.GetDailyScheduleRequest{
		MembershipID:    f.member,
		Date:            date,
		EstablishmentID: f.est,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Slots)
	return resp.Slots
}

func (f *fixture) seedPlan(t *testing.T, start, end, rule string, breaks ...planning.Break) uint {
	t.Helper()
	rpm, err := planning.NewRecurringPlanningModel(f.est, fmt.Sprintf("Plan %s-%s", start, end), "",
		biztime.MustParseDate("2024-01-01"),
		schedule.MustParseTimeOfDay(start), schedule.MustParseTimeOfDay(end),
		rule, planning.DefaultBlockType, breaks)
	require.NoError(t, err)
	require.NoError(t, f.env.RpmRepo.Create(context.Background(), rpm))
	return rpm.ID()
}

func (f *fixture) assign(t *testing.T, rpmID uint, start string, end *string) {
	t.Helper()
	var endDate *time.Time
	if end != nil {
		d := biztime.MustParseDate(*end)
		endDate = &d
	}
	a, err := assignment.NewAssignment(f.member, rpmID, biztime.MustParseDate(start), endDate)
	require.NoError(t, err)
	require.NoError(t, f.env.AssignmentRepo.Create(context.Background(), a))
}

func (f *fixture) addDas(t *testing.T, date, start, end, slotType string) uint {
	t.Helper()
	s, err := adjustment.NewSlot(f.est, f.member, adjustment.SlotParams{
		SlotDate:  biztime.MustParseDate(date),
		StartTime: schedule.MustParseTimeOfDay(start),
		EndTime:   schedule.MustParseTimeOfDay(end),
		SlotType:  slotType,
	})
	require.NoError(t, err)
	require.NoError(t, f.env.SlotRepo.Create(context.Background(), s))
	return s.ID()
}

func (f *fixture) corruptPlan(t *testing.T, rpmID uint, column string, value any) {
	t.Helper()
	require.NoError(t, f.env.DB.Model(&models.RecurringPlanningModelModel{}).
		Where("id = ?", rpmID).
		Update(column, value).Error)
}

func mealBreak(start, end string) planning.Break {
	return planning.Break{
		ID:        "brk_meal",
		StartTime: schedule.MustParseTimeOfDay(start),
		EndTime:   schedule.MustParseTimeOfDay(end),
		BreakType: "MEAL",
	}
}

// segments renders slots as "start-end TYPE SOURCE" for compact assertions.
func segments(slots []schedule.CalculatedSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, fmt.Sprintf("%s-%s %s %s", s.StartTime, s.EndTime, s.Type, s.Source))
	}
	return out
}

func TestGetDailySchedule_EnvelopeWithBreak(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule, mealBreak("12:00", "13:00"))
	f.assign(t, rpmID, "2024-01-01", nil)

	slots := f.resolve(t, "2024-10-24")

	assert.Equal(t, []string{
		"09:00:00-12:00:00 WORK RPM_ENVELOPE",
		"12:00:00-13:00:00 MEAL RPM_BREAK",
		"13:00:00-17:00:00 WORK RPM_ENVELOPE",
	}, segments(slots))
	for _, s := range slots {
		assert.Equal(t, "2024-10-24", s.SlotDate)
		require.NotNil(t, s.RpmID)
		assert.Equal(t, rpmID, *s.RpmID)
		assert.Nil(t, s.DasID)
	}
	assert.Equal(t, "brk_meal", slots[1].BreakID)
}

func TestGetDailySchedule_AdjustmentPerforatesPlan(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule, mealBreak("12:00", "13:00"))
	f.assign(t, rpmID, "2024-01-01", nil)
	dasID := f.addDas(t, "2024-10-24", "14:00", "15:00", "TRAINING_EXTERNAL")

	slots := f.resolve(t, "2024-10-24")

	assert.Equal(t, []string{
		"09:00:00-12:00:00 WORK RPM_ENVELOPE",
		"12:00:00-13:00:00 MEAL RPM_BREAK",
		"13:00:00-14:00:00 WORK RPM_ENVELOPE",
		"14:00:00-15:00:00 TRAINING_EXTERNAL DAS",
		"15:00:00-17:00:00 WORK RPM_ENVELOPE",
	}, segments(slots))
	require.NotNil(t, slots[3].DasID)
	assert.Equal(t, dasID, *slots[3].DasID)
}

func TestGetDailySchedule_AdjustmentOverBreakBoundary(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule, mealBreak("12:00", "13:00"))
	f.assign(t, rpmID, "2024-01-01", nil)
	f.addDas(t, "2024-10-24", "11:30", "12:30", "MEETING")

	slots := f.resolve(t, "2024-10-24")

	assert.Equal(t, []string{
		"09:00:00-11:30:00 WORK RPM_ENVELOPE",
		"11:30:00-12:30:00 MEETING DAS",
		"12:30:00-13:00:00 MEAL RPM_BREAK",
		"13:00:00-17:00:00 WORK RPM_ENVELOPE",
	}, segments(slots))
}

func TestGetDailySchedule_NoAssignment(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	f.addDas(t, "2024-10-24", "14:00", "15:00", "TRAINING_EXTERNAL")

	assert.Equal(t, []string{"14:00:00-15:00:00 TRAINING_EXTERNAL DAS"}, segments(f.resolve(t, "2024-10-24")))
	assert.Empty(t, f.resolve(t, "2024-10-25"))
}

func TestGetDailySchedule_AssignmentPeriod(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule)
	f.assign(t, rpmID, "2024-10-01", testutil.Ptr("2024-10-31"))

	assert.Empty(t, f.resolve(t, "2024-09-30"))
	assert.Len(t, f.resolve(t, "2024-10-01"), 1)
	assert.Len(t, f.resolve(t, "2024-10-31"), 1)
	assert.Empty(t, f.resolve(t, "2024-11-01"))
}

func TestGetDailySchedule_WeekdayRule(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	rpmID := f.seedPlan(t, "09:00", "17:00", weekdayRule)
	f.assign(t, rpmID, "2024-01-01", nil)

	assert.Equal(t, []string{"09:00:00-17:00:00 WORK RPM_ENVELOPE"}, segments(f.resolve(t, "2024-10-25")))
	assert.Empty(t, f.resolve(t, "2024-10-26"))
	assert.Empty(t, f.resolve(t, "2024-10-27"))
}

func TestGetDailySchedule_KeepsLocalTimesAcrossDST(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		date     string
	}{
		{name: "paris spring forward", timezone: "Europe/Paris", date: "2024-03-31"},
		{name: "paris fall back", timezone: "Europe/Paris", date: "2024-10-27"},
		{name: "new york spring forward", timezone: "America/New_York", date: "2024-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.timezone)
			rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule, mealBreak("12:00", "13:00"))
			f.assign(t, rpmID, "2024-01-01", nil)

			assert.Equal(t, []string{
				"09:00:00-12:00:00 WORK RPM_ENVELOPE",
				"12:00:00-13:00:00 MEAL RPM_BREAK",
				"13:00:00-17:00:00 WORK RPM_ENVELOPE",
			}, segments(f.resolve(t, tt.date)))
		})
	}
}

func TestGetDailySchedule_ServedFromCache(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule, mealBreak("12:00", "13:00"))
	f.assign(t, rpmID, "2024-01-01", nil)
	dasID := f.addDas(t, "2024-10-24", "14:00", "15:00", "TRAINING_EXTERNAL")

	first := f.resolve(t, "2024-10-24")
	key := f.env.Keys.Daily(f.est, f.member, biztime.MustParseDate("2024-10-24"))
	assert.True(t, f.env.Redis.Exists(key))
	assert.Equal(t, scheduleTTL, f.env.Redis.TTL(key))

	// Deleting behind the invalidator's back proves the second read never hits the database.
	_, err := f.env.SlotRepo.DeleteInEstablishment(context.Background(), dasID, f.est)
	require.NoError(t, err)

	second := f.resolve(t, "2024-10-24")
	assert.Equal(t, first, second)

	f.env.Redis.Del(key)
	assert.Len(t, f.resolve(t, "2024-10-24"), 3)
}

func TestGetDailySchedule_CorruptBreaksAreDropped(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule)
	f.assign(t, rpmID, "2024-01-01", nil)

	breaks, err := json.Marshal([]models.BreakRecord{
		{ID: "brk_inverted", StartTime: "13:00:00", EndTime: "12:00:00", BreakType: "MEAL"},
		{ID: "brk_empty", StartTime: "10:00:00", EndTime: "10:00:00", BreakType: "PAUSE"},
		{ID: "brk_meal", StartTime: "12:00:00", EndTime: "13:00:00", BreakType: "MEAL"},
		{ID: "brk_late", StartTime: "16:30:00", EndTime: "18:00:00", BreakType: "PAUSE"},
	})
	require.NoError(t, err)
	f.corruptPlan(t, rpmID, "breaks", string(breaks))

	assert.Equal(t, []string{
		"09:00:00-12:00:00 WORK RPM_ENVELOPE",
		"12:00:00-13:00:00 MEAL RPM_BREAK",
		"13:00:00-16:30:00 WORK RPM_ENVELOPE",
		"16:30:00-17:00:00 PAUSE RPM_BREAK",
	}, segments(f.resolve(t, "2024-10-24")))
}

func TestGetDailySchedule_CorruptPlanContributesNothing(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  any
	}{
		{name: "unknown frequency", column: "recurrence_rule", value: "FREQ=SOMETIMES"},
		{name: "rule without frequency", column: "recurrence_rule", value: "BYDAY=MO"},
		{name: "inverted envelope", column: "global_start_time", value: "18:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "Europe/Paris")
			rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule)
			f.assign(t, rpmID, "2024-01-01", nil)
			f.addDas(t, "2024-10-24", "14:00", "15:00", "TRAINING_EXTERNAL")
			f.corruptPlan(t, rpmID, tt.column, tt.value)

			assert.Equal(t, []string{"14:00:00-15:00:00 TRAINING_EXTERNAL DAS"}, segments(f.resolve(t, "2024-10-24")))
		})
	}
}

func TestGetDailySchedule_TimezoneErrors(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
	}{
		{name: "missing", timezone: ""},
		{name: "unknown", timezone: "Mars/Olympus_Mons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.timezone)

			_, err := f.useCase().Execute(context.Background(), dto.GetDailyScheduleRequest{
				MembershipID: f.member,
				Date:         "2024-10-24",
			})

			require.Error(t, err)
			assert.True(t, apperrors.IsConfigurationError(err))
		})
	}
}

func TestGetDailySchedule_MissingEstablishmentIsNotFound(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	orphan := &models.MembershipModel{EstablishmentID: f.est + 1000}
	require.NoError(t, f.env.DB.Create(orphan).Error)

	_, err := f.useCase().Execute(context.Background(), dto.GetDailyScheduleRequest{
		MembershipID: orphan.ID,
		Date:         "2024-10-24",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.False(t, apperrors.IsConfigurationError(err))
}

func TestGetDailySchedule_RequestErrors(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	otherEst := f.env.Establishment(t, "UTC")

	tests := []struct {
		name  string
		req   dto.GetDailyScheduleRequest
		check func(error) bool
	}{
		{
			name:  "unknown member",
			req:   dto.GetDailyScheduleRequest{MembershipID: 9999, Date: "2024-10-24"},
			check: apperrors.IsNotFoundError,
		},
		{
			name:  "member of another establishment",
			req:   dto.GetDailyScheduleRequest{MembershipID: f.member, Date: "2024-10-24", EstablishmentID: otherEst},
			check: apperrors.IsNotFoundError,
		},
		{
			name:  "malformed date",
			req:   dto.GetDailyScheduleRequest{MembershipID: f.member, Date: "24/10/2024"},
			check: apperrors.IsValidationError,
		},
		{
			name:  "missing member",
			req:   dto.GetDailyScheduleRequest{Date: "2024-10-24"},
			check: apperrors.IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.useCase().Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestGetDailySchedule_CacheFailuresAreTolerated(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule, mealBreak("12:00", "13:00"))
	f.assign(t, rpmID, "2024-01-01", nil)

	key := f.env.Keys.Daily(f.est, f.member, biztime.MustParseDate("2024-10-24"))
	store := new(mockStore)
	store.On("Get", mock.Anything, key).Return(nil, false, errors.New("connection refused"))
	store.On("Set", mock.Anything, key, mock.Anything, scheduleTTL).Return(errors.New("connection refused"))

	resp, err := f.useCaseWithStore(store).Execute(context.Background(), dto.GetDailyScheduleRequest{
		MembershipID: f.member,
		Date:         "2024-10-24",
	})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
	assert.Equal(t, "Europe/Paris", resp.Timezone)
	assert.Equal(t, f.est, resp.EstablishmentID)
	store.AssertExpectations(t)
}

func TestGetDailySchedule_CorruptCacheEntryIsRecomputed(t *testing.T) {
	f := newFixture(t, "Europe/Paris")
	rpmID := f.seedPlan(t, "09:00", "17:00", dailyRule)
	f.assign(t, rpmID, "2024-01-01", nil)

	key := f.env.Keys.Daily(f.est, f.member, biztime.MustParseDate("2024-10-24"))
	require.NoError(t, f.env.Redis.Set(key, "{not json"))

	assert.Len(t, f.resolve(t, "2024-10-24"), 1)
}
