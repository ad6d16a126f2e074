package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/testutil"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	apperrors "github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

func tod(s string) schedule.TimeOfDay { return schedule.MustParseTimeOfDay(s) }

func newTestRpm(t *testing.T, establishmentID uint, name string) *planning.RecurringPlanningModel {
	t.Helper()
	rpm, err := planning.NewRecurringPlanningModel(establishmentID, name, "", biztime.MustParseDate("2024-01-01"),
		tod("09:00"), tod("17:00"), "FREQ=DAILY", "",
		[]planning.Break{{ID: "brk_1", StartTime: tod("12:00"), EndTime: tod("13:00"), BreakType: "MEAL"}})
	require.NoError(t, err)
	return rpm
}

func TestRpmRepository_CreateAndGet(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewRpmRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	rpm := newTestRpm(t, 1, "Office")
	require.NoError(t, repo.Create(ctx, rpm))
	require.NotZero(t, rpm.ID())

	found, err := repo.GetByID(ctx, rpm.ID(), 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Office", found.Name())
	assert.Equal(t, tod("09:00"), found.GlobalStartTime())
	assert.Equal(t, tod("17:00"), found.GlobalEndTime())
	assert.Equal(t, biztime.MustParseDate("2024-01-01"), found.ReferenceDate())
	require.Len(t, found.Breaks(), 1)
	assert.Equal(t, planning.Break{ID: "brk_1", StartTime: tod("12:00"), EndTime: tod("13:00"), BreakType: "MEAL"}, found.Breaks()[0])

	other, err := repo.GetByID(ctx, rpm.ID(), 2)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestRpmRepository_DuplicateNameIsConflict(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewRpmRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestRpm(t, 1, "Office")))
	err := repo.Create(ctx, newTestRpm(t, 1, "Office"))
	assert.True(t, apperrors.IsConflictError(err))

	require.NoError(t, repo.Create(ctx, newTestRpm(t, 2, "Office")))
}

func TestRpmRepository_ExistsByName(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewRpmRepository(gdb, logger.NewNopLogger())
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	rpm := newTestRpm(t, 1, "Office")
	require.NoError(t, repo.Create(ctx, rpm))

	exists, err := repo.ExistsByName(ctx, 1, "Office", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, 1, "Office", rpm.ID())
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		exists, err := repo.ExistsByName(txCtx, 2, "Office", 0)
		require.NoError(t, err)
		assert.False(t, exists)
		return nil
	}))
}

func TestRpmRepository_UpdateAndDelete(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewRpmRepository(gdb, logger.NewNopLogger())
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	rpm := newTestRpm(t, 1, "Office")
	require.NoError(t, repo.Create(ctx, rpm))

	require.NoError(t, tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		locked, err := repo.GetByIDForUpdate(txCtx, rpm.ID(), 1)
		if err != nil {
			return err
		}
		if err := locked.Rename("Late office"); err != nil {
			return err
		}
		if err := locked.Reshape(tod("10:00"), tod("18:00"), nil); err != nil {
			return err
		}
		return repo.Update(txCtx, locked)
	}))

	found, err := repo.GetByID(ctx, rpm.ID(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Late office", found.Name())
	assert.Equal(t, tod("10:00"), found.GlobalStartTime())
	assert.Empty(t, found.Breaks())

	require.NoError(t, repo.Delete(ctx, rpm.ID()))
	err = repo.Delete(ctx, rpm.ID())
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestRpmRepository_ToleratesCorruptStoredTimes(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewRpmRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	model := &models.RecurringPlanningModelModel{
		EstablishmentID:  1,
		Name:             "Legacy",
		ReferenceDate:    "2024-01-01",
		GlobalStartTime:  "9h",
		GlobalEndTime:    "17:00:00",
		RecurrenceRule:   "FREQ=DAILY",
		DefaultBlockType: "WORK",
		Breaks: []models.BreakRecord{
			{ID: "a", StartTime: "12:00:00", EndTime: "13:00:00", BreakType: "MEAL"},
			{ID: "b", StartTime: "noon", EndTime: "13:00:00", BreakType: "MEAL"},
		},
	}
	require.NoError(t, gdb.Create(model).Error)

	found, err := repo.GetByID(ctx, model.ID, 1)
	require.NoError(t, err)
	assert.False(t, found.HasValidEnvelope())
	valid := found.ValidBreaks()
	require.Len(t, valid, 1)
	assert.Equal(t, "a", valid[0].ID)
}

func TestRpmRepository_List(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewRpmRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	for _, name := range []string{"Night", "Day", "Day off", "Weekend"} {
		require.NoError(t, repo.Create(ctx, newTestRpm(t, 1, name)))
	}
	require.NoError(t, repo.Create(ctx, newTestRpm(t, 2, "Day")))

	items, total, err := repo.List(ctx, planning.ListFilter{EstablishmentID: 1, Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Day", items[0].Name())
	assert.Equal(t, "Day off", items[1].Name())

	items, total, err = repo.List(ctx, planning.ListFilter{EstablishmentID: 1, Name: "Day"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
}
