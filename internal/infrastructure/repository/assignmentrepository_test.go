package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/testutil"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

func day(s string) time.Time { return biztime.MustParseDate(s) }

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func TestAssignmentRepository_ScopedByMembershipEstablishment(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewAssignmentRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	est := testutil.SeedEstablishment(t, gdb, "Europe/Paris")
	otherEst := testutil.SeedEstablishment(t, gdb, "UTC")
	member := testutil.SeedMembership(t, gdb, est)

	a, err := assignment.NewAssignment(member, 1, day("2024-01-01"), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))

	found, err := repo.GetByID(ctx, a.ID(), est)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, member, found.MembershipID())
	assert.Nil(t, found.EndDate())

	hidden, err := repo.GetByID(ctx, a.ID(), otherEst)
	require.NoError(t, err)
	assert.Nil(t, hidden)

	items, total, err := repo.List(ctx, assignment.ListFilter{EstablishmentID: otherEst})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestAssignmentRepository_FindActiveOn(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewAssignmentRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	est := testutil.SeedEstablishment(t, gdb, "UTC")
	member := testutil.SeedMembership(t, gdb, est)

	first, err := assignment.NewAssignment(member, 1, day("2024-01-01"), dayPtr("2024-01-31"))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))
	second, err := assignment.NewAssignment(member, 2, day("2024-02-01"), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))

	tests := []struct {
		date  string
		rpmID uint
	}{
		{date: "2023-12-31"},
		{date: "2024-01-01", rpmID: 1},
		{date: "2024-01-31", rpmID: 1},
		{date: "2024-02-01", rpmID: 2},
		{date: "2030-06-15", rpmID: 2},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			active, err := repo.FindActiveOn(ctx, member, day(tt.date))
			require.NoError(t, err)
			if tt.rpmID == 0 {
				assert.Nil(t, active)
				return
			}
			require.NotNil(t, active)
			assert.Equal(t, tt.rpmID, active.RpmID())
		})
	}
}

func TestAssignmentRepository_UpdateListAndBulkDelete(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewAssignmentRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	est := testutil.SeedEstablishment(t, gdb, "UTC")
	m1 := testutil.SeedMembership(t, gdb, est)
	m2 := testutil.SeedMembership(t, gdb, est)
	m3 := testutil.SeedMembership(t, gdb, est)

	for _, m := range []uint{m1, m2, m3} {
		a, err := assignment.NewAssignment(m, 5, day("2024-01-01"), nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, a))
	}

	byMember, err := repo.ListByMembership(ctx, m1)
	require.NoError(t, err)
	require.Len(t, byMember, 1)

	a := byMember[0]
	require.NoError(t, a.Reschedule(day("2024-03-01"), dayPtr("2024-03-31")))
	require.NoError(t, repo.Update(ctx, a))
	reloaded, err := repo.GetByID(ctx, a.ID(), est)
	require.NoError(t, err)
	assert.Equal(t, day("2024-03-01"), reloaded.StartDate())
	require.NotNil(t, reloaded.EndDate())
	assert.Equal(t, day("2024-03-31"), *reloaded.EndDate())

	byRpm, err := repo.ListByRpm(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, byRpm, 3)

	filtered, total, err := repo.List(ctx, assignment.ListFilter{EstablishmentID: est, MembershipID: m2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, m2, filtered[0].MembershipID())

	deleted, err := repo.DeleteByRpmAndMemberships(ctx, 5, []uint{m1, m2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	byRpm, err = repo.ListByRpm(ctx, 5)
	require.NoError(t, err)
	require.Len(t, byRpm, 1)
	assert.Equal(t, m3, byRpm[0].MembershipID())
}
