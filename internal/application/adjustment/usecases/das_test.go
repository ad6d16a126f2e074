package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/application/testutil"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

type fixture struct {
	env    *testutil.Env
	est    uint
	member uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	env := testutil.NewEnv(t)
	est := env.Establishment(t, "Europe/Paris")
	return &fixture{env: env, est: est, member: env.Member(t, est)}
}

func (f *fixture) createUC() *CreateDasUseCase {
	e := f.env
	return NewCreateDasUseCase(e.SlotRepo, e.MembershipRepo, e.TxMgr, e.Invalidator, e.Logger)
}

func (f *fixture) request(date, start, end string) dto.CreateDasRequest {
	return dto.CreateDasRequest{
		MembershipID:     f.member,
		SlotDate:         date,
		StartTime:        start,
		EndTime:          end,
		SlotType:         "TRAINING_EXTERNAL",
		IsManualOverride: true,
	}
}

func (f *fixture) mustCreate(t *testing.T, req dto.CreateDasRequest) *dto.DasResponse {
	t.Helper()
	resp, err := f.createUC().Execute(context.Background(), req, f.est)
	require.NoError(t, err)
	return resp
}

func TestCreateDas_AssignsTaskIDs(t *testing.T) {
	f := newFixture(t)
	req := f.request("2024-10-24", "14:00", "16:00")
	req.Tasks = []dto.TaskDTO{
		{TaskName: "Theory", TaskStartTime: "14:00", TaskEndTime: "15:00"},
		{TaskName: "Practice", TaskStartTime: "15:00", TaskEndTime: "16:00"},
	}

	resp := f.mustCreate(t, req)

	assert.Equal(t, "2024-10-24", resp.SlotDate)
	assert.Equal(t, "14:00:00", resp.StartTime)
	require.Len(t, resp.Tasks, 2)
	for _, task := range resp.Tasks {
		assert.True(t, strings.HasPrefix(task.ID, "tsk_"))
	}
}

func TestCreateDas_OverlapRules(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantError bool
	}{
		{name: "partial overlap", start: "13:30", end: "14:30", wantError: true},
		{name: "contained", start: "14:15", end: "14:45", wantError: true},
		{name: "swallows existing", start: "13:00", end: "16:00", wantError: true},
		{name: "identical", start: "14:00", end: "15:00", wantError: true},
		{name: "adjacent after", start: "15:00", end: "16:00", wantError: false},
		{name: "adjacent before", start: "13:00", end: "14:00", wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.mustCreate(t, f.request("2024-10-24", "14:00", "15:00"))

			_, err := f.createUC().Execute(context.Background(), f.request("2024-10-24", tt.start, tt.end), f.est)
			if tt.wantError {
				require.True(t, errors.IsConflictError(err), "got %v", err)
				assert.Contains(t, errors.GetAppError(err).Details, "slot_id=")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateDas_OtherDayOrMemberDoesNotClash(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, f.request("2024-10-24", "14:00", "15:00"))
	f.mustCreate(t, f.request("2024-10-25", "14:00", "15:00"))

	colleague := f.request("2024-10-24", "14:00", "15:00")
	colleague.MembershipID = f.env.Member(t, f.est)
	f.mustCreate(t, colleague)
}

func TestCreateDas_Rejections(t *testing.T) {
	f := newFixture(t)

	outsider := f.request("2024-10-24", "14:00", "15:00")
	outsider.MembershipID = f.env.Member(t, f.env.Establishment(t, "UTC"))
	_, err := f.createUC().Execute(context.Background(), outsider, f.est)
	assert.True(t, errors.IsNotFoundError(err))

	inverted := f.request("2024-10-24", "15:00", "14:00")
	_, err = f.createUC().Execute(context.Background(), inverted, f.est)
	assert.True(t, errors.IsValidationError(err))

	taskOutside := f.request("2024-10-24", "14:00", "15:00")
	taskOutside.Tasks = []dto.TaskDTO{{TaskName: "Late", TaskStartTime: "14:30", TaskEndTime: "15:30"}}
	_, err = f.createUC().Execute(context.Background(), taskOutside, f.est)
	assert.True(t, errors.IsValidationError(err))

	overlappingTasks := f.request("2024-10-24", "14:00", "16:00")
	overlappingTasks.Tasks = []dto.TaskDTO{
		{TaskName: "A", TaskStartTime: "14:00", TaskEndTime: "15:00"},
		{TaskName: "B", TaskStartTime: "14:30", TaskEndTime: "16:00"},
	}
	_, err = f.createUC().Execute(context.Background(), overlappingTasks, f.est)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateDas_InvalidatesThatDayOnly(t *testing.T) {
	f := newFixture(t)
	e := f.env
	target := e.Keys.Daily(f.est, f.member, biztime.MustParseDate("2024-10-24"))
	otherDay := e.Keys.Daily(f.est, f.member, biztime.MustParseDate("2024-10-25"))
	require.NoError(t, e.Redis.Set(target, "[]"))
	require.NoError(t, e.Redis.Set(otherDay, "[]"))

	f.mustCreate(t, f.request("2024-10-24", "14:00", "15:00"))

	assert.False(t, e.Redis.Exists(target))
	assert.True(t, e.Redis.Exists(otherDay))
}

func TestUpdateDas_KeepsTasksAndRejectsShrink(t *testing.T) {
	f := newFixture(t)
	e := f.env
	req := f.request("2024-10-24", "14:00", "16:00")
	req.Tasks = []dto.TaskDTO{{TaskName: "Practice", TaskStartTime: "15:00", TaskEndTime: "16:00"}}
	created := f.mustCreate(t, req)

	uc := NewUpdateDasUseCase(e.SlotRepo, e.TxMgr, e.Invalidator, e.Logger)

	_, err := uc.Execute(context.Background(), created.ID, dto.UpdateDasRequest{EndTime: testutil.Ptr("15:30")}, f.est)
	assert.True(t, errors.IsValidationError(err))

	resp, err := uc.Execute(context.Background(), created.ID, dto.UpdateDasRequest{
		StartTime: testutil.Ptr("13:00"),
		SlotType:  testutil.Ptr("ABSENCE"),
	}, f.est)
	require.NoError(t, err)
	assert.Equal(t, "13:00:00", resp.StartTime)
	assert.Equal(t, "ABSENCE", resp.SlotType)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, created.Tasks[0].ID, resp.Tasks[0].ID)

	resp, err = uc.Execute(context.Background(), created.ID, dto.UpdateDasRequest{
		Tasks:   &[]dto.TaskDTO{},
		EndTime: testutil.Ptr("14:00"),
	}, f.est)
	require.NoError(t, err)
	assert.Empty(t, resp.Tasks)
}

func TestUpdateDas_MoveInvalidatesBothDays(t *testing.T) {
	f := newFixture(t)
	e := f.env
	created := f.mustCreate(t, f.request("2024-10-24", "14:00", "15:00"))

	oldKey := e.Keys.Daily(f.est, f.member, biztime.MustParseDate("2024-10-24"))
	newKey := e.Keys.Daily(f.est, f.member, biztime.MustParseDate("2024-10-26"))
	require.NoError(t, e.Redis.Set(oldKey, "[]"))
	require.NoError(t, e.Redis.Set(newKey, "[]"))

	uc := NewUpdateDasUseCase(e.SlotRepo, e.TxMgr, e.Invalidator, e.Logger)
	resp, err := uc.Execute(context.Background(), created.ID, dto.UpdateDasRequest{SlotDate: testutil.Ptr("2024-10-26")}, f.est)
	require.NoError(t, err)
	assert.Equal(t, "2024-10-26", resp.SlotDate)

	assert.False(t, e.Redis.Exists(oldKey))
	assert.False(t, e.Redis.Exists(newKey))
}

func TestUpdateDas_OverlapExcludesItself(t *testing.T) {
	f := newFixture(t)
	e := f.env
	first := f.mustCreate(t, f.request("2024-10-24", "09:00", "10:00"))
	f.mustCreate(t, f.request("2024-10-24", "11:00", "12:00"))

	uc := NewUpdateDasUseCase(e.SlotRepo, e.TxMgr, e.Invalidator, e.Logger)

	_, err := uc.Execute(context.Background(), first.ID, dto.UpdateDasRequest{EndTime: testutil.Ptr("10:30")}, f.est)
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), first.ID, dto.UpdateDasRequest{EndTime: testutil.Ptr("11:30")}, f.est)
	assert.True(t, errors.IsConflictError(err))
}

func TestGetAndDeleteDas_ScopedToEstablishment(t *testing.T) {
	f := newFixture(t)
	e := f.env
	otherEst := e.Establishment(t, "UTC")
	created := f.mustCreate(t, f.request("2024-10-24", "14:00", "15:00"))

	get := NewGetDasUseCase(e.SlotRepo, e.Logger)
	_, err := get.Execute(context.Background(), created.ID, otherEst)
	assert.True(t, errors.IsNotFoundError(err))

	del := NewDeleteDasUseCase(e.SlotRepo, e.TxMgr, e.Invalidator, e.Logger)
	assert.True(t, errors.IsNotFoundError(del.Execute(context.Background(), created.ID, otherEst)))
	require.NoError(t, del.Execute(context.Background(), created.ID, f.est))

	_, err = get.Execute(context.Background(), created.ID, f.est)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListDas_Filters(t *testing.T) {
	f := newFixture(t)
	e := f.env
	f.mustCreate(t, f.request("2024-10-24", "14:00", "15:00"))
	f.mustCreate(t, f.request("2024-10-25", "14:00", "15:00"))
	f.mustCreate(t, f.request("2024-11-02", "14:00", "15:00"))

	uc := NewListDasUseCase(e.SlotRepo, e.Logger)

	all, err := uc.Execute(context.Background(), dto.ListDasRequest{MembershipID: f.member}, f.est)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	oneDay, err := uc.Execute(context.Background(), dto.ListDasRequest{SlotDate: "2024-10-25"}, f.est)
	require.NoError(t, err)
	assert.Equal(t, int64(1), oneDay.Total)

	october, err := uc.Execute(context.Background(), dto.ListDasRequest{DateFrom: "2024-10-01", DateTo: "2024-10-31"}, f.est)
	require.NoError(t, err)
	assert.Equal(t, int64(2), october.Total)

	_, err = uc.Execute(context.Background(), dto.ListDasRequest{DateFrom: "2024-10-31", DateTo: "2024-10-01"}, f.est)
	assert.True(t, errors.IsValidationError(err))
}

func TestBulkUpdateDas_PartialFailure(t *testing.T) {
	f := newFixture(t)
	e := f.env
	morning := f.mustCreate(t, f.request("2024-10-24", "09:00", "10:00"))
	noon := f.mustCreate(t, f.request("2024-10-24", "12:00", "13:00"))

	uc := NewBulkUpdateDasUseCase(e.SlotRepo, e.TxMgr, e.Invalidator, e.Logger)
	result, err := uc.Execute(context.Background(), dto.BulkUpdateDasRequest{Items: []dto.BulkUpdateDasItem{
		{ID: morning.ID, Patch: dto.UpdateDasRequest{SlotType: testutil.Ptr("ABSENCE")}},
		{ID: noon.ID, Patch: dto.UpdateDasRequest{StartTime: testutil.Ptr("09:30")}},
		{ID: 999, Patch: dto.UpdateDasRequest{SlotType: testutil.Ptr("ABSENCE")}},
	}}, f.est)
	require.NoError(t, err)

	require.Len(t, result.Successes, 1)
	assert.Equal(t, "ABSENCE", result.Successes[0].SlotType)

	codes := map[uint]string{}
	for _, item := range result.Errors {
		codes[item.ID] = item.Code
	}
	assert.Equal(t, map[uint]string{
		noon.ID: constants.BulkCodeSlotOverlap,
		999:     constants.BulkCodeSlotNotFound,
	}, codes)

	unchanged, err := NewGetDasUseCase(e.SlotRepo, e.Logger).Execute(context.Background(), noon.ID, f.est)
	require.NoError(t, err)
	assert.Equal(t, "12:00:00", unchanged.StartTime)
}

func TestBulkDeleteDas_SkipsForeignIDs(t *testing.T) {
	f := newFixture(t)
	e := f.env
	otherEst := e.Establishment(t, "UTC")
	ours := f.mustCreate(t, f.request("2024-10-24", "09:00", "10:00"))

	foreign := &fixture{env: e, est: otherEst, member: e.Member(t, otherEst)}
	theirs := foreign.mustCreate(t, foreign.request("2024-10-24", "09:00", "10:00"))

	uc := NewBulkDeleteDasUseCase(e.SlotRepo, e.TxMgr, e.Invalidator, e.Logger)
	result, err := uc.Execute(context.Background(), dto.BulkDeleteDasRequest{IDs: []uint{ours.ID, theirs.ID}}, f.est)
	require.NoError(t, err)

	assert.Equal(t, []uint{ours.ID}, result.Successes)
	assert.Empty(t, result.Errors)

	still, err := e.SlotRepo.GetByID(context.Background(), theirs.ID, otherEst)
	require.NoError(t, err)
	assert.NotNil(t, still)
}
