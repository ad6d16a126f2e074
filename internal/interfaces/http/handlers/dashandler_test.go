package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adjustmentdto "github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	commondto "github.com/Kapooral/services-app-server-sub002/internal/application/common/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/handlers/testutil"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

type mockCreateDasUC struct {
	result *adjustmentdto.DasResponse
	err    error
	gotReq adjustmentdto.CreateDasRequest
}

func (m *mockCreateDasUC) Execute(ctx context.Context, req adjustmentdto.CreateDasRequest, establishmentID uint) (*adjustmentdto.DasResponse, error) {
	m.gotReq = req
	return m.result, m.err
}

type mockGetDasUC struct {
	result *adjustmentdto.DasResponse
	err    error
}

func (m *mockGetDasUC) Execute(ctx context.Context, id, establishmentID uint) (*adjustmentdto.DasResponse, error) {
	return m.result, m.err
}

type mockListDasUC struct {
	result           *adjustmentdto.ListDasResponse
	err              error
	gotReq           adjustmentdto.ListDasRequest
	gotEstablishment uint
}

func (m *mockListDasUC) Execute(ctx context.Context, req adjustmentdto.ListDasRequest, establishmentID uint) (*adjustmentdto.ListDasResponse, error) {
	m.gotReq = req
	m.gotEstablishment = establishmentID
	return m.result, m.err
}

type mockUpdateDasUC struct {
	result *adjustmentdto.DasResponse
	err    error
	gotID  uint
	gotReq adjustmentdto.UpdateDasRequest
}

func (m *mockUpdateDasUC) Execute(ctx context.Context, id uint, req adjustmentdto.UpdateDasRequest, establishmentID uint) (*adjustmentdto.DasResponse, error) {
	m.gotID = id
	m.gotReq = req
	return m.result, m.err
}

type mockDeleteDasUC struct {
	err error
}

func (m *mockDeleteDasUC) Execute(ctx context.Context, id, establishmentID uint) error {
	return m.err
}

type mockBulkUpdateDasUC struct {
	result *adjustmentdto.BulkUpdateDasResult
	err    error
	gotReq adjustmentdto.BulkUpdateDasRequest
}

func (m *mockBulkUpdateDasUC) Execute(ctx context.Context, req adjustmentdto.BulkUpdateDasRequest, establishmentID uint) (*adjustmentdto.BulkUpdateDasResult, error) {
	m.gotReq = req
	return m.result, m.err
}

type mockBulkDeleteDasUC struct {
	result *adjustmentdto.BulkDeleteDasResult
	err    error
	gotReq adjustmentdto.BulkDeleteDasRequest
}

func (m *mockBulkDeleteDasUC) Execute(ctx context.Context, req adjustmentdto.BulkDeleteDasRequest, establishmentID uint) (*adjustmentdto.BulkDeleteDasResult, error) {
	m.gotReq = req
	return m.result, m.err
}

func newTestDasHandler(
	createUC createDasUseCase,
	getUC getDasUseCase,
	listUC listDasUseCase,
	updateUC updateDasUseCase,
	deleteUC deleteDasUseCase,
	bulkUpdateUC bulkUpdateDasUseCase,
	bulkDeleteUC bulkDeleteDasUseCase,
) *DasHandler {
	return NewDasHandler(createUC, getUC, listUC, updateUC, deleteUC, bulkUpdateUC, bulkDeleteUC, testutil.NewMockLogger())
}

func createTestDasResponse() *adjustmentdto.DasResponse {
	return &adjustmentdto.DasResponse{
		ID:              11,
		EstablishmentID: 3,
		MembershipID:    5,
		SlotDate:        "2024-10-25",
	}
}

func TestDasHandler_CreateDas_Success(t *testing.T) {
	mockUC := &mockCreateDasUC{result: createTestDasResponse()}
	handler := newTestDasHandler(mockUC, nil, nil, nil, nil, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/das",
		`{"membership_id":5,"slot_date":"2024-10-25","start_time":"10:00:00","end_time":"11:00:00","slot_type":"TRAINING_EXTERNAL"}`)
	testutil.SetEstablishment(c, 3)

	handler.CreateDas(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(5), mockUC.gotReq.MembershipID)
	assert.Equal(t, "2024-10-25", mockUC.gotReq.SlotDate)
}

func TestDasHandler_CreateDas_OverlapIsConflict(t *testing.T) {
	mockUC := &mockCreateDasUC{err: errors.NewConflictError("adjustment slot overlaps an existing slot", "slot_id=4")}
	handler := newTestDasHandler(mockUC, nil, nil, nil, nil, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/das", `{"membership_id":5}`)

	handler.CreateDas(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "slot_id=4", resp.Error.Details)
}

func TestDasHandler_GetDas(t *testing.T) {
	handler := newTestDasHandler(nil, &mockGetDasUC{result: createTestDasResponse()}, nil, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/das/11", nil)
	testutil.SetURLParam(c, "id", "11")

	handler.GetDas(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDasHandler_ListDas_ForwardsQuery(t *testing.T) {
	mockUC := &mockListDasUC{result: &adjustmentdto.ListDasResponse{
		Items:    []*adjustmentdto.DasResponse{},
		Page:     1,
		PageSize: 20,
	}}
	handler := newTestDasHandler(nil, nil, mockUC, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/das", nil)
	testutil.SetEstablishment(c, 3)
	testutil.SetQueryParams(c, map[string]string{
		"membership_id": "5",
		"date_from":     "2024-10-01",
		"date_to":       "2024-10-31",
	})

	handler.ListDas(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), mockUC.gotEstablishment)
	assert.Equal(t, uint(5), mockUC.gotReq.MembershipID)
	assert.Equal(t, "2024-10-01", mockUC.gotReq.DateFrom)
	assert.Equal(t, "2024-10-31", mockUC.gotReq.DateTo)
	assert.Empty(t, mockUC.gotReq.SlotDate)
}

func TestDasHandler_ListDas_InvalidMembershipFilter(t *testing.T) {
	mockUC := &mockListDasUC{}
	handler := newTestDasHandler(nil, nil, mockUC, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/das", nil)
	testutil.SetQueryParams(c, map[string]string{"membership_id": "five"})

	handler.ListDas(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mockUC.gotReq.MembershipID)
}

func TestDasHandler_UpdateDas_PartialPatch(t *testing.T) {
	mockUC := &mockUpdateDasUC{result: createTestDasResponse()}
	handler := newTestDasHandler(nil, nil, nil, mockUC, nil, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPatch, "/das/11", `{"end_time":"12:00:00"}`)
	testutil.SetURLParam(c, "id", "11")

	handler.UpdateDas(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(11), mockUC.gotID)
	require.NotNil(t, mockUC.gotReq.EndTime)
	assert.Equal(t, "12:00:00", *mockUC.gotReq.EndTime)
	assert.Nil(t, mockUC.gotReq.StartTime)
	assert.Nil(t, mockUC.gotReq.Tasks)
}

func TestDasHandler_DeleteDas(t *testing.T) {
	handler := newTestDasHandler(nil, nil, nil, nil, &mockDeleteDasUC{}, nil, nil)

	c, _ := testutil.NewTestContext(http.MethodDelete, "/das/11", nil)
	testutil.SetURLParam(c, "id", "11")

	handler.DeleteDas(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}

func TestDasHandler_BulkUpdateDas_ReportsItemErrorsWith200(t *testing.T) {
	result := commondto.NewBulkResult[*adjustmentdto.DasResponse]()
	result.AddSuccess(createTestDasResponse())
	result.Errors = append(result.Errors, commondto.BulkItemError{ID: 12, Code: constants.BulkCodeSlotNotFound, Message: "not found"})
	mockUC := &mockBulkUpdateDasUC{result: result}
	handler := newTestDasHandler(nil, nil, nil, nil, nil, mockUC, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/das/bulk-update",
		`{"items":[{"id":11,"patch":{"description":"moved"}},{"id":12,"patch":{}}]}`)

	handler.BulkUpdateDas(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mockUC.gotReq.Items, 2)
	require.NotNil(t, mockUC.gotReq.Items[0].Patch.Description)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data struct {
		Successes []adjustmentdto.DasResponse `json:"successes"`
		Errors    []commondto.BulkItemError   `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Len(t, data.Successes, 1)
	require.Len(t, data.Errors, 1)
	assert.Equal(t, constants.BulkCodeSlotNotFound, data.Errors[0].Code)
}

func TestDasHandler_BulkDeleteDas(t *testing.T) {
	result := commondto.NewBulkResult[uint]()
	result.AddSuccess(11)
	mockUC := &mockBulkDeleteDasUC{result: result}
	handler := newTestDasHandler(nil, nil, nil, nil, nil, nil, mockUC)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/das/bulk-delete", `{"ids":[11,99]}`)

	handler.BulkDeleteDas(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{11, 99}, mockUC.gotReq.IDs)
}

func TestDasHandler_BulkDeleteDas_MalformedBody(t *testing.T) {
	mockUC := &mockBulkDeleteDasUC{}
	handler := newTestDasHandler(nil, nil, nil, nil, nil, nil, mockUC)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/das/bulk-delete", `{"ids":"11"}`)

	handler.BulkDeleteDas(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, mockUC.gotReq.IDs)
}
