package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assignmentdto "github.com/Kapooral/services-app-server-sub002/internal/application/assignment/dto"
	commondto "github.com/Kapooral/services-app-server-sub002/internal/application/common/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/handlers/testutil"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

type mockCreateAssignmentUC struct {
	result *assignmentdto.AssignmentResponse
	err    error
	gotReq assignmentdto.CreateAssignmentRequest
}

func (m *mockCreateAssignmentUC) Execute(ctx context.Context, req assignmentdto.CreateAssignmentRequest, establishmentID uint) (*assignmentdto.AssignmentResponse, error) {
	m.gotReq = req
	return m.result, m.err
}

type mockListAssignmentsUC struct {
	result *assignmentdto.ListAssignmentsResponse
	err    error
	gotReq assignmentdto.ListAssignmentsRequest
}

func (m *mockListAssignmentsUC) Execute(ctx context.Context, req assignmentdto.ListAssignmentsRequest, establishmentID uint) (*assignmentdto.ListAssignmentsResponse, error) {
	m.gotReq = req
	return m.result, m.err
}

type mockUpdateAssignmentUC struct {
	result *assignmentdto.AssignmentResponse
	err    error
	gotID  uint
}

func (m *mockUpdateAssignmentUC) Execute(ctx context.Context, id uint, req assignmentdto.UpdateAssignmentRequest, establishmentID uint) (*assignmentdto.AssignmentResponse, error) {
	m.gotID = id
	return m.result, m.err
}

type mockDeleteAssignmentUC struct {
	err error
}

func (m *mockDeleteAssignmentUC) Execute(ctx context.Context, id, establishmentID uint) error {
	return m.err
}

type mockBulkAssignUC struct {
	result *assignmentdto.BulkAssignResult
	err    error
	gotReq assignmentdto.BulkAssignRequest
}

func (m *mockBulkAssignUC) Execute(ctx context.Context, req assignmentdto.BulkAssignRequest, establishmentID uint) (*assignmentdto.BulkAssignResult, error) {
	m.gotReq = req
	return m.result, m.err
}

type mockBulkUnassignUC struct {
	result *assignmentdto.BulkUnassignResult
	err    error
	gotReq assignmentdto.BulkUnassignRequest
}

func (m *mockBulkUnassignUC) Execute(ctx context.Context, req assignmentdto.BulkUnassignRequest, establishmentID uint) (*assignmentdto.BulkUnassignResult, error) {
	m.gotReq = req
	return m.result, m.err
}

func newTestAssignmentHandler(
	createUC createAssignmentUseCase,
	listUC listAssignmentsUseCase,
	updateUC updateAssignmentUseCase,
	deleteUC deleteAssignmentUseCase,
	bulkAssignUC bulkAssignUseCase,
	bulkUnassignUC bulkUnassignUseCase,
) *AssignmentHandler {
	return NewAssignmentHandler(createUC, listUC, updateUC, deleteUC, bulkAssignUC, bulkUnassignUC, testutil.NewMockLogger())
}

func TestAssignmentHandler_CreateAssignment_Success(t *testing.T) {
	mockUC := &mockCreateAssignmentUC{result: &assignmentdto.AssignmentResponse{ID: 1, MembershipID: 5, RpmID: 7}}
	handler := newTestAssignmentHandler(mockUC, nil, nil, nil, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/assignments",
		`{"membership_id":5,"rpm_id":7,"start_date":"2024-01-01","end_date":"2024-06-30"}`)

	handler.CreateAssignment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(5), mockUC.gotReq.MembershipID)
	require.NotNil(t, mockUC.gotReq.EndDate)
	assert.Equal(t, "2024-06-30", *mockUC.gotReq.EndDate)
}

func TestAssignmentHandler_CreateAssignment_OverlapIsConflict(t *testing.T) {
	mockUC := &mockCreateAssignmentUC{err: errors.NewConflictError("assignment period overlaps an existing assignment")}
	handler := newTestAssignmentHandler(mockUC, nil, nil, nil, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/assignments", `{"membership_id":5,"rpm_id":7}`)

	handler.CreateAssignment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAssignmentHandler_ListAssignments_Filters(t *testing.T) {
	mockUC := &mockListAssignmentsUC{result: &assignmentdto.ListAssignmentsResponse{
		Items:    []*assignmentdto.AssignmentResponse{},
		Page:     1,
		PageSize: 20,
	}}
	handler := newTestAssignmentHandler(nil, mockUC, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/assignments", nil)
	testutil.SetQueryParams(c, map[string]string{"rpm_id": "7"})

	handler.ListAssignments(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), mockUC.gotReq.RpmID)
	assert.Zero(t, mockUC.gotReq.MembershipID)
	assert.Equal(t, 1, mockUC.gotReq.Page)
}

func TestAssignmentHandler_UpdateAssignment(t *testing.T) {
	mockUC := &mockUpdateAssignmentUC{result: &assignmentdto.AssignmentResponse{ID: 4}}
	handler := newTestAssignmentHandler(nil, nil, mockUC, nil, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPut, "/assignments/4", `{"clear_end_date":true}`)
	testutil.SetURLParam(c, "id", "4")

	handler.UpdateAssignment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), mockUC.gotID)
}

func TestAssignmentHandler_DeleteAssignment(t *testing.T) {
	handler := newTestAssignmentHandler(nil, nil, nil, &mockDeleteAssignmentUC{}, nil, nil)

	c, _ := testutil.NewTestContext(http.MethodDelete, "/assignments/4", nil)
	testutil.SetURLParam(c, "id", "4")

	handler.DeleteAssignment(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}

func TestAssignmentHandler_DeleteAssignment_NotFound(t *testing.T) {
	handler := newTestAssignmentHandler(nil, nil, nil,
		&mockDeleteAssignmentUC{err: errors.NewNotFoundError("assignment not found")}, nil, nil)

	c, w := testutil.NewTestContext(http.MethodDelete, "/assignments/4", nil)
	testutil.SetURLParam(c, "id", "4")

	handler.DeleteAssignment(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignmentHandler_BulkAssign(t *testing.T) {
	result := commondto.NewBulkResult[assignmentdto.BulkAssignSuccess]()
	result.AddSuccess(assignmentdto.BulkAssignSuccess{MembershipID: 5, AssignmentID: 1})
	mockUC := &mockBulkAssignUC{result: result}
	handler := newTestAssignmentHandler(nil, nil, nil, nil, mockUC, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/assignments/bulk-assign",
		`{"membership_ids":[5,6],"rpm_id":7,"start_date":"2024-01-01"}`)

	handler.BulkAssign(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{5, 6}, mockUC.gotReq.MembershipIDs)
	assert.Nil(t, mockUC.gotReq.EndDate)
}

func TestAssignmentHandler_BulkUnassign(t *testing.T) {
	mockUC := &mockBulkUnassignUC{result: commondto.NewBulkResult[assignmentdto.BulkUnassignSuccess]()}
	handler := newTestAssignmentHandler(nil, nil, nil, nil, nil, mockUC)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/assignments/bulk-unassign", `{"membership_ids":[5],"rpm_id":7}`)

	handler.BulkUnassign(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), mockUC.gotReq.RpmID)
}
