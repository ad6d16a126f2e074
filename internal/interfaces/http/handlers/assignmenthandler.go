package handlers

import (
	"github.com/gin-gonic/gin"

	assignmentdto "github.com/Kapooral/services-app-server-sub002/internal/application/assignment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/middleware"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// AssignmentHandler serves plan assignments of members.
type AssignmentHandler struct {
	createUC       createAssignmentUseCase
	listUC         listAssignmentsUseCase
	updateUC       updateAssignmentUseCase
	deleteUC       deleteAssignmentUseCase
	bulkAssignUC   bulkAssignUseCase
	bulkUnassignUC bulkUnassignUseCase
	logger         logger.Interface
}

func NewAssignmentHandler(
	createUC createAssignmentUseCase,
	listUC listAssignmentsUseCase,
	updateUC updateAssignmentUseCase,
	deleteUC deleteAssignmentUseCase,
	bulkAssignUC bulkAssignUseCase,
	bulkUnassignUC bulkUnassignUseCase,
	logger logger.Interface,
) *AssignmentHandler {
	return &AssignmentHandler{
		createUC:       createUC,
		listUC:         listUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		bulkAssignUC:   bulkAssignUC,
		bulkUnassignUC: bulkUnassignUC,
		logger:         logger,
	}
}

// CreateAssignment handles POST /assignments
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req assignmentdto.CreateAssignmentRequest
	if err := bindJSON(c, h.logger, &req, "create assignment"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Assignment created successfully")
}

// ListAssignments handles GET /assignments?membership_id=&rpm_id=&page=&page_size=
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	membershipID, err := utils.ParseOptionalUintQuery(c, "membership_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	rpmID, err := utils.ParseOptionalUintQuery(c, "rpm_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), assignmentdto.ListAssignmentsRequest{
		MembershipID: membershipID,
		RpmID:        rpmID,
		Page:         p.Page,
		PageSize:     p.PageSize,
	}, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateAssignment handles PUT /assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	assignmentID, err := utils.ParseUintParam(c, "id", "assignment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req assignmentdto.UpdateAssignmentRequest
	if err := bindJSON(c, h.logger, &req, "update assignment"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), assignmentID, req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result, "Assignment updated successfully")
}

// DeleteAssignment handles DELETE /assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	assignmentID, err := utils.ParseUintParam(c, "id", "assignment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), assignmentID, middleware.GetEstablishmentID(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// BulkAssign handles POST /assignments/bulk-assign. Item failures are
// reported in the body; the status stays 200.
func (h *AssignmentHandler) BulkAssign(c *gin.Context) {
	var req assignmentdto.BulkAssignRequest
	if err := bindJSON(c, h.logger, &req, "bulk assign"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bulkAssignUC.Execute(c.Request.Context(), req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// BulkUnassign handles POST /assignments/bulk-unassign
func (h *AssignmentHandler) BulkUnassign(c *gin.Context) {
	var req assignmentdto.BulkUnassignRequest
	if err := bindJSON(c, h.logger, &req, "bulk unassign"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bulkUnassignUC.Execute(c.Request.Context(), req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
