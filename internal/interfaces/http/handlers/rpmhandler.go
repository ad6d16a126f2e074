package handlers

import (
	"github.com/gin-gonic/gin"

	planningdto "github.com/Kapooral/services-app-server-sub002/internal/application/planning/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/middleware"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// RpmHandler serves recurring planning models.
type RpmHandler struct {
	createRpmUC createRpmUseCase
	getRpmUC    getRpmUseCase
	listRpmUC   listRpmUseCase
	updateRpmUC updateRpmUseCase
	deleteRpmUC deleteRpmUseCase
	logger      logger.Interface
}

func NewRpmHandler(
	createRpmUC createRpmUseCase,
	getRpmUC getRpmUseCase,
	listRpmUC listRpmUseCase,
	updateRpmUC updateRpmUseCase,
	deleteRpmUC deleteRpmUseCase,
	logger logger.Interface,
) *RpmHandler {
	return &RpmHandler{
		createRpmUC: createRpmUC,
		getRpmUC:    getRpmUC,
		listRpmUC:   listRpmUC,
		updateRpmUC: updateRpmUC,
		deleteRpmUC: deleteRpmUC,
		logger:      logger,
	}
}

// CreateRpm handles POST /rpms
func (h *RpmHandler) CreateRpm(c *gin.Context) {
	var req planningdto.CreateRpmRequest
	if err := bindJSON(c, h.logger, &req, "create rpm"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createRpmUC.Execute(c.Request.Context(), req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Recurring planning model created successfully")
}

// GetRpm handles GET /rpms/:id
func (h *RpmHandler) GetRpm(c *gin.Context) {
	rpmID, err := utils.ParseUintParam(c, "id", "recurring planning model")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getRpmUC.Execute(c.Request.Context(), rpmID, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// ListRpms handles GET /rpms?name=&page=&page_size=
func (h *RpmHandler) ListRpms(c *gin.Context) {
	p := utils.ParsePagination(c)
	req := planningdto.ListRpmRequest{
		Name:     c.Query("name"),
		Page:     p.Page,
		PageSize: p.PageSize,
	}

	result, err := h.listRpmUC.Execute(c.Request.Context(), req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateRpm handles PUT /rpms/:id
func (h *RpmHandler) UpdateRpm(c *gin.Context) {
	rpmID, err := utils.ParseUintParam(c, "id", "recurring planning model")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req planningdto.UpdateRpmRequest
	if err := bindJSON(c, h.logger, &req, "update rpm"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateRpmUC.Execute(c.Request.Context(), rpmID, req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result, "Recurring planning model updated successfully")
}

// DeleteRpm handles DELETE /rpms/:id
func (h *RpmHandler) DeleteRpm(c *gin.Context) {
	rpmID, err := utils.ParseUintParam(c, "id", "recurring planning model")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteRpmUC.Execute(c.Request.Context(), rpmID, middleware.GetEstablishmentID(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
