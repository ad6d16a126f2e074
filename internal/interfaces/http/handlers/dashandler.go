package handlers

import (
	"github.com/gin-gonic/gin"

	adjustmentdto "github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/middleware"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// DasHandler serves daily adjustment slots.
type DasHandler struct {
	createUC     createDasUseCase
	getUC        getDasUseCase
	listUC       listDasUseCase
	updateUC     updateDasUseCase
	deleteUC     deleteDasUseCase
	bulkUpdateUC bulkUpdateDasUseCase
	bulkDeleteUC bulkDeleteDasUseCase
	logger       logger.Interface
}

func NewDasHandler(
	createUC createDasUseCase,
	getUC getDasUseCase,
	listUC listDasUseCase,
	updateUC updateDasUseCase,
	deleteUC deleteDasUseCase,
	bulkUpdateUC bulkUpdateDasUseCase,
	bulkDeleteUC bulkDeleteDasUseCase,
	logger logger.Interface,
) *DasHandler {
	return &DasHandler{
		createUC:     createUC,
		getUC:        getUC,
		listUC:       listUC,
		updateUC:     updateUC,
		deleteUC:     deleteUC,
		bulkUpdateUC: bulkUpdateUC,
		bulkDeleteUC: bulkDeleteUC,
		logger:       logger,
	}
}

// CreateDas handles POST /das
func (h *DasHandler) CreateDas(c *gin.Context) {
	var req adjustmentdto.CreateDasRequest
	if err := bindJSON(c, h.logger, &req, "create das"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Adjustment slot created successfully")
}

// GetDas handles GET /das/:id
func (h *DasHandler) GetDas(c *gin.Context) {
	slotID, err := utils.ParseUintParam(c, "id", "adjustment slot")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), slotID, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// ListDas handles GET /das?membership_id=&slot_date=&date_from=&date_to=&page=&page_size=
func (h *DasHandler) ListDas(c *gin.Context) {
	membershipID, err := utils.ParseOptionalUintQuery(c, "membership_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), adjustmentdto.ListDasRequest{
		MembershipID: membershipID,
		SlotDate:     c.Query("slot_date"),
		DateFrom:     c.Query("date_from"),
		DateTo:       c.Query("date_to"),
		Page:         p.Page,
		PageSize:     p.PageSize,
	}, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateDas handles PATCH /das/:id
func (h *DasHandler) UpdateDas(c *gin.Context) {
	slotID, err := utils.ParseUintParam(c, "id", "adjustment slot")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req adjustmentdto.UpdateDasRequest
	if err := bindJSON(c, h.logger, &req, "update das"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), slotID, req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result, "Adjustment slot updated successfully")
}

// DeleteDas handles DELETE /das/:id
func (h *DasHandler) DeleteDas(c *gin.Context) {
	slotID, err := utils.ParseUintParam(c, "id", "adjustment slot")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), slotID, middleware.GetEstablishmentID(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// BulkUpdateDas handles POST /das/bulk-update
func (h *DasHandler) BulkUpdateDas(c *gin.Context) {
	var req adjustmentdto.BulkUpdateDasRequest
	if err := bindJSON(c, h.logger, &req, "bulk update das"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bulkUpdateUC.Execute(c.Request.Context(), req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// BulkDeleteDas handles POST /das/bulk-delete
func (h *DasHandler) BulkDeleteDas(c *gin.Context) {
	var req adjustmentdto.BulkDeleteDasRequest
	if err := bindJSON(c, h.logger, &req, "bulk delete das"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.bulkDeleteUC.Execute(c.Request.Context(), req, middleware.GetEstablishmentID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
