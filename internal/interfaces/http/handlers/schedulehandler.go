package handlers

import (
	"github.com/gin-gonic/gin"

	scheduledto "github.com/Kapooral/services-app-server-sub002/internal/application/schedule/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/middleware"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// ScheduleHandler serves resolved daily schedules.
type ScheduleHandler struct {
	getDailyScheduleUC getDailyScheduleUseCase
	logger             logger.Interface
}

func NewScheduleHandler(getDailyScheduleUC getDailyScheduleUseCase, logger logger.Interface) *ScheduleHandler {
	return &ScheduleHandler{
		getDailyScheduleUC: getDailyScheduleUC,
		logger:             logger,
	}
}

// GetDailySchedule handles GET /memberships/:id/schedule?date=YYYY-MM-DD
func (h *ScheduleHandler) GetDailySchedule(c *gin.Context) {
	membershipID, err := utils.ParseUintParam(c, "id", "membership")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getDailyScheduleUC.Execute(c.Request.Context(), scheduledto.GetDailyScheduleRequest{
		MembershipID:    membershipID,
		Date:            c.Query("date"),
		EstablishmentID: middleware.GetEstablishmentID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
