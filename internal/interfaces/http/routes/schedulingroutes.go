package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/handlers"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/middleware"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// SchedulingRouteConfig holds dependencies for planning, adjustment and schedule routes.
type SchedulingRouteConfig struct {
	RpmHandler        *handlers.RpmHandler
	AssignmentHandler *handlers.AssignmentHandler
	DasHandler        *handlers.DasHandler
	ScheduleHandler   *handlers.ScheduleHandler
	RateLimiter       *middleware.RateLimiter // may be nil
	Logger            logger.Interface
}

// SetupSchedulingRoutes configures the establishment-scoped API under /api.
func SetupSchedulingRoutes(engine *gin.Engine, cfg *SchedulingRouteConfig) {
	api := engine.Group("/api")
	api.Use(middleware.RequireEstablishment(cfg.Logger))
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Limit())
	}

	rpms := api.Group("/rpms")
	{
		rpms.POST("", cfg.RpmHandler.CreateRpm)
		rpms.GET("", cfg.RpmHandler.ListRpms)
		rpms.GET("/:id", cfg.RpmHandler.GetRpm)
		rpms.PUT("/:id", cfg.RpmHandler.UpdateRpm)
		rpms.DELETE("/:id", cfg.RpmHandler.DeleteRpm)
	}

	assignments := api.Group("/assignments")
	{
		assignments.POST("", cfg.AssignmentHandler.CreateAssignment)
		assignments.GET("", cfg.AssignmentHandler.ListAssignments)
		assignments.PUT("/:id", cfg.AssignmentHandler.UpdateAssignment)
		assignments.DELETE("/:id", cfg.AssignmentHandler.DeleteAssignment)
		assignments.POST("/bulk-assign", cfg.AssignmentHandler.BulkAssign)
		assignments.POST("/bulk-unassign", cfg.AssignmentHandler.BulkUnassign)
	}

	das := api.Group("/das")
	{
		das.POST("", cfg.DasHandler.CreateDas)
		das.GET("", cfg.DasHandler.ListDas)
		das.GET("/:id", cfg.DasHandler.GetDas)
		das.PATCH("/:id", cfg.DasHandler.UpdateDas)
		das.DELETE("/:id", cfg.DasHandler.DeleteDas)
		das.POST("/bulk-update", cfg.DasHandler.BulkUpdateDas)
		das.POST("/bulk-delete", cfg.DasHandler.BulkDeleteDas)
	}

	api.GET("/memberships/:id/schedule", cfg.ScheduleHandler.GetDailySchedule)
}
