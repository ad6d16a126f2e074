package http

import (
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler     *handlers.HealthHandler
	rpmHandler        *handlers.RpmHandler
	assignmentHandler *handlers.AssignmentHandler
	dasHandler        *handlers.DasHandler
	scheduleHandler   *handlers.ScheduleHandler
}
