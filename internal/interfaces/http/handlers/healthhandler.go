package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/version"
)

const healthProbeTimeout = 2 * time.Second

// Pinger is a dependency the health endpoint probes.
type Pinger func(ctx context.Context) error

// HealthHandler reports liveness of the service and its backing stores.
type HealthHandler struct {
	probes map[string]Pinger
	logger logger.Interface
}

func NewHealthHandler(probes map[string]Pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{probes: probes, logger: logger}
}

// HealthCheck handles GET /health. A failing probe yields 503.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.probes))
	for name, ping := range h.probes {
		if err := ping(ctx); err != nil {
			h.logger.Warnw("health probe failed", "probe", name, "error", err)
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":  state,
		"service": "timetable",
		"checks":  checks,
	})
}

// Version handles GET /version to return the current application version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
