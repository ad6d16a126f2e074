package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/config"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/middleware"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/routes"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// Router owns the gin engine and the container behind it.
type Router struct {
	*Container
}

func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	return &Router{Container: NewContainer(db, redisClient, cfg, log)}
}

// SetupRoutes installs the global middleware chain, the probes and the
// scheduling API. Call it once before serving.
func (r *Router) SetupRoutes() {
	r.engine.Use(
		middleware.RequestID(),
		middleware.Logger(r.log),
		middleware.Recovery(r.log),
		middleware.CORS(r.cfg.Server.AllowedOrigins),
	)

	r.engine.GET("/health", r.hdlrs.healthHandler.HealthCheck)
	r.engine.GET("/version", r.hdlrs.healthHandler.Version)

	routes.SetupSchedulingRoutes(r.engine, &routes.SchedulingRouteConfig{
		RpmHandler:        r.hdlrs.rpmHandler,
		AssignmentHandler: r.hdlrs.assignmentHandler,
		DasHandler:        r.hdlrs.dasHandler,
		ScheduleHandler:   r.hdlrs.scheduleHandler,
		RateLimiter:       r.rateLimiter,
		Logger:            r.log,
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
