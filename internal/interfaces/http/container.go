package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	adjustmentUsecases "github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/usecases"
	assignmentUsecases "github.com/Kapooral/services-app-server-sub002/internal/application/assignment/usecases"
	planningUsecases "github.com/Kapooral/services-app-server-sub002/internal/application/planning/usecases"
	scheduleUsecases "github.com/Kapooral/services-app-server-sub002/internal/application/schedule/usecases"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/config"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/ratelimit"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/recurrence"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/handlers"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/http/middleware"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It is responsible for wiring everything together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	rateLimiter *middleware.RateLimiter

	// Shared infrastructure
	txMgr       *db.TransactionManager
	store       cache.Store
	keys        cache.ScheduleKeys
	invalidator *cache.ScheduleInvalidator
	expander    *recurrence.RRuleExpander
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	c.initInfrastructure()
	c.initUseCases()
	c.initHandlers()

	return c
}

func (c *Container) initInfrastructure() {
	c.repos = newRepositories(c.db, c.log)
	c.txMgr = db.NewTransactionManager(c.db)
	c.store = cache.NewRedisStore(c.redis, c.log)
	c.keys = cache.NewScheduleKeys(c.cfg.Schedule.KeyPrefix)
	c.invalidator = cache.NewScheduleInvalidator(c.store, c.keys, c.log)
	c.expander = recurrence.NewRRuleExpander()

	if c.cfg.Server.RateLimitPerMinute > 0 || c.cfg.Server.RateLimitPerHour > 0 {
		quota := ratelimit.Quota{
			RequestsPerMinute: c.cfg.Server.RateLimitPerMinute,
			RequestsPerHour:   c.cfg.Server.RateLimitPerHour,
		}
		c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisLimiter(c.redis), quota, c.log)
	}
}

func (c *Container) initUseCases() {
	r := c.repos
	c.ucs = &allUseCases{
		createRpmUC: planningUsecases.NewCreateRpmUseCase(r.rpmRepo, c.expander, c.txMgr, c.invalidator, c.log),
		getRpmUC:    planningUsecases.NewGetRpmUseCase(r.rpmRepo, c.log),
		listRpmUC:   planningUsecases.NewListRpmUseCase(r.rpmRepo, c.store, c.keys, c.cfg.Schedule.RpmListTTL(), c.log),
		updateRpmUC: planningUsecases.NewUpdateRpmUseCase(r.rpmRepo, r.assignmentRepo, c.expander, c.txMgr, c.invalidator, c.log),
		deleteRpmUC: planningUsecases.NewDeleteRpmUseCase(r.rpmRepo, r.assignmentRepo, c.txMgr, c.invalidator, c.log),

		createAssignmentUC: assignmentUsecases.NewCreateAssignmentUseCase(r.assignmentRepo, r.membershipRepo, r.rpmRepo, c.txMgr, c.invalidator, c.log),
		listAssignmentsUC:  assignmentUsecases.NewListAssignmentsUseCase(r.assignmentRepo, c.log),
		updateAssignmentUC: assignmentUsecases.NewUpdateAssignmentUseCase(r.assignmentRepo, r.membershipRepo, r.rpmRepo, c.txMgr, c.invalidator, c.log),
		deleteAssignmentUC: assignmentUsecases.NewDeleteAssignmentUseCase(r.assignmentRepo, c.txMgr, c.invalidator, c.log),
		bulkAssignUC:       assignmentUsecases.NewBulkAssignUseCase(r.assignmentRepo, r.membershipRepo, r.rpmRepo, c.txMgr, c.invalidator, c.log),
		bulkUnassignUC:     assignmentUsecases.NewBulkUnassignUseCase(r.assignmentRepo, r.membershipRepo, r.rpmRepo, c.txMgr, c.invalidator, c.log),

		createDasUC:     adjustmentUsecases.NewCreateDasUseCase(r.slotRepo, r.membershipRepo, c.txMgr, c.invalidator, c.log),
		getDasUC:        adjustmentUsecases.NewGetDasUseCase(r.slotRepo, c.log),
		listDasUC:       adjustmentUsecases.NewListDasUseCase(r.slotRepo, c.log),
		updateDasUC:     adjustmentUsecases.NewUpdateDasUseCase(r.slotRepo, c.txMgr, c.invalidator, c.log),
		deleteDasUC:     adjustmentUsecases.NewDeleteDasUseCase(r.slotRepo, c.txMgr, c.invalidator, c.log),
		bulkUpdateDasUC: adjustmentUsecases.NewBulkUpdateDasUseCase(r.slotRepo, c.txMgr, c.invalidator, c.log),
		bulkDeleteDasUC: adjustmentUsecases.NewBulkDeleteDasUseCase(r.slotRepo, c.txMgr, c.invalidator, c.log),

		getDailyScheduleUC: scheduleUsecases.NewGetDailyScheduleUseCase(
			r.membershipRepo, r.assignmentRepo, r.rpmRepo, r.slotRepo,
			c.expander, c.store, c.keys, c.cfg.Schedule.DailyTTL(), c.log,
		),
	}
}

func (c *Container) initHandlers() {
	u := c.ucs
	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": c.pingDatabase,
			"redis":    func(ctx context.Context) error { return c.redis.Ping(ctx).Err() },
		}, c.log),
		rpmHandler: handlers.NewRpmHandler(u.createRpmUC, u.getRpmUC, u.listRpmUC, u.updateRpmUC, u.deleteRpmUC, c.log),
		assignmentHandler: handlers.NewAssignmentHandler(
			u.createAssignmentUC, u.listAssignmentsUC, u.updateAssignmentUC, u.deleteAssignmentUC,
			u.bulkAssignUC, u.bulkUnassignUC, c.log,
		),
		dasHandler: handlers.NewDasHandler(
			u.createDasUC, u.getDasUC, u.listDasUC, u.updateDasUC, u.deleteDasUC,
			u.bulkUpdateDasUC, u.bulkDeleteDasUC, c.log,
		),
		scheduleHandler: handlers.NewScheduleHandler(u.getDailyScheduleUC, c.log),
	}
}

func (c *Container) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
