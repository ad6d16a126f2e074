// Package testutil wires real repositories on SQLite and a Redis cache on
// miniredis for application-layer tests.
package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/membership"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	persistencetest "github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/testutil"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/recurrence"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/repository"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/db"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// Env bundles the collaborators of every use case.
type Env struct {
	DB    *gorm.DB
	TxMgr db.Transactor

	RpmRepo        planning.Repository
	AssignmentRepo assignment.Repository
	SlotRepo       adjustment.Repository
	MembershipRepo membership.Repository
	Expander       *recurrence.RRuleExpander

	Redis       *miniredis.Miniredis
	Store       cache.Store
	Keys        cache.ScheduleKeys
	Invalidator *cache.ScheduleInvalidator

	Logger logger.Interface
}

// NewEnv opens a private database and cache for the test.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	gdb := persistencetest.OpenDB(t)
	log := logger.NewNopLogger()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := cache.NewRedisStore(client, log)
	keys := cache.NewScheduleKeys("")

	return &Env{
		DB:             gdb,
		TxMgr:          db.NewTransactionManager(gdb),
		RpmRepo:        repository.NewRpmRepository(gdb, log),
		AssignmentRepo: repository.NewAssignmentRepository(gdb, log),
		SlotRepo:       repository.NewAdjustmentSlotRepository(gdb, log),
		MembershipRepo: repository.NewMembershipRepository(gdb, log),
		Expander:       recurrence.NewRRuleExpander(),
		Redis:          mr,
		Store:          store,
		Keys:           keys,
		Invalidator:    cache.NewScheduleInvalidator(store, keys, log),
		Logger:         log,
	}
}

// Establishment seeds an establishment on timezone.
func (e *Env) Establishment(t *testing.T, timezone string) uint {
	t.Helper()
	return persistencetest.SeedEstablishment(t, e.DB, timezone)
}

// Member seeds a membership of establishmentID.
func (e *Env) Member(t *testing.T, establishmentID uint) uint {
	t.Helper()
	return persistencetest.SeedMembership(t, e.DB, establishmentID)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
