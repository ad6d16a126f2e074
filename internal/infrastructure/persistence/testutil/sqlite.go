// Package testutil opens throwaway SQLite databases carrying the service
// schema and seeds the directory rows other tables depend on.
package testutil

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/database"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/migration"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
)

var dbSeq atomic.Int64

// OpenDB returns an in-memory database private to the test. A single
// connection is kept so transactions and plain reads see the same data.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: database.NewGormLogger(slog.New(slog.DiscardHandler)),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(migration.AutoMigrateModels()...))
	return db
}

// SeedEstablishment inserts an establishment running on timezone.
func SeedEstablishment(t *testing.T, db *gorm.DB, timezone string) uint {
	t.Helper()
	m := &models.EstablishmentModel{Name: "Establishment", Timezone: timezone}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

// SeedMembership inserts a membership of establishmentID.
func SeedMembership(t *testing.T, db *gorm.DB, establishmentID uint) uint {
	t.Helper()
	m := &models.MembershipModel{EstablishmentID: establishmentID}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}
