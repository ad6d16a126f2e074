// Package database owns the process-wide MySQL connection pool.
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/config"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

const pingTimeout = 5 * time.Second

var (
	mu sync.RWMutex
	db *gorm.DB
)

// Init opens the MySQL pool described by cfg and makes it available through
// Get. Instants are written in UTC; calendar days and times of day are
// stored as strings and carry no zone.
func Init(cfg *config.DatabaseConfig) error {
	conn, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.GetDSN(),
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:      NewGormLogger(logger.Get().With("component", "gorm")),
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	mu.Lock()
	db = conn
	mu.Unlock()

	logger.Get().Info("database connection established", "database", cfg.Database, "host", cfg.Host)
	return nil
}

// Get returns the pool opened by Init, or nil.
func Get() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}

// Close releases the pool opened by Init.
func Close() error {
	mu.Lock()
	conn := db
	db = nil
	mu.Unlock()

	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
