// Package migration applies schema changes with goose, golang-migrate or
// GORM AutoMigrate.
package migration

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// Strategy names accepted by database.migration_strategy.
const (
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang_migrate"
	StrategyAutoMigrate   = "gorm_auto_migrate"
)

// Strategy brings the schema of db up to date.
type Strategy interface {
	Name() string
	Migrate(ctx context.Context, db *gorm.DB) error
}

// Versioned is a Strategy driven by numbered scripts, which can also roll
// back, report and scaffold them.
type Versioned interface {
	Strategy
	Down(ctx context.Context, db *gorm.DB, steps int) error
	Status(ctx context.Context, db *gorm.DB) (*Report, error)
	Create(name string) error
}

// Script is one numbered migration.
type Script struct {
	Version int64
	Name    string
	Applied bool
}

// Report is the schema state seen by a Versioned strategy.
type Report struct {
	Version int64
	Dirty   bool
	Scripts []Script
}

// Pending counts the scripts not applied yet.
func (r *Report) Pending() int {
	n := 0
	for _, s := range r.Scripts {
		if !s.Applied {
			n++
		}
	}
	return n
}

// NewStrategy builds the strategy named by name. Script based strategies read
// from their own sub-directory of scriptsRoot.
func NewStrategy(name, scriptsRoot string, log logger.Interface) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", StrategyGoose:
		return NewGooseStrategy(filepath.Join(scriptsRoot, "goose"), goose.DialectMySQL, log), nil
	case StrategyGolangMigrate:
		return NewGolangMigrateStrategy(filepath.Join(scriptsRoot, "migrate"), log), nil
	case StrategyAutoMigrate:
		return NewGormAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", name)
	}
}

// Describe returns a one-line description of a strategy name.
func Describe(name string) string {
	switch name {
	case StrategyAutoMigrate:
		return "GORM AutoMigrate from the persistence models"
	case StrategyGolangMigrate:
		return "golang-migrate up/down script pairs"
	case StrategyGoose:
		return "goose annotated SQL scripts"
	default:
		return "unknown migration strategy"
	}
}
