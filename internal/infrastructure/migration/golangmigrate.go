package migration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

var upScript = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// GolangMigrateStrategy applies the up/down script pairs of one directory
// against MySQL.
type GolangMigrateStrategy struct {
	dir    string
	logger logger.Interface
}

func NewGolangMigrateStrategy(dir string, log logger.Interface) *GolangMigrateStrategy {
	return &GolangMigrateStrategy{
		dir:    dir,
		logger: log.With("component", "migration.golang-migrate"),
	}
}

func (s *GolangMigrateStrategy) Name() string { return StrategyGolangMigrate }

// run opens a migrate instance for db and hands it to fn. Cancelling ctx
// asks migrate to stop after the script in progress.
func (s *GolangMigrateStrategy) run(ctx context.Context, db *gorm.DB, fn func(m *migrate.Migrate) error) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	driver, err := mysql.WithInstance(sqlDB, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create MySQL driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+s.dir, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		select {
		case m.GracefulStop <- true:
		default:
		}
	})
	defer stop()

	return fn(m)
}

func currentVersion(m *migrate.Migrate) (int64, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get schema version: %w", err)
	}
	return int64(v), dirty, nil
}

func (s *GolangMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	return s.run(ctx, db, func(m *migrate.Migrate) error {
		from, dirty, err := currentVersion(m)
		if err != nil {
			return err
		}
		if dirty {
			return fmt.Errorf("database is in dirty state at version %d", from)
		}

		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		to, _, err := currentVersion(m)
		if err != nil {
			return err
		}
		s.logger.Infow("schema up to date", "from_version", from, "to_version", to)
		return nil
	})
}

func (s *GolangMigrateStrategy) Down(ctx context.Context, db *gorm.DB, steps int) error {
	return s.run(ctx, db, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to roll back: %w", err)
		}
		s.logger.Infow("migrations rolled back", "steps", steps)
		return nil
	})
}

func (s *GolangMigrateStrategy) Status(ctx context.Context, db *gorm.DB) (*Report, error) {
	scripts, err := scanUpScripts(s.dir)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	err = s.run(ctx, db, func(m *migrate.Migrate) error {
		report.Version, report.Dirty, err = currentVersion(m)
		return err
	})
	if err != nil {
		return nil, err
	}

	for i := range scripts {
		scripts[i].Applied = scripts[i].Version <= report.Version
	}
	report.Scripts = scripts
	return report, nil
}

// Force records version as applied and clears the dirty flag.
func (s *GolangMigrateStrategy) Force(ctx context.Context, db *gorm.DB, version int) error {
	return s.run(ctx, db, func(m *migrate.Migrate) error {
		if err := m.Force(version); err != nil {
			return fmt.Errorf("failed to force version %d: %w", version, err)
		}
		s.logger.Warnw("migration version forced", "version", version)
		return nil
	})
}

func (s *GolangMigrateStrategy) Create(name string) error {
	_, err := NewGenerator(s.dir, s.logger).CreateMigration(name)
	return err
}

// scanUpScripts lists the up scripts of dir ordered by version.
func scanUpScripts(dir string) ([]Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scripts in %s: %w", dir, err)
	}

	var scripts []Script
	for _, e := range entries {
		match := upScript.FindStringSubmatch(e.Name())
		if e.IsDir() || match == nil {
			continue
		}
		v, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			continue
		}
		scripts = append(scripts, Script{Version: v, Name: match[2]})
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Version < scripts[j].Version })
	return scripts, nil
}
