package migration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// GooseStrategy applies the annotated SQL scripts of one directory.
type GooseStrategy struct {
	dir     string
	dialect goose.Dialect
	logger  logger.Interface
}

func NewGooseStrategy(dir string, dialect goose.Dialect, log logger.Interface) *GooseStrategy {
	return &GooseStrategy{
		dir:     dir,
		dialect: dialect,
		logger:  log.With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) Name() string { return StrategyGoose }

func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	p, err := goose.NewProvider(s.dialect, sqlDB, os.DirFS(s.dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open goose scripts in %s: %w", s.dir, err)
	}
	return p, nil
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	results, err := p.Up(ctx)
	for _, r := range results {
		s.logger.Infow("migration applied",
			"version", r.Source.Version,
			"file", filepath.Base(r.Source.Path),
			"duration", r.Duration)
	}
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	s.logger.Infow("schema up to date", "version", version, "applied", len(results))
	return nil
}

// Down rolls back the last steps scripts, one at a time.
func (s *GooseStrategy) Down(ctx context.Context, db *gorm.DB, steps int) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		r, err := p.Down(ctx)
		if err != nil {
			s.logger.Errorw("down migration failed", "step", i+1, "error", err)
			return fmt.Errorf("failed to roll back: %w", err)
		}
		s.logger.Infow("migration rolled back", "version", r.Source.Version)
	}
	return nil
}

func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) (*Report, error) {
	p, err := s.provider(db)
	if err != nil {
		return nil, err
	}

	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	version, err := p.GetDBVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get schema version: %w", err)
	}

	report := &Report{Version: version}
	for _, st := range statuses {
		report.Scripts = append(report.Scripts, Script{
			Version: st.Source.Version,
			Name:    filepath.Base(st.Source.Path),
			Applied: st.State == goose.StateApplied,
		})
	}
	return report, nil
}

// Create writes an empty timestamped goose script.
func (s *GooseStrategy) Create(name string) error {
	if err := goose.Create(nil, s.dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	s.logger.Infow("migration created", "name", name, "dir", s.dir)
	return nil
}
