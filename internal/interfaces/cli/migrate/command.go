// Package migrate is the schema management command: apply, roll back,
// inspect and scaffold migration scripts with the configured strategy.
package migrate

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/config"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/database"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/migration"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

const defaultScriptsRoot = "./internal/infrastructure/migration/scripts"

type options struct {
	env         string
	configPath  string
	strategy    string
	scriptsRoot string
}

// forcer is implemented by strategies that track a dirty flag.
type forcer interface {
	Force(ctx context.Context, db *gorm.DB, version int) error
}

func NewCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect schema migrations, or scaffold new migration scripts.`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.env, "env", "e", "development", "Environment (development, test, production)")
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	pf.StringVarP(&opts.strategy, "strategy", "s", "", "goose, golang_migrate or gorm_auto_migrate (default: database.migration_strategy)")
	pf.StringVar(&opts.scriptsRoot, "dir", defaultScriptsRoot, "Root directory of the migration scripts")

	var steps, version int
	var name string

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, s migration.Strategy, db *gorm.DB, log logger.Interface) error {
				log.Infow("applying migrations", "environment", opts.env, "strategy", s.Name())
				if err := s.Migrate(ctx, db); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				return nil
			})
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, s migration.Strategy, db *gorm.DB, log logger.Interface) error {
				v, err := versioned(s, "down")
				if err != nil {
					return err
				}
				log.Infow("rolling back migrations", "environment", opts.env, "steps", steps)
				if err := v.Down(ctx, db, steps); err != nil {
					return fmt.Errorf("down migration failed: %w", err)
				}
				return nil
			})
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the schema version and pending scripts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, s migration.Strategy, db *gorm.DB, _ logger.Interface) error {
				v, err := versioned(s, "status")
				if err != nil {
					return err
				}
				report, err := v.Status(ctx, db)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				printReport(cmd.OutOrStdout(), opts.env, v.Name(), report)
				return nil
			})
		},
	}

	force := &cobra.Command{
		Use:   "force",
		Short: "Mark a version as applied and clear the dirty flag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withDB(cmd.Context(), func(ctx context.Context, s migration.Strategy, db *gorm.DB, _ logger.Interface) error {
				f, ok := s.(forcer)
				if !ok {
					return fmt.Errorf("force is not supported with %s strategy", s.Name())
				}
				return f.Force(ctx, db, version)
			})
		},
	}
	force.Flags().IntVar(&version, "version", 0, "Version to record (required)")
	_ = force.MarkFlagRequired("version")

	create := &cobra.Command{
		Use:   "create",
		Short: "Scaffold a new migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			v, err := versioned(s, "create")
			if err != nil {
				return err
			}
			if err := v.Create(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created\n", name)
			return nil
		},
	}
	create.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(up, down, status, force, create)
	return cmd
}

// load reads the configuration, starts the logger and resolves the strategy.
func (o *options) load() (migration.Strategy, *config.Config, error) {
	cfg, err := config.Load(o.env, o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	root, err := filepath.Abs(o.scriptsRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve scripts directory: %w", err)
	}
	name := o.strategy
	if name == "" {
		name = cfg.Database.MigrationStrategy
	}
	s, err := migration.NewStrategy(name, root, logger.NewLogger())
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// withDB runs fn against an open database and closes it afterwards.
func (o *options) withDB(ctx context.Context, fn func(context.Context, migration.Strategy, *gorm.DB, logger.Interface) error) error {
	s, cfg, err := o.load()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	return fn(ctx, s, database.Get(), logger.NewLogger())
}

func versioned(s migration.Strategy, action string) (migration.Versioned, error) {
	v, ok := s.(migration.Versioned)
	if !ok {
		return nil, fmt.Errorf("%s is not supported with %s strategy", action, s.Name())
	}
	return v, nil
}

func printReport(w io.Writer, env, strategy string, r *migration.Report) {
	fmt.Fprintf(w, "Environment: %s\nStrategy:    %s\nVersion:     %d\nDirty:       %t\nPending:     %d\n\n",
		env, strategy, r.Version, r.Dirty, r.Pending())
	for _, s := range r.Scripts {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(w, "  %-8s %d  %s\n", state, s.Version, s.Name)
	}
}
