// Package server runs the timetable HTTP API until SIGINT or SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/config"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/database"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/migration"
	httpRouter "github.com/Kapooral/services-app-server-sub002/internal/interfaces/http"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/goroutine"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/version"
)

const scriptsRoot = "./internal/infrastructure/migration/scripts"

type options struct {
	env                string
	configPath         string
	autoMigrate        bool
	skipMigrationCheck bool
}

func NewCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Serve the scheduling API: planning models, assignments, adjustment slots and resolved daily schedules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e := os.Getenv("ENV"); e != "" {
				opts.env = e
			}
			return opts.run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.env, "env", "e", "development", "Environment (development, test, production)")
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	f.BoolVar(&opts.autoMigrate, "auto-migrate", false, "Apply migrations on startup (not recommended for production)")
	f.BoolVar(&opts.skipMigrationCheck, "skip-migration-check", false, "Skip the schema version check on startup")
	return cmd
}

func (o *options) run(ctx context.Context) error {
	cfg, err := config.Load(o.env, o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting server", "environment", o.env, "version", version.Current, "auto_migrate", o.autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(string, string, string, int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := o.checkSchema(ctx, cfg, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	// The client comes back even when the ping fails; reads then miss and
	// every schedule is resolved from the database.
	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warnw("redis unavailable, serving without cache", "error", err)
	} else {
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
	}
	defer redisClient.Close()

	router := httpRouter.NewRouter(database.Get(), redisClient, cfg, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return serve(ctx, srv, cfg.Server.ShutdownTimeout(), log)
}

// serve listens until ctx ends or a termination signal arrives, then drains
// in-flight requests for at most grace.
func serve(ctx context.Context, srv *http.Server, grace time.Duration, log logger.Interface) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := goroutine.SafeGo(log, "http-listener", func() error {
		log.Infow("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Infow("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}
	log.Infow("server exited gracefully")
	return nil
}

// checkSchema applies migrations when --auto-migrate is set and otherwise
// only warns about a schema behind its scripts.
func (o *options) checkSchema(ctx context.Context, cfg *config.Config, log logger.Interface) error {
	if o.skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	root, err := filepath.Abs(scriptsRoot)
	if err != nil {
		log.Warnw("failed to resolve migration scripts path", "error", err)
		return nil
	}
	strategy, err := migration.NewStrategy(cfg.Database.MigrationStrategy, root, log)
	if err != nil {
		return err
	}

	if o.autoMigrate {
		if o.env == "production" {
			log.Warnw("auto-migration is enabled in production")
		}
		log.Infow("running auto-migration", "strategy", strategy.Name(), "description", migration.Describe(strategy.Name()))
		if err := strategy.Migrate(ctx, database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	v, ok := strategy.(migration.Versioned)
	if !ok {
		return nil
	}
	report, err := v.Status(ctx, database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	if pending := report.Pending(); pending > 0 || report.Dirty {
		log.Warnw("database schema is behind the migration scripts",
			"version", report.Version, "pending", pending, "dirty", report.Dirty)
		return nil
	}
	log.Infow("database schema up to date", "version", report.Version)
	return nil
}
