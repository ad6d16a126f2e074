package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/cli/migrate"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/cli/resolve"
	"github.com/Kapooral/services-app-server-sub002/internal/interfaces/cli/server"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "timetable",
		Short:   "Timetable - staff schedule resolution service",
		Long:    `Timetable resolves staff daily schedules from recurring planning models and daily adjustments, with a built-in HTTP server, migration tools and a resolver command.`,
		Version: version.Current,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		resolve.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
