// Package resolve prints one member's resolved day from the command line.
package resolve

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Kapooral/services-app-server-sub002/internal/application/schedule/dto"
	"github.com/Kapooral/services-app-server-sub002/internal/application/schedule/usecases"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/config"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/database"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/recurrence"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/repository"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	env             string
	configPath      string
	membershipID    uint
	establishmentID uint
	date            string
	output          string
	noCache         bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved schedule of a member for one day",
		Long: `Resolve the daily schedule of a member from its recurring planning model,
breaks and daily adjustments, exactly as the HTTP API would return it.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().UintVarP(&membershipID, "member", "m", 0, "Membership ID (required)")
	cmd.Flags().UintVar(&establishmentID, "establishment", 0, "Restrict the lookup to this establishment")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to resolve as YYYY-MM-DD (default: today in UTC)")
	cmd.Flags().StringVarP(&output, "output", "o", FormatJSON, "Output format: json or yaml")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the schedule cache")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(output)
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("unsupported output format %q", output)
	}
	if date == "" {
		date = biztime.FormatDate(biztime.NowUTC())
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Logs go to stderr so stdout stays machine readable.
	cfg.Logger.OutputPath = "stderr"
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	var store cache.Store = cache.NopStore{}
	if !noCache {
		client, err := cache.NewRedisClient(cmd.Context(), &cfg.Redis)
		if err != nil {
			log.Warnw("redis unavailable, resolving without cache", "error", err)
			_ = client.Close()
		} else {
			defer client.Close()
			store = cache.NewRedisStore(client, log)
		}
	}

	db := database.Get()
	uc := usecases.NewGetDailyScheduleUseCase(
		repository.NewMembershipRepository(db, log),
		repository.NewAssignmentRepository(db, log),
		repository.NewRpmRepository(db, log),
		repository.NewAdjustmentSlotRepository(db, log),
		recurrence.NewRRuleExpander(),
		store,
		cache.NewScheduleKeys(cfg.Schedule.KeyPrefix),
		cfg.Schedule.DailyTTL(),
		log,
	)

	result, err := uc.Execute(cmd.Context(), dto.GetDailyScheduleRequest{
		MembershipID:    membershipID,
		Date:            date,
		EstablishmentID: establishmentID,
	})
	if err != nil {
		return err
	}

	return Render(cmd.OutOrStdout(), result, format)
}

// Render writes result to w as json or yaml.
func Render(w io.Writer, result *dto.DailyScheduleResponse, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
