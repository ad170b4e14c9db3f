package commands

import (
	"context"
	"errors"
	"fmt"
	"linkedin-voyager/lib/configutil"
	"linkedin-voyager/lib/platforms/linkedin"
	"linkedin-voyager/lib/telemetry"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	outputFmt  *string
	verbose    *bool
	dumpDir    *string
)

var (
	session *linkedin.Session
	tel     telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "linkedin-cli",
	Short: "linkedin-cli looks up profiles, organizations and messages through a logged in LinkedIn session.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)
		if *outputFmt != "table" && *outputFmt != "json" && *outputFmt != "yaml" {
			return fmt.Errorf("unknown output format %q", *outputFmt)
		}

		var err error
		tel, err = telemetry.SetupFromEnv(cmd.Context(), "linkedin-cli")
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("telemetry disabled", "err", err)
		}

		cfg, err := readConfig(*configPath)
		if err != nil {
			return err
		}
		session, err = linkedin.Open(cfg, *dumpDir)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if session != nil {
			if err := session.Close(); err != nil {
				slog.Warn("failed to close cache", "err", err)
			}
		}
		if err := tel.Shutdown(context.Background()); err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
	SilenceUsage: true,
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "linkedin.json5", "The session config, linkedin.local.json5 next to it overrides it.")
	outputFmt = rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format, one of table, json or yaml.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level.")
	dumpDir = rootCmd.PersistentFlags().String("dump-dir", "", "Write every http exchange to this directory, needs --verbose.")
}

// readConfig falls back to the LI_AT and JSESSIONID environment variables
// for cookies the config file leaves empty.
func readConfig(path string) (linkedin.Config, error) {
	cfg, err := configutil.ReadConfig[linkedin.Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return linkedin.Config{}, fmt.Errorf("read config: %w", err)
	}
	if cfg.LiAt == "" {
		cfg.LiAt = os.Getenv("LI_AT")
	}
	if cfg.JSessionID == "" {
		cfg.JSessionID = os.Getenv("JSESSIONID")
	}
	if cfg.LiAt == "" || cfg.JSessionID == "" {
		return linkedin.Config{}, fmt.Errorf("no session: set li_at and jsessionid in %s or LI_AT and JSESSIONID in the environment", path)
	}
	return cfg, nil
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
