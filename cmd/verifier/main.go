package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/prediction-verifier/internal/app"
	"github.com/riskibarqy/prediction-verifier/internal/config"
	"github.com/riskibarqy/prediction-verifier/internal/observability"
	"github.com/riskibarqy/prediction-verifier/internal/platform/logging"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "verifier",
		Short: "Reconcile chat predictions against the prediction store",
		Long: `verifier reads prediction messages from local source documents,
resolves every participant and fixture, and compares the surviving
predictions with the stored ones.

Each run replaces the persisted verification records for its scope and
writes a CSV backup plus a JSON summary to the backup directory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("league", "", "League id (defaults to LEAGUE_ID)")
	rootCmd.PersistentFlags().Int("gameweek", 0, "Restrict to one gameweek (0 = all)")
	rootCmd.PersistentFlags().String("participant", "", "Restrict to one participant key")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(recordsCmd())
	return rootCmd
}

// session is the loaded configuration plus the wired app for one command.
type session struct {
	cfg      config.Config
	logger   *logging.Logger
	app      *app.App
	shutdown func(context.Context) error
}

func openSession(cmd *cobra.Command, override func(*config.Config)) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if league, _ := cmd.Flags().GetString("league"); league != "" {
		cfg.LeagueID = league
	}
	if override != nil {
		override(&cfg)
	}
	if cfg.LeagueID == "" {
		return nil, fmt.Errorf("league id is required: pass --league or set LEAGUE_ID")
	}

	logger := logging.NewJSONWriter(cfg.LogLevel, os.Stderr)
	logging.SetDefault(logger)

	shutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}

	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, fmt.Errorf("build app: %w", err)
	}

	return &session{cfg: cfg, logger: logger, app: a, shutdown: shutdown}, nil
}

func (s *session) Close() {
	if err := s.app.Close(); err != nil {
		s.logger.Warn("close app failed", "error", err)
	}
	if err := s.shutdown(context.Background()); err != nil {
		s.logger.Warn("shutdown uptrace failed", "error", err)
	}
	_ = s.logger.Sync()
}
