package main

import (
	"github.com/riskibarqy/prediction-verifier/internal/config"
	"github.com/riskibarqy/prediction-verifier/internal/observability"
	"github.com/riskibarqy/prediction-verifier/internal/usecase"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one verification pass",
		Long: `Run parses every source document in scope, reconciles the surviving
predictions with the stored ones and replaces the persisted records.

Example:
  verifier run --league eng-premier-league-2025 --gameweek 1
  verifier run --gameweek 2 --participant p-andi --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gameweek, _ := cmd.Flags().GetInt("gameweek")
			participantKey, _ := cmd.Flags().GetString("participant")
			sourcesDir, _ := cmd.Flags().GetString("sources")
			backupDir, _ := cmd.Flags().GetString("backup-dir")
			asJSON, _ := cmd.Flags().GetBool("json")
			showDropped, _ := cmd.Flags().GetBool("show-dropped")

			sess, err := openSession(cmd, func(cfg *config.Config) {
				if sourcesDir != "" {
					cfg.SourcesDir = sourcesDir
				}
				if backupDir != "" {
					cfg.BackupDir = backupDir
				}
			})
			if err != nil {
				return err
			}
			defer sess.Close()

			ctx, span := observability.StartCommandSpan(cmd.Context(), "verifier.run")
			defer span.End()

			result, err := sess.app.Verification.Run(ctx, usecase.RunInput{
				LeagueID:       sess.cfg.LeagueID,
				Gameweek:       gameweek,
				ParticipantKey: participantKey,
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			// A failed replace still carries the computed result.
			if result.Summary != nil {
				out := cmd.OutOrStdout()
				if asJSON {
					if writeErr := writeJSON(out, result); writeErr != nil {
						return writeErr
					}
				} else {
					writeRunReport(out, result, showDropped)
				}
			}
			return err
		},
	}

	cmd.Flags().String("sources", "", "Source documents directory (defaults to SOURCES_DIR)")
	cmd.Flags().String("backup-dir", "", "Backup directory (defaults to BACKUP_DIR)")
	cmd.Flags().Bool("json", false, "Print the run summary and records as JSON")
	cmd.Flags().Bool("show-dropped", false, "List every dropped entry in the text report")
	return cmd
}
