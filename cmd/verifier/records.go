package main

import (
	"github.com/riskibarqy/prediction-verifier/internal/observability"
	"github.com/riskibarqy/prediction-verifier/internal/usecase"
	"github.com/spf13/cobra"
)

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List persisted verification records",
		Long: `Records prints the verification records stored by the last run for
each scope, optionally narrowed to one category.

Example:
  verifier records --gameweek 1 --category score_mismatch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gameweek, _ := cmd.Flags().GetInt("gameweek")
			participantKey, _ := cmd.Flags().GetString("participant")
			category, _ := cmd.Flags().GetString("category")
			asJSON, _ := cmd.Flags().GetBool("json")

			sess, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctx, span := observability.StartCommandSpan(cmd.Context(), "verifier.records")
			defer span.End()

			records, err := sess.app.Verification.ListRecords(ctx, usecase.RecordQuery{
				LeagueID:       sess.cfg.LeagueID,
				Gameweek:       gameweek,
				ParticipantKey: participantKey,
				Category:       category,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, records)
			}
			writeRecordTable(out, records)
			return nil
		},
	}

	cmd.Flags().String("category", "", "MATCH, SCORE_MISMATCH, MESSAGE_ONLY or DATABASE_ONLY")
	cmd.Flags().Bool("json", false, "Print records as JSON")
	return cmd
}
