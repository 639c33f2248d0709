package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
	"github.com/riskibarqy/prediction-verifier/internal/usecase"
)

func writeJSON(w io.Writer, v any) error {
	body, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json output: %w", err)
	}
	body = append(body, '\n')
	_, err = w.Write(body)
	return err
}

func writeRunReport(w io.Writer, result usecase.RunResult, showDropped bool) {
	s := result.Summary
	fmt.Fprintf(w, "run %s league=%s gameweek=%s participant=%s\n",
		s.RunID, s.Scope.LeagueID, orAll(s.Scope.Gameweek), orAllString(s.Scope.ParticipantKey))
	fmt.Fprintf(w, "documents=%d parsed=%d resolved=%d out_of_scope=%d survivors=%d stored=%d\n",
		s.Documents, s.Parsed, s.Resolved, s.OutOfScope, s.Survivors, s.Stored)

	fmt.Fprintln(w, "\ncategories")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range verification.Categories {
		fmt.Fprintf(tw, "  %s\t%d\n", c, s.Categories[c])
	}
	_ = tw.Flush()

	if total := s.TotalDropped(); total > 0 {
		fmt.Fprintf(w, "\ndropped %d\n", total)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, reason := range verification.DropReasons {
			if n := s.DropCounts[reason]; n > 0 {
				fmt.Fprintf(tw, "  %s\t%d\n", reason, n)
			}
		}
		_ = tw.Flush()
		if showDropped {
			tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, d := range s.Dropped {
				fmt.Fprintf(tw, "  %s\t%s:%d\t%s\t%s\n", d.Reason, d.SourceID, d.Line, d.RawParticipant, d.Text)
			}
			_ = tw.Flush()
		}
	}

	switch {
	case s.BackupPath != "":
		fmt.Fprintf(w, "\nbackup %s\n", s.BackupPath)
	case s.BackupError != "":
		fmt.Fprintf(w, "\nbackup failed: %s\n", s.BackupError)
	}

	var discrepancies []verification.Record
	for _, rec := range result.Records {
		if rec.Category != verification.CategoryMatch {
			discrepancies = append(discrepancies, rec)
		}
	}
	if len(discrepancies) > 0 {
		fmt.Fprintln(w, "\ndiscrepancies")
		writeRecordTable(w, discrepancies)
	}
}

func writeRecordTable(w io.Writer, records []verification.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tPARTICIPANT\tGW\tFIXTURE\tSTORED\tMESSAGE")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s v %s\t%s\t%s\n",
			rec.Category, rec.ParticipantKey, rec.Gameweek, rec.HomeTeam, rec.AwayTeam,
			dashIfEmpty(rec.StoredScore()), dashIfEmpty(rec.MessageScore()))
	}
	_ = tw.Flush()
}

func orAll(gameweek int) string {
	if gameweek <= 0 {
		return "all"
	}
	return fmt.Sprint(gameweek)
}

func orAllString(v string) string {
	if v == "" {
		return "all"
	}
	return v
}

func dashIfEmpty(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
