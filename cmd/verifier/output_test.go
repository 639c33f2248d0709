package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
	"github.com/riskibarqy/prediction-verifier/internal/usecase"
)

func intPtr(v int) *int { return &v }

func sampleResult() usecase.RunResult {
	summary := verification.NewSummary("run-1", prediction.Scope{LeagueID: "epl", Gameweek: 1}, time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC))
	records := []verification.Record{
		{Category: verification.CategoryMatch, ParticipantKey: "p-andi", FixtureID: "fx-1", Gameweek: 1, HomeTeam: "Aston Villa", AwayTeam: "Burnley",
			StoredHomeGoals: intPtr(2), StoredAwayGoals: intPtr(0), MessageHomeGoals: intPtr(2), MessageAwayGoals: intPtr(0)},
		{Category: verification.CategoryDatabaseOnly, ParticipantKey: "p-budi", FixtureID: "fx-2", Gameweek: 1, HomeTeam: "Arsenal", AwayTeam: "Liverpool",
			StoredHomeGoals: intPtr(2), StoredAwayGoals: intPtr(2)},
	}
	summary.Tally(records)
	summary.AddDrop(verification.Dropped{Reason: verification.DropUnresolvedParticipant, SourceID: "1/group.txt", Line: 4, RawParticipant: "Stranger", Text: "Villa 1-0 Burnley"})
	summary.BackupPath = "/backups/verification_run-1.csv"
	return usecase.RunResult{Summary: summary, Records: records}
}

func TestWriteRunReport(t *testing.T) {
	var buf bytes.Buffer
	writeRunReport(&buf, sampleResult(), true)
	out := buf.String()

	for _, want := range []string{
		"run run-1 league=epl gameweek=1 participant=all",
		"DATABASE_ONLY",
		"UNRESOLVED_PARTICIPANT",
		"1/group.txt:4",
		"backup /backups/verification_run-1.csv",
		"Arsenal v Liverpool",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Aston Villa v Burnley") {
		t.Fatalf("matching records should not be listed as discrepancies:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"run_id": "run-1"`) || !strings.Contains(out, `"category": "DATABASE_ONLY"`) {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}
