package export

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
)

func testSummary() *verification.Summary {
	started := time.Date(2025, 8, 18, 7, 30, 0, 0, time.FixedZone("WIB", 7*60*60))
	return verification.NewSummary("run-1", prediction.Scope{LeagueID: "epl", Gameweek: 1}, started)
}

func goals(v int) *int {
	return &v
}

func TestExporter_WriteBackup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	exporter := NewExporter(dir)
	summary := testSummary()
	records := []verification.Record{
		{
			Category:         verification.CategoryScoreMismatch,
			ParticipantKey:   "p-andi",
			FixtureID:        "gw1-avl-bur",
			Gameweek:         1,
			HomeTeam:         "Aston Villa",
			AwayTeam:         "Burnley",
			StoredHomeGoals:  goals(2),
			StoredAwayGoals:  goals(0),
			MessageHomeGoals: goals(2),
			MessageAwayGoals: goals(1),
		},
		{
			Category:        verification.CategoryDatabaseOnly,
			ParticipantKey:  "p-budi",
			FixtureID:       "gw1-ars-liv",
			Gameweek:        1,
			HomeTeam:        "Arsenal",
			AwayTeam:        "Liverpool, FC",
			StoredHomeGoals: goals(1),
			StoredAwayGoals: goals(1),
		},
	}

	path, err := exporter.WriteBackup(context.Background(), summary, records)
	if err != nil {
		t.Fatalf("write backup: %v", err)
	}
	if filepath.Base(path) != "verification_20250818T003000Z_run-1.csv" {
		t.Fatalf("unexpected backup name: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got=%d", len(rows))
	}
	if strings.Join(rows[0], ",") != "category,participant,fixture,gameweek,home_team,away_team,stored_score,message_score" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if strings.Join(rows[1], "|") != "SCORE_MISMATCH|p-andi|gw1-avl-bur|1|Aston Villa|Burnley|2-0|2-1" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
	if rows[2][5] != "Liverpool, FC" || rows[2][7] != "" {
		t.Fatalf("unexpected row: %v", rows[2])
	}

	if _, err := exporter.WriteBackup(context.Background(), summary, records); !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected existing backup to be kept, got=%v", err)
	}
}

func TestExporter_WriteSummary(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(dir)
	summary := testSummary()
	summary.AddDrop(verification.Dropped{Reason: verification.DropUnresolvedParticipant, SourceID: "1/chat.zip", Line: 4})
	summary.BackupPath = filepath.Join(dir, "verification_x.csv")

	path, err := exporter.WriteSummary(context.Background(), summary)
	if err != nil {
		t.Fatalf("write summary: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}

	var decoded verification.Summary
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.DropCounts[verification.DropUnresolvedParticipant] != 1 || len(decoded.Dropped) != 1 {
		t.Fatalf("unexpected decoded summary: %+v", decoded)
	}
}

func TestExporter_RequiresDirectory(t *testing.T) {
	if _, err := NewExporter(" ").WriteBackup(context.Background(), testSummary(), nil); err == nil {
		t.Fatalf("expected error without backup directory")
	}
}

type failingWriter struct {
	io.WriteCloser
}

func (w failingWriter) Write(p []byte) (int, error) {
	n, _ := w.WriteCloser.Write(p[:len(p)/2])
	return n, errors.New("disk full")
}

func TestExporter_FailedWriteRemovesPartialFile(t *testing.T) {
	original := createExclusive
	t.Cleanup(func() { createExclusive = original })
	createExclusive = func(path string) (io.WriteCloser, error) {
		f, err := original(path)
		if err != nil {
			return nil, err
		}
		return failingWriter{WriteCloser: f}, nil
	}

	dir := t.TempDir()
	exporter := NewExporter(dir)
	if _, err := exporter.WriteBackup(context.Background(), testSummary(), nil); err == nil {
		t.Fatalf("expected write error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected partial backup to be removed, found %d entries", len(entries))
	}

	createExclusive = original
	path, err := exporter.WriteBackup(context.Background(), testSummary(), nil)
	if err != nil {
		t.Fatalf("retry after failed write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected backup after retry: %v", err)
	}
}
