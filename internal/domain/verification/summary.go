package verification

import (
	"time"

	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
)

// Summary is the operator view of one run. Drop counts and category counts
// are kept apart so parsing gaps never read as prediction mismatches.
type Summary struct {
	RunID       string             `json:"run_id"`
	Scope       prediction.Scope   `json:"scope"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Documents   int                `json:"documents"`
	Parsed      int                `json:"parsed_candidates"`
	Resolved    int                `json:"resolved_candidates"`
	OutOfScope  int                `json:"out_of_scope"`
	Survivors   int                `json:"survivors"`
	Stored      int                `json:"stored_predictions"`
	Categories  map[Category]int   `json:"categories"`
	DropCounts  map[DropReason]int `json:"drop_counts"`
	Dropped     []Dropped          `json:"dropped"`
	Records     int                `json:"records"`
	BackupPath  string             `json:"backup_path,omitempty"`
	BackupError string             `json:"backup_error,omitempty"`
}

func NewSummary(runID string, scope prediction.Scope, startedAt time.Time) *Summary {
	categories := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		categories[c] = 0
	}
	return &Summary{
		RunID:      runID,
		Scope:      scope,
		StartedAt:  startedAt,
		Categories: categories,
		DropCounts: make(map[DropReason]int),
	}
}

func (s *Summary) AddDrop(d Dropped) {
	s.DropCounts[d.Reason]++
	s.Dropped = append(s.Dropped, d)
}

// TotalDropped counts dropped entries across all reasons.
func (s *Summary) TotalDropped() int {
	total := 0
	for _, n := range s.DropCounts {
		total += n
	}
	return total
}

// Tally counts records per category.
func (s *Summary) Tally(records []Record) {
	for _, rec := range records {
		s.Categories[rec.Category]++
	}
	s.Records += len(records)
}
