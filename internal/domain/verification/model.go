package verification

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-verifier/internal/domain/fixture"
)

type Category string

const (
	CategoryMatch         Category = "MATCH"
	CategoryScoreMismatch Category = "SCORE_MISMATCH"
	CategoryMessageOnly   Category = "MESSAGE_ONLY"
	CategoryDatabaseOnly  Category = "DATABASE_ONLY"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryMatch,
	CategoryScoreMismatch,
	CategoryMessageOnly,
	CategoryDatabaseOnly,
}

// ParseCategory accepts a category name in any case; empty input means no filter.
func ParseCategory(v string) (Category, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return "", nil
	}
	for _, c := range Categories {
		if string(c) == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", v)
}

// Key is the composite identity every reconciliation step joins on.
type Key struct {
	ParticipantKey string
	FixtureID      string
}

// ResolvedCandidate is a message-derived prediction with canonical identities.
// Goals are already projected onto the fixture's home and away slots.
type ResolvedCandidate struct {
	ParticipantKey string
	Fixture        fixture.Fixture
	HomeGoals      int
	AwayGoals      int
	HasScore       bool
	Timestamp      *time.Time
	Seq            int64
	SourceID       string
	Line           int
}

func (c ResolvedCandidate) Key() Key {
	return Key{ParticipantKey: c.ParticipantKey, FixtureID: c.Fixture.ID}
}

// Record is one row of the verification result set.
type Record struct {
	RunID            string    `json:"run_id"`
	LeagueID         string    `json:"league_id"`
	Category         Category  `json:"category"`
	ParticipantKey   string    `json:"participant_key"`
	FixtureID        string    `json:"fixture_id"`
	Gameweek         int       `json:"gameweek"`
	HomeTeam         string    `json:"home_team"`
	AwayTeam         string    `json:"away_team"`
	StoredHomeGoals  *int      `json:"stored_home_goals,omitempty"`
	StoredAwayGoals  *int      `json:"stored_away_goals,omitempty"`
	MessageHomeGoals *int      `json:"message_home_goals,omitempty"`
	MessageAwayGoals *int      `json:"message_away_goals,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r Record) Key() Key {
	return Key{ParticipantKey: r.ParticipantKey, FixtureID: r.FixtureID}
}

// StoredScore renders the stored goals as "home-away", or "" when absent.
func (r Record) StoredScore() string {
	return formatScore(r.StoredHomeGoals, r.StoredAwayGoals)
}

// MessageScore renders the message goals as "home-away", or "" when absent.
func (r Record) MessageScore() string {
	return formatScore(r.MessageHomeGoals, r.MessageAwayGoals)
}

func formatScore(home, away *int) string {
	if home == nil || away == nil {
		return ""
	}
	return strconv.Itoa(*home) + "-" + strconv.Itoa(*away)
}

func intPtr(v int) *int {
	return &v
}
