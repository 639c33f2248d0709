package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	LeagueID  string         `db:"league_public_id"`
	Name      string         `db:"name"`
	Short     string         `db:"short"`
	Aliases   pq.StringArray `db:"aliases"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type fixtureTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	LeagueID   string     `db:"league_public_id"`
	Gameweek   int        `db:"gameweek"`
	HomeTeam   string     `db:"home_team"`
	AwayTeam   string     `db:"away_team"`
	HomeTeamID string     `db:"home_team_public_id"`
	AwayTeamID string     `db:"away_team_public_id"`
	KickoffAt  time.Time  `db:"kickoff_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type participantAliasTableModel struct {
	RawVariant     string `db:"raw_variant"`
	ParticipantKey string `db:"participant_key"`
}

// storedPredictionRow is the prediction joined with its fixture.
type storedPredictionRow struct {
	LeagueID       string `db:"league_public_id"`
	ParticipantKey string `db:"participant_key"`
	FixtureID      string `db:"fixture_public_id"`
	Gameweek       int    `db:"gameweek"`
	HomeTeam       string `db:"home_team"`
	AwayTeam       string `db:"away_team"`
	HomeGoals      int    `db:"home_goals"`
	AwayGoals      int    `db:"away_goals"`
}

type verificationRecordTableModel struct {
	ID               int64         `db:"id"`
	RunID            string        `db:"run_id"`
	LeagueID         string        `db:"league_public_id"`
	Category         string        `db:"category"`
	ParticipantKey   string        `db:"participant_key"`
	FixtureID        string        `db:"fixture_public_id"`
	Gameweek         int           `db:"gameweek"`
	HomeTeam         string        `db:"home_team"`
	AwayTeam         string        `db:"away_team"`
	StoredHomeGoals  sql.NullInt64 `db:"stored_home_goals"`
	StoredAwayGoals  sql.NullInt64 `db:"stored_away_goals"`
	MessageHomeGoals sql.NullInt64 `db:"message_home_goals"`
	MessageAwayGoals sql.NullInt64 `db:"message_away_goals"`
	CreatedAt        time.Time     `db:"created_at"`
}

type verificationRecordInsertModel struct {
	RunID            string        `db:"run_id"`
	LeagueID         string        `db:"league_public_id"`
	Category         string        `db:"category"`
	ParticipantKey   string        `db:"participant_key"`
	FixtureID        string        `db:"fixture_public_id"`
	Gameweek         int           `db:"gameweek"`
	HomeTeam         string        `db:"home_team"`
	AwayTeam         string        `db:"away_team"`
	StoredHomeGoals  sql.NullInt64 `db:"stored_home_goals"`
	StoredAwayGoals  sql.NullInt64 `db:"stored_away_goals"`
	MessageHomeGoals sql.NullInt64 `db:"message_home_goals"`
	MessageAwayGoals sql.NullInt64 `db:"message_away_goals"`
	CreatedAt        time.Time     `db:"created_at"`
}
