package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/prediction-verifier/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo league into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label, query string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(query, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", label, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	for _, t := range memory.SeedTeams() {
		if err := exec("team "+t.ID, `
INSERT INTO teams (public_id, league_public_id, name, short, aliases)
VALUES (:public_id, :league_public_id, :name, :short, :aliases)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        t.ID,
			"league_public_id": t.LeagueID,
			"name":             t.Name,
			"short":            t.Short,
			"aliases":          pq.StringArray(append([]string{}, t.Aliases...)),
		}); err != nil {
			return err
		}
	}

	for _, f := range memory.SeedFixtures() {
		if err := exec("fixture "+f.ID, `
INSERT INTO fixtures (public_id, league_public_id, gameweek, home_team, away_team, home_team_public_id, away_team_public_id, kickoff_at)
VALUES (:public_id, :league_public_id, :gameweek, :home_team, :away_team, :home_team_public_id, :away_team_public_id, :kickoff_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           f.ID,
			"league_public_id":    f.LeagueID,
			"gameweek":            f.Gameweek,
			"home_team":           f.HomeTeam,
			"away_team":           f.AwayTeam,
			"home_team_public_id": f.HomeTeamID,
			"away_team_public_id": f.AwayTeamID,
			"kickoff_at":          f.KickoffAt,
		}); err != nil {
			return err
		}
	}

	for leagueID, entries := range memory.SeedParticipantAliases() {
		for _, e := range entries {
			if err := exec("participant alias "+e.RawVariant, `
INSERT INTO participant_aliases (league_public_id, raw_variant, participant_key)
VALUES (:league_public_id, :raw_variant, :participant_key)
ON CONFLICT DO NOTHING`, map[string]any{
				"league_public_id": leagueID,
				"raw_variant":      e.RawVariant,
				"participant_key":  e.ParticipantKey,
			}); err != nil {
				return err
			}
		}
	}

	for _, p := range memory.SeedPredictions() {
		if err := exec("prediction "+p.ParticipantKey+"/"+p.FixtureID, `
INSERT INTO predictions (league_public_id, participant_key, fixture_public_id, home_goals, away_goals)
VALUES (:league_public_id, :participant_key, :fixture_public_id, :home_goals, :away_goals)
ON CONFLICT DO NOTHING`, map[string]any{
			"league_public_id":  p.LeagueID,
			"participant_key":   p.ParticipantKey,
			"fixture_public_id": p.FixtureID,
			"home_goals":        p.HomeGoals,
			"away_goals":        p.AwayGoals,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
