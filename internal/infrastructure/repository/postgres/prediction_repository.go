package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	qb "github.com/riskibarqy/prediction-verifier/internal/platform/querybuilder"
)

// PredictionRepository reads the canonical prediction store. The verifier
// never writes predictions.
type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) ListByScope(ctx context.Context, scope prediction.Scope) ([]prediction.StoredPrediction, error) {
	conds := []qb.Condition{
		qb.Eq("p.league_public_id", scope.LeagueID),
		qb.IsNull("p.deleted_at"),
		qb.IsNull("f.deleted_at"),
	}
	if scope.Gameweek > 0 {
		conds = append(conds, qb.Eq("f.gameweek", scope.Gameweek))
	}
	if key := strings.TrimSpace(scope.ParticipantKey); key != "" {
		conds = append(conds, qb.Eq("p.participant_key", key))
	}

	query, args, err := qb.Select(
		"p.league_public_id",
		"p.participant_key",
		"p.fixture_public_id",
		"f.gameweek",
		"f.home_team",
		"f.away_team",
		"p.home_goals",
		"p.away_goals",
	).From("predictions p JOIN fixtures f ON f.public_id = p.fixture_public_id").
		Where(conds...).
		OrderBy("p.participant_key", "f.gameweek", "p.fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions by scope query: %w", err)
	}

	var rows []storedPredictionRow
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select predictions by scope: %w", err)
	}

	out := make([]prediction.StoredPrediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.StoredPrediction{
			LeagueID:       row.LeagueID,
			ParticipantKey: row.ParticipantKey,
			FixtureID:      row.FixtureID,
			Gameweek:       row.Gameweek,
			HomeTeam:       row.HomeTeam,
			AwayTeam:       row.AwayTeam,
			HomeGoals:      row.HomeGoals,
			AwayGoals:      row.AwayGoals,
		})
	}
	return out, nil
}
