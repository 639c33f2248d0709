package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-verifier/internal/domain/participant"
	qb "github.com/riskibarqy/prediction-verifier/internal/platform/querybuilder"
)

type ParticipantAliasRepository struct {
	db *sqlx.DB
}

func NewParticipantAliasRepository(db *sqlx.DB) *ParticipantAliasRepository {
	return &ParticipantAliasRepository{db: db}
}

func (r *ParticipantAliasRepository) ListAliases(ctx context.Context, leagueID string) ([]participant.AliasEntry, error) {
	query, args, err := qb.Select("raw_variant", "participant_key").From("participant_aliases").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("participant_key", "raw_variant").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participant aliases query: %w", err)
	}

	var rows []participantAliasTableModel
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participant aliases: %w", err)
	}

	out := make([]participant.AliasEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, participant.AliasEntry{
			RawVariant:     row.RawVariant,
			ParticipantKey: row.ParticipantKey,
		})
	}
	return out, nil
}
