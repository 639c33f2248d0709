package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
	qb "github.com/riskibarqy/prediction-verifier/internal/platform/querybuilder"
)

type VerificationRepository struct {
	db *sqlx.DB
}

func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// ReplaceScope deletes the scoped rows and inserts records in one transaction.
func (r *VerificationRepository) ReplaceScope(ctx context.Context, scope prediction.Scope, records []verification.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace verification records: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("verification_records").
		Where(recordScopeConditions(scope)...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear verification records query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear verification records: %w", err)
	}

	models := make([]verificationRecordInsertModel, 0, len(records))
	for _, rec := range records {
		models = append(models, verificationRecordInsertModel{
			RunID:            rec.RunID,
			LeagueID:         scope.LeagueID,
			Category:         string(rec.Category),
			ParticipantKey:   rec.ParticipantKey,
			FixtureID:        rec.FixtureID,
			Gameweek:         rec.Gameweek,
			HomeTeam:         rec.HomeTeam,
			AwayTeam:         rec.AwayTeam,
			StoredHomeGoals:  intPtrToNullInt64(rec.StoredHomeGoals),
			StoredAwayGoals:  intPtrToNullInt64(rec.StoredAwayGoals),
			MessageHomeGoals: intPtrToNullInt64(rec.MessageHomeGoals),
			MessageAwayGoals: intPtrToNullInt64(rec.MessageAwayGoals),
			CreatedAt:        rec.CreatedAt,
		})
	}

	for _, batch := range chunk(models, maxInsertRows) {
		query, args, err := qb.InsertModels("verification_records", batch)
		if err != nil {
			return fmt.Errorf("build insert verification records query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert verification records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace verification records tx: %w", err)
	}
	return nil
}

func (r *VerificationRepository) ListByScope(ctx context.Context, scope prediction.Scope, category verification.Category) ([]verification.Record, error) {
	conds := recordScopeConditions(scope)
	if category != "" {
		conds = append(conds, qb.Eq("category", string(category)))
	}

	query, args, err := qb.Select("*").From("verification_records").
		Where(conds...).
		OrderBy("participant_key", "gameweek", "fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select verification records query: %w", err)
	}

	var rows []verificationRecordTableModel
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select verification records: %w", err)
	}

	out := make([]verification.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, verification.Record{
			RunID:            row.RunID,
			LeagueID:         row.LeagueID,
			Category:         verification.Category(row.Category),
			ParticipantKey:   row.ParticipantKey,
			FixtureID:        row.FixtureID,
			Gameweek:         row.Gameweek,
			HomeTeam:         row.HomeTeam,
			AwayTeam:         row.AwayTeam,
			StoredHomeGoals:  nullInt64ToIntPtr(row.StoredHomeGoals),
			StoredAwayGoals:  nullInt64ToIntPtr(row.StoredAwayGoals),
			MessageHomeGoals: nullInt64ToIntPtr(row.MessageHomeGoals),
			MessageAwayGoals: nullInt64ToIntPtr(row.MessageAwayGoals),
			CreatedAt:        row.CreatedAt,
		})
	}
	return out, nil
}

func recordScopeConditions(scope prediction.Scope) []qb.Condition {
	conds := []qb.Condition{qb.Eq("league_public_id", scope.LeagueID)}
	if scope.Gameweek > 0 {
		conds = append(conds, qb.Eq("gameweek", scope.Gameweek))
	}
	if key := strings.TrimSpace(scope.ParticipantKey); key != "" {
		conds = append(conds, qb.Eq("participant_key", key))
	}
	return conds
}
