package team

import "context"

// Repository describes the team reference data the verifier reads.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
}
