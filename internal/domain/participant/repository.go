package participant

import "context"

// Repository exposes the alias reference table for a league.
type Repository interface {
	ListAliases(ctx context.Context, leagueID string) ([]AliasEntry, error)
}
