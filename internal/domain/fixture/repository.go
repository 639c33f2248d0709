package fixture

import "context"

// Repository reads a league's fixture table. A candidate can only resolve to
// a pairing listed here.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Fixture, error)
}
