package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/prediction-verifier/internal/domain/fixture"
)

type FixtureRepository struct {
	mu               sync.RWMutex
	fixturesByLeague map[string][]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	fixturesByLeague := make(map[string][]fixture.Fixture)
	for _, item := range fixtures {
		fixturesByLeague[item.LeagueID] = append(fixturesByLeague[item.LeagueID], item)
	}
	for leagueID := range fixturesByLeague {
		items := fixturesByLeague[leagueID]
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Gameweek != items[j].Gameweek {
				return items[i].Gameweek < items[j].Gameweek
			}
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		})
	}

	return &FixtureRepository{fixturesByLeague: fixturesByLeague}
}

func (r *FixtureRepository) ListByLeague(_ context.Context, leagueID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.fixturesByLeague[leagueID]
	out := make([]fixture.Fixture, 0, len(items))
	out = append(out, items...)
	return out, nil
}
