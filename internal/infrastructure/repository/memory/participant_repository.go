package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/prediction-verifier/internal/domain/participant"
)

type ParticipantAliasRepository struct {
	mu              sync.RWMutex
	aliasesByLeague map[string][]participant.AliasEntry
}

// NewParticipantAliasRepository stores entries keyed by league ID.
func NewParticipantAliasRepository(aliasesByLeague map[string][]participant.AliasEntry) *ParticipantAliasRepository {
	copied := make(map[string][]participant.AliasEntry, len(aliasesByLeague))
	for leagueID, entries := range aliasesByLeague {
		copied[leagueID] = append([]participant.AliasEntry(nil), entries...)
	}
	return &ParticipantAliasRepository{aliasesByLeague: copied}
}

func (r *ParticipantAliasRepository) ListAliases(_ context.Context, leagueID string) ([]participant.AliasEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.aliasesByLeague[leagueID]
	out := make([]participant.AliasEntry, 0, len(items))
	out = append(out, items...)
	return out, nil
}
