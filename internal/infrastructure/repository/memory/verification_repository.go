package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
)

type VerificationRepository struct {
	mu              sync.RWMutex
	recordsByLeague map[string][]verification.Record
}

func NewVerificationRepository() *VerificationRepository {
	return &VerificationRepository{recordsByLeague: make(map[string][]verification.Record)}
}

// ReplaceScope swaps the scoped slice under one lock, so readers see either
// the old or the new set.
func (r *VerificationRepository) ReplaceScope(_ context.Context, scope prediction.Scope, records []verification.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.recordsByLeague[scope.LeagueID]
	next := make([]verification.Record, 0, len(current)+len(records))
	for _, item := range current {
		if !recordInScope(item, scope) {
			next = append(next, item)
		}
	}
	next = append(next, records...)
	verification.SortRecords(next)

	r.recordsByLeague[scope.LeagueID] = next
	return nil
}

func (r *VerificationRepository) ListByScope(_ context.Context, scope prediction.Scope, category verification.Category) ([]verification.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.recordsByLeague[scope.LeagueID]
	out := make([]verification.Record, 0, len(items))
	for _, item := range items {
		if !recordInScope(item, scope) {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func recordInScope(item verification.Record, scope prediction.Scope) bool {
	return scope.IncludesGameweek(item.Gameweek) && scope.IncludesParticipant(item.ParticipantKey)
}
