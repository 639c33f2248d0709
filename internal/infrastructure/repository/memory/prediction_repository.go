package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
)

type PredictionRepository struct {
	mu                  sync.RWMutex
	predictionsByLeague map[string][]prediction.StoredPrediction
}

func NewPredictionRepository(items []prediction.StoredPrediction) *PredictionRepository {
	predictionsByLeague := make(map[string][]prediction.StoredPrediction)
	for _, item := range items {
		predictionsByLeague[item.LeagueID] = append(predictionsByLeague[item.LeagueID], item)
	}
	return &PredictionRepository{predictionsByLeague: predictionsByLeague}
}

func (r *PredictionRepository) ListByScope(_ context.Context, scope prediction.Scope) ([]prediction.StoredPrediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.predictionsByLeague[scope.LeagueID]
	out := make([]prediction.StoredPrediction, 0, len(items))
	for _, item := range items {
		if scope.Includes(item) {
			out = append(out, item)
		}
	}
	return out, nil
}
