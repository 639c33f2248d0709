package prediction

import "context"

// Repository is the read side of the canonical prediction store.
type Repository interface {
	ListByScope(ctx context.Context, scope Scope) ([]StoredPrediction, error)
}
