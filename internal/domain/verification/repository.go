package verification

import (
	"context"

	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
)

// Repository is the replace-on-write verification record collection.
type Repository interface {
	// ReplaceScope atomically swaps every record inside scope for records.
	// On error the previous records stay untouched.
	ReplaceScope(ctx context.Context, scope prediction.Scope, records []Record) error
	// ListByScope returns records inside scope, optionally narrowed to one category.
	ListByScope(ctx context.Context, scope prediction.Scope, category Category) ([]Record, error)
}
