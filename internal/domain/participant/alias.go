package participant

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/prediction-verifier/internal/platform/textnorm"
)

var ErrConflictingAlias = errors.New("alias maps to more than one participant")

// AliasTable resolves raw names to participant keys. Lookups ignore case,
// accents and whitespace differences. It is read-only once built.
type AliasTable struct {
	byVariant map[string]string
}

func NewAliasTable(entries []AliasEntry) (*AliasTable, error) {
	byVariant := make(map[string]string, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		variant := textnorm.Fold(entry.RawVariant)
		if variant == "" {
			return nil, fmt.Errorf("alias %q folds to an empty name", entry.RawVariant)
		}
		if existing, ok := byVariant[variant]; ok && existing != entry.ParticipantKey {
			return nil, fmt.Errorf("%w: %q -> %s and %s", ErrConflictingAlias, entry.RawVariant, existing, entry.ParticipantKey)
		}
		byVariant[variant] = entry.ParticipantKey
	}

	return &AliasTable{byVariant: byVariant}, nil
}

// Resolve returns the canonical key for raw, or false when no alias matches.
func (t *AliasTable) Resolve(raw string) (string, bool) {
	if t == nil {
		return "", false
	}
	key, ok := t.byVariant[textnorm.Fold(raw)]
	return key, ok
}

func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byVariant)
}
