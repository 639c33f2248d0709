package participant

import "fmt"

// AliasEntry maps one spelling of a participant's name to their canonical key.
// Many entries may share a key; the mapping is one-directional.
type AliasEntry struct {
	RawVariant     string
	ParticipantKey string
}

func (e AliasEntry) Validate() error {
	if e.RawVariant == "" {
		return fmt.Errorf("alias raw variant is required")
	}
	if e.ParticipantKey == "" {
		return fmt.Errorf("alias participant key is required")
	}
	return nil
}
