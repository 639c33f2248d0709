package team

import (
	"fmt"
	"strings"
)

// Team is a real football club inside a league.
type Team struct {
	ID       string
	LeagueID string
	Name     string
	Short    string
	// Aliases are extra spellings accepted in free text, e.g. "Spurs" or "Villa".
	Aliases []string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.LeagueID) == "" {
		return fmt.Errorf("team league id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	for i, alias := range t.Aliases {
		if strings.TrimSpace(alias) == "" {
			return fmt.Errorf("team alias %d is blank", i)
		}
	}

	return nil
}

// Spellings returns the canonical name followed by every alias.
func (t Team) Spellings() []string {
	out := make([]string, 0, 1+len(t.Aliases))
	out = append(out, t.Name)
	return append(out, t.Aliases...)
}
