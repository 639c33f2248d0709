package prediction

import "strings"

// StoredPrediction is a canonical prediction as persisted by the prediction
// store. The verifier only reads these.
type StoredPrediction struct {
	LeagueID       string
	ParticipantKey string
	FixtureID      string
	Gameweek       int
	HomeTeam       string
	AwayTeam       string
	HomeGoals      int
	AwayGoals      int
}

// Scope narrows a verification run. Zero Gameweek and empty ParticipantKey mean "all".
type Scope struct {
	LeagueID       string `json:"league_id"`
	Gameweek       int    `json:"gameweek,omitempty"`
	ParticipantKey string `json:"participant_key,omitempty"`
}

func (s Scope) IncludesGameweek(gameweek int) bool {
	return s.Gameweek == 0 || s.Gameweek == gameweek
}

func (s Scope) IncludesParticipant(key string) bool {
	participant := strings.TrimSpace(s.ParticipantKey)
	return participant == "" || participant == key
}

func (s Scope) Includes(p StoredPrediction) bool {
	return s.IncludesGameweek(p.Gameweek) && s.IncludesParticipant(p.ParticipantKey)
}
