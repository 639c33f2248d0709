package fixture

import "time"

// Fixture represents one scheduled match with its authoritative home/away roles.
type Fixture struct {
	ID         string
	LeagueID   string
	Gameweek   int
	HomeTeam   string
	AwayTeam   string
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
}
