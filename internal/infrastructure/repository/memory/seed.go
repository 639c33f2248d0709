package memory

import (
	"time"

	"github.com/riskibarqy/prediction-verifier/internal/domain/fixture"
	"github.com/riskibarqy/prediction-verifier/internal/domain/participant"
	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/team"
)

const LeagueIDPremierLeague = "eng-premier-league-2025"

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "eng-ars", LeagueID: LeagueIDPremierLeague, Name: "Arsenal", Short: "ARS", Aliases: []string{"Gunners"}},
		{ID: "eng-avl", LeagueID: LeagueIDPremierLeague, Name: "Aston Villa", Short: "AVL", Aliases: []string{"Villa"}},
		{ID: "eng-bur", LeagueID: LeagueIDPremierLeague, Name: "Burnley", Short: "BUR"},
		{ID: "eng-liv", LeagueID: LeagueIDPremierLeague, Name: "Liverpool", Short: "LIV"},
		{ID: "eng-mci", LeagueID: LeagueIDPremierLeague, Name: "Manchester City", Short: "MCI", Aliases: []string{"Man City"}},
		{ID: "eng-mun", LeagueID: LeagueIDPremierLeague, Name: "Manchester United", Short: "MUN", Aliases: []string{"Man United", "Man Utd"}},
		{ID: "eng-new", LeagueID: LeagueIDPremierLeague, Name: "Newcastle United", Short: "NEW", Aliases: []string{"Newcastle"}},
		{ID: "eng-tot", LeagueID: LeagueIDPremierLeague, Name: "Tottenham Hotspur", Short: "TOT", Aliases: []string{"Tottenham", "Spurs"}},
	}
}

func SeedFixtures() []fixture.Fixture {
	gw1 := time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)
	gw2 := gw1.AddDate(0, 0, 7)

	return []fixture.Fixture{
		seedFixture("eng-2025-gw1-avl-bur", 1, gw1, "Aston Villa", "eng-avl", "Burnley", "eng-bur"),
		seedFixture("eng-2025-gw1-mun-mci", 1, gw1.Add(150*time.Minute), "Manchester United", "eng-mun", "Manchester City", "eng-mci"),
		seedFixture("eng-2025-gw1-ars-liv", 1, gw1.Add(26*time.Hour), "Arsenal", "eng-ars", "Liverpool", "eng-liv"),
		seedFixture("eng-2025-gw1-new-tot", 1, gw1.Add(26*time.Hour+150*time.Minute), "Newcastle United", "eng-new", "Tottenham Hotspur", "eng-tot"),
		seedFixture("eng-2025-gw2-bur-avl", 2, gw2, "Burnley", "eng-bur", "Aston Villa", "eng-avl"),
		seedFixture("eng-2025-gw2-mci-ars", 2, gw2.Add(150*time.Minute), "Manchester City", "eng-mci", "Arsenal", "eng-ars"),
		seedFixture("eng-2025-gw2-liv-new", 2, gw2.Add(26*time.Hour), "Liverpool", "eng-liv", "Newcastle United", "eng-new"),
		seedFixture("eng-2025-gw2-tot-mun", 2, gw2.Add(26*time.Hour+150*time.Minute), "Tottenham Hotspur", "eng-tot", "Manchester United", "eng-mun"),
	}
}

func seedFixture(id string, gameweek int, kickoff time.Time, home, homeID, away, awayID string) fixture.Fixture {
	return fixture.Fixture{
		ID:         id,
		LeagueID:   LeagueIDPremierLeague,
		Gameweek:   gameweek,
		HomeTeam:   home,
		AwayTeam:   away,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		KickoffAt:  kickoff,
	}
}

func SeedParticipantAliases() map[string][]participant.AliasEntry {
	return map[string][]participant.AliasEntry{
		LeagueIDPremierLeague: {
			{RawVariant: "Andi", ParticipantKey: "p-andi"},
			{RawVariant: "Andi Saputra", ParticipantKey: "p-andi"},
			{RawVariant: "Budi", ParticipantKey: "p-budi"},
			{RawVariant: "Budi Santoso", ParticipantKey: "p-budi"},
			{RawVariant: "Citra", ParticipantKey: "p-citra"},
			{RawVariant: "Citra Lestari", ParticipantKey: "p-citra"},
			{RawVariant: "Dewi", ParticipantKey: "p-dewi"},
			{RawVariant: "Fixture Bot", ParticipantKey: "p-fixture-bot"},
		},
	}
}

func SeedPredictions() []prediction.StoredPrediction {
	byID := make(map[string]fixture.Fixture)
	for _, item := range SeedFixtures() {
		byID[item.ID] = item
	}
	stored := func(participantKey, fixtureID string, home, away int) prediction.StoredPrediction {
		fx := byID[fixtureID]
		return prediction.StoredPrediction{
			LeagueID:       LeagueIDPremierLeague,
			ParticipantKey: participantKey,
			FixtureID:      fixtureID,
			Gameweek:       fx.Gameweek,
			HomeTeam:       fx.HomeTeam,
			AwayTeam:       fx.AwayTeam,
			HomeGoals:      home,
			AwayGoals:      away,
		}
	}

	return []prediction.StoredPrediction{
		stored("p-andi", "eng-2025-gw1-avl-bur", 2, 0),
		stored("p-andi", "eng-2025-gw1-mun-mci", 1, 2),
		stored("p-budi", "eng-2025-gw1-avl-bur", 1, 1),
		stored("p-budi", "eng-2025-gw1-ars-liv", 2, 2),
		stored("p-citra", "eng-2025-gw1-new-tot", 0, 1),
		stored("p-dewi", "eng-2025-gw1-avl-bur", 3, 1),
		stored("p-andi", "eng-2025-gw2-bur-avl", 0, 2),
	}
}
