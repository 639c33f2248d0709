package verification

import (
	"testing"
	"time"

	"github.com/riskibarqy/prediction-verifier/internal/domain/fixture"
	"github.com/riskibarqy/prediction-verifier/internal/domain/message"
	"github.com/riskibarqy/prediction-verifier/internal/domain/participant"
	"github.com/riskibarqy/prediction-verifier/internal/domain/team"
)

var (
	villaBurnley = fixture.Fixture{ID: "42", LeagueID: "epl", Gameweek: 1, HomeTeam: "Aston Villa", AwayTeam: "Burnley"}
	derby        = fixture.Fixture{ID: "50", LeagueID: "epl", Gameweek: 1, HomeTeam: "Manchester United", AwayTeam: "Manchester City"}
	burnleyVilla = fixture.Fixture{ID: "60", LeagueID: "epl", Gameweek: 2, HomeTeam: "Burnley", AwayTeam: "Aston Villa"}
)

type harness struct {
	parser   *message.Parser
	resolver *CandidateResolver
}

func newHarness(t *testing.T) harness {
	t.Helper()

	dir, err := team.NewDirectory([]team.Team{
		{ID: "avl", LeagueID: "epl", Name: "Aston Villa", Aliases: []string{"Villa"}},
		{ID: "bur", LeagueID: "epl", Name: "Burnley"},
		{ID: "mun", LeagueID: "epl", Name: "Manchester United", Aliases: []string{"Man Utd"}},
		{ID: "mci", LeagueID: "epl", Name: "Manchester City", Aliases: []string{"Man City"}},
	})
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}
	aliases, err := participant.NewAliasTable([]participant.AliasEntry{
		{RawVariant: "Seven", ParticipantKey: "7"},
		{RawVariant: "Lucky Seven", ParticipantKey: "7"},
		{RawVariant: "Nine", ParticipantKey: "9"},
		{RawVariant: "Fixtures Bot", ParticipantKey: "bot"},
	})
	if err != nil {
		t.Fatalf("new alias table: %v", err)
	}
	locator := fixture.NewLocator([]fixture.Fixture{villaBurnley, derby, burnleyVilla})

	return harness{
		parser:   message.NewParser(dir, time.UTC),
		resolver: NewCandidateResolver(aliases, locator, []string{"Admin", "bot"}),
	}
}

// parseOne parses a single-clause document and fails unless it yields exactly one candidate.
func (h harness) parseOne(t *testing.T, gameweek int, body string) message.ParsedCandidate {
	t.Helper()

	var out []message.ParsedCandidate
	for c, err := range h.parser.Parse(message.Document{ID: "doc", Kind: message.KindPlain, Gameweek: gameweek, Body: body}) {
		if err != nil {
			t.Fatalf("parse %q: %v", body, err)
		}
		out = append(out, c)
	}
	if len(out) != 1 {
		t.Fatalf("parse %q: expected one candidate, got=%d", body, len(out))
	}
	return out[0]
}

func at(hour int) *time.Time {
	ts := time.Date(2024, 8, 17, hour, 0, 0, 0, time.UTC)
	return &ts
}
