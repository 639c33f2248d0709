package team

import (
	"errors"
	"testing"

	"github.com/riskibarqy/prediction-verifier/internal/platform/textnorm"
)

func testDirectory(t *testing.T) *Directory {
	t.Helper()

	dir, err := NewDirectory([]Team{
		{ID: "avl", LeagueID: "epl", Name: "Aston Villa", Aliases: []string{"Villa"}},
		{ID: "bur", LeagueID: "epl", Name: "Burnley"},
		{ID: "mun", LeagueID: "epl", Name: "Manchester United", Aliases: []string{"Man United", "Man Utd"}},
		{ID: "mci", LeagueID: "epl", Name: "Manchester City", Aliases: []string{"Man City"}},
		{ID: "shu", LeagueID: "epl", Name: "Sheffield United"},
		{ID: "utr", LeagueID: "epl", Name: "United Rovers"},
		{ID: "new", LeagueID: "epl", Name: "Newcastle"},
		{ID: "nwu", LeagueID: "epl", Name: "Newcastle United"},
	})
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}
	return dir
}

func teamsOf(mentions []Mention) []string {
	out := make([]string, 0, len(mentions))
	for _, m := range mentions {
		out = append(out, m.Team)
	}
	return out
}

func TestDirectory_Scan(t *testing.T) {
	dir := testDirectory(t)

	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr error
	}{
		{name: "text order kept", text: "Burnley 0-2 Aston Villa", want: []string{"Burnley", "Aston Villa"}},
		{name: "alias resolves to canonical", text: "villa 2-0 burnley", want: []string{"Aston Villa", "Burnley"}},
		{name: "longest match wins", text: "Newcastle United 1-1 Man City", want: []string{"Newcastle United", "Manchester City"}},
		{name: "shorter prefix alone", text: "Newcastle 3-0 Burnley", want: []string{"Newcastle", "Burnley"}},
		{name: "nested alias discarded", text: "Aston Villa v Man Utd", want: []string{"Aston Villa", "Manchester United"}},
		{name: "word boundary required", text: "Burnleyfans are happy", want: nil},
		{name: "repeated team kept once", text: "Burnley, Burnley, Burnley", want: []string{"Burnley"}},
		{name: "no teams", text: "good luck everyone", want: nil},
		{name: "crossing spellings are ambiguous", text: "Sheffield United Rovers", wantErr: ErrAmbiguousMention},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dir.Scan(textnorm.Fold(tc.text))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("scan: %v", err)
			}
			names := teamsOf(got)
			if len(names) != len(tc.want) {
				t.Fatalf("unexpected mentions: got=%v want=%v", names, tc.want)
			}
			for i := range names {
				if names[i] != tc.want[i] {
					t.Fatalf("unexpected mention %d: got=%v want=%v", i, names, tc.want)
				}
			}
		})
	}
}

func TestDirectory_ScanOffsetsAscending(t *testing.T) {
	dir := testDirectory(t)

	got, err := dir.Scan(textnorm.Fold("Manchester City 1-2 Burnley"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 2 || got[0].Start >= got[1].Start {
		t.Fatalf("expected ascending offsets, got %+v", got)
	}
	if got[0].Start != 0 || got[0].End != len("manchester city") {
		t.Fatalf("unexpected first span: %+v", got[0])
	}
}

func TestNewDirectory_ConflictingSpelling(t *testing.T) {
	_, err := NewDirectory([]Team{
		{ID: "a", LeagueID: "epl", Name: "Wolves"},
		{ID: "b", LeagueID: "epl", Name: "Wolverhampton", Aliases: []string{"WOLVES"}},
	})
	if !errors.Is(err, ErrConflictingSpelling) {
		t.Fatalf("expected ErrConflictingSpelling, got %v", err)
	}
}

func TestNewDirectory_InvalidTeam(t *testing.T) {
	if _, err := NewDirectory([]Team{{ID: "x", LeagueID: "epl"}}); err == nil {
		t.Fatalf("expected validation error for nameless team")
	}
	if _, err := NewDirectory([]Team{{ID: "x", LeagueID: "epl", Name: "Villa", Aliases: []string{" "}}}); err == nil {
		t.Fatalf("expected validation error for blank alias")
	}
}
