package prediction

import "testing"

func TestScope_Includes(t *testing.T) {
	item := StoredPrediction{ParticipantKey: "7", FixtureID: "fx-42", Gameweek: 3}

	tests := []struct {
		name  string
		scope Scope
		want  bool
	}{
		{name: "unfiltered", scope: Scope{LeagueID: "epl"}, want: true},
		{name: "matching gameweek", scope: Scope{LeagueID: "epl", Gameweek: 3}, want: true},
		{name: "other gameweek", scope: Scope{LeagueID: "epl", Gameweek: 4}, want: false},
		{name: "matching participant", scope: Scope{LeagueID: "epl", ParticipantKey: " 7 "}, want: true},
		{name: "other participant", scope: Scope{LeagueID: "epl", ParticipantKey: "9"}, want: false},
	}

	for _, tc := range tests {
		if got := tc.scope.Includes(item); got != tc.want {
			t.Fatalf("%s: got=%t want=%t", tc.name, got, tc.want)
		}
	}
}
