package postgres

import (
	"database/sql"
	"testing"

	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
)

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

func TestIsBindParameterMismatch(t *testing.T) {
	t.Run("matches bind mismatch error", func(t *testing.T) {
		err := fakeErr("pq: bind message supplies 2 parameters, but prepared statement \"\" requires 1 (08P01)")
		if !isBindParameterMismatch(err) {
			t.Fatalf("expected true for bind mismatch error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation verification_records does not exist")
		if isBindParameterMismatch(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := fakeErr("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("matches by 26000 code", func(t *testing.T) {
		err := fakeErr("pq: prepared statement missing (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for 26000 prepared statement error")
		}
	})

	t.Run("ignores nil", func(t *testing.T) {
		if isUnnamedPreparedStatementMissing(nil) {
			t.Fatalf("expected false for nil error")
		}
	})
}

func TestNullableGoals(t *testing.T) {
	if got := nullInt64ToIntPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for invalid value, got %d", *got)
	}
	three := 3
	round := nullInt64ToIntPtr(intPtrToNullInt64(&three))
	if round == nil || *round != 3 {
		t.Fatalf("expected 3 after round trip, got %v", round)
	}
}

func TestChunk(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	got := chunk(items, 2)
	if len(got) != 3 || len(got[2]) != 1 || got[2][0] != 5 {
		t.Fatalf("unexpected chunks: %v", got)
	}
	if chunk([]int(nil), 2) != nil {
		t.Fatalf("expected no chunks for empty input")
	}
	if got := chunk(items, 0); len(got) != 1 || len(got[0]) != 5 {
		t.Fatalf("expected one chunk when size is not positive: %v", got)
	}
}

func TestRecordScopeConditions(t *testing.T) {
	conds := recordScopeConditions(scopeFor("epl", 0, ""))
	if len(conds) != 1 {
		t.Fatalf("unfiltered scope should only bind the league, got=%d", len(conds))
	}
	conds = recordScopeConditions(scopeFor("epl", 3, "p-andi"))
	if len(conds) != 3 {
		t.Fatalf("filtered scope should bind league, gameweek and participant, got=%d", len(conds))
	}
}

func scopeFor(leagueID string, gameweek int, participantKey string) prediction.Scope {
	return prediction.Scope{LeagueID: leagueID, Gameweek: gameweek, ParticipantKey: participantKey}
}
