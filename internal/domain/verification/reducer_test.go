package verification

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestReduce_ScoredBeatsLaterUnscored(t *testing.T) {
	scored := ResolvedCandidate{ParticipantKey: "7", Fixture: villaBurnley, HasScore: true, HomeGoals: 1, AwayGoals: 1, Seq: 1}
	later := ResolvedCandidate{ParticipantKey: "7", Fixture: villaBurnley, Timestamp: at(20), Seq: 2}

	got := Reduce([]ResolvedCandidate{later, scored})
	if len(got) != 1 {
		t.Fatalf("expected one survivor, got=%d", len(got))
	}
	if !got[0].HasScore || got[0].HomeGoals != 1 || got[0].AwayGoals != 1 {
		t.Fatalf("expected scored 1-1 survivor, got=%+v", got[0])
	}
}

func TestReduce_LaterTimestampThenSeq(t *testing.T) {
	early := ResolvedCandidate{ParticipantKey: "7", Fixture: villaBurnley, HasScore: true, HomeGoals: 3, Timestamp: at(9), Seq: 5}
	late := ResolvedCandidate{ParticipantKey: "7", Fixture: villaBurnley, HasScore: true, HomeGoals: 1, Timestamp: at(10), Seq: 1}
	untimed := ResolvedCandidate{ParticipantKey: "7", Fixture: villaBurnley, HasScore: true, HomeGoals: 4, Seq: 9}

	got := Reduce([]ResolvedCandidate{early, untimed, late})
	if len(got) != 1 || got[0].HomeGoals != 1 {
		t.Fatalf("expected latest timestamp to win, got=%+v", got)
	}

	dupA := ResolvedCandidate{ParticipantKey: "7", Fixture: villaBurnley, HasScore: true, HomeGoals: 0, Timestamp: at(10), Seq: 3}
	dupB := ResolvedCandidate{ParticipantKey: "7", Fixture: villaBurnley, HasScore: true, HomeGoals: 2, Timestamp: at(10), Seq: 4}
	got = Reduce([]ResolvedCandidate{dupB, dupA})
	if len(got) != 1 || got[0].Seq != 4 {
		t.Fatalf("expected higher seq to break the tie, got=%+v", got)
	}
}

func TestReduce_KeepsOnePerKeySorted(t *testing.T) {
	got := Reduce([]ResolvedCandidate{
		{ParticipantKey: "9", Fixture: derby, Seq: 1},
		{ParticipantKey: "7", Fixture: derby, Seq: 2},
		{ParticipantKey: "7", Fixture: villaBurnley, Seq: 3},
		{ParticipantKey: "7", Fixture: villaBurnley, Seq: 4},
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 survivors, got=%d", len(got))
	}
	want := []Key{
		{ParticipantKey: "7", FixtureID: "42"},
		{ParticipantKey: "7", FixtureID: "50"},
		{ParticipantKey: "9", FixtureID: "50"},
	}
	for i, k := range want {
		if got[i].Key() != k {
			t.Fatalf("survivor %d: got=%+v want=%+v", i, got[i].Key(), k)
		}
	}
}

func TestReduce_PropertiesOverRandomInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	base := time.Date(2024, 8, 17, 12, 0, 0, 0, time.UTC)

	for round := 0; round < 200; round++ {
		n := 1 + rng.IntN(6)
		candidates := make([]ResolvedCandidate, 0, n)
		anyScored := false
		for i := 0; i < n; i++ {
			c := ResolvedCandidate{
				ParticipantKey: "7",
				Fixture:        villaBurnley,
				HasScore:       rng.IntN(2) == 0,
				HomeGoals:      rng.IntN(4),
				AwayGoals:      rng.IntN(4),
				Seq:            int64(i + 1),
			}
			if rng.IntN(3) > 0 {
				ts := base.Add(time.Duration(rng.IntN(3)) * time.Hour)
				c.Timestamp = &ts
			}
			anyScored = anyScored || c.HasScore
			candidates = append(candidates, c)
		}

		first := Reduce(candidates)
		if len(first) != 1 {
			t.Fatalf("round %d: expected one survivor, got=%d", round, len(first))
		}
		if anyScored && !first[0].HasScore {
			t.Fatalf("round %d: unscored candidate survived over a scored one", round)
		}

		again := Reduce(first)
		if again[0].Seq != first[0].Seq {
			t.Fatalf("round %d: reduction is not idempotent", round)
		}

		shuffled := append([]ResolvedCandidate(nil), candidates...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if got := Reduce(shuffled); got[0].Seq != first[0].Seq {
			t.Fatalf("round %d: survivor depends on input order: %d vs %d", round, got[0].Seq, first[0].Seq)
		}

		for _, c := range candidates {
			if c.Seq != first[0].Seq && Outranks(c, first[0]) {
				t.Fatalf("round %d: candidate %d outranks survivor %d", round, c.Seq, first[0].Seq)
			}
		}
	}
}
