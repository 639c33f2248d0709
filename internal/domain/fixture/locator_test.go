package fixture

import (
	"errors"
	"testing"
)

func testFixtures() []Fixture {
	return []Fixture{
		{ID: "fx-42", LeagueID: "epl", Gameweek: 1, HomeTeam: "Aston Villa", AwayTeam: "Burnley"},
		{ID: "fx-43", LeagueID: "epl", Gameweek: 1, HomeTeam: "Arsenal", AwayTeam: "Wolves"},
		{ID: "fx-60", LeagueID: "epl", Gameweek: 20, HomeTeam: "Burnley", AwayTeam: "Aston Villa"},
	}
}

func TestLocator_Locate(t *testing.T) {
	locator := NewLocator(testFixtures())

	t.Run("text order equals home order", func(t *testing.T) {
		res, err := locator.Locate("Aston Villa", "Burnley", 1)
		if err != nil {
			t.Fatalf("locate: %v", err)
		}
		if res.Fixture.ID != "fx-42" || !res.FirstIsHome {
			t.Fatalf("unexpected resolution: %+v", res)
		}
	})

	t.Run("reversed text order keeps fixture roles", func(t *testing.T) {
		res, err := locator.Locate("burnley", "ASTON VILLA", 1)
		if err != nil {
			t.Fatalf("locate: %v", err)
		}
		if res.Fixture.ID != "fx-42" || res.FirstIsHome {
			t.Fatalf("unexpected resolution: %+v", res)
		}
		if res.Fixture.HomeTeam != "Aston Villa" {
			t.Fatalf("expected fixture home team to stay Aston Villa, got %s", res.Fixture.HomeTeam)
		}
	})

	t.Run("gameweek selects the reverse fixture", func(t *testing.T) {
		res, err := locator.Locate("Aston Villa", "Burnley", 20)
		if err != nil {
			t.Fatalf("locate: %v", err)
		}
		if res.Fixture.ID != "fx-60" || res.FirstIsHome {
			t.Fatalf("unexpected resolution: %+v", res)
		}
	})

	t.Run("wrong gameweek is unresolved", func(t *testing.T) {
		_, err := locator.Locate("Arsenal", "Wolves", 2)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("same team twice is unresolved", func(t *testing.T) {
		_, err := locator.Locate("Arsenal", "arsenal", 1)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestLocator_OrderIndependentProjection(t *testing.T) {
	locator := NewLocator(testFixtures())

	forward, err := locator.Locate("Aston Villa", "Burnley", 1)
	if err != nil {
		t.Fatalf("locate forward: %v", err)
	}
	reverse, err := locator.Locate("Burnley", "Aston Villa", 1)
	if err != nil {
		t.Fatalf("locate reverse: %v", err)
	}

	// "Aston Villa 2-1 Burnley" and "Burnley 1-2 Aston Villa" are the same prediction.
	fh, fa := forward.Project(2, 1)
	rh, ra := reverse.Project(1, 2)
	if forward.Fixture.ID != reverse.Fixture.ID {
		t.Fatalf("fixture ids differ: %s vs %s", forward.Fixture.ID, reverse.Fixture.ID)
	}
	if fh != 2 || fa != 1 || rh != 2 || ra != 1 {
		t.Fatalf("unexpected projection: forward=%d-%d reverse=%d-%d", fh, fa, rh, ra)
	}
}

func TestLocator_DuplicatePairIsAmbiguous(t *testing.T) {
	locator := NewLocator([]Fixture{
		{ID: "a", Gameweek: 3, HomeTeam: "Arsenal", AwayTeam: "Wolves"},
		{ID: "b", Gameweek: 3, HomeTeam: "Wolves", AwayTeam: "Arsenal"},
		{ID: "c", Gameweek: 4, HomeTeam: "Chelsea", AwayTeam: "Luton"},
		{ID: "d", Gameweek: 4, HomeTeam: "Chelsea", AwayTeam: "Luton"},
	})

	if _, err := locator.Locate("Arsenal", "Wolves", 3); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous for both orderings, got %v", err)
	}
	if _, err := locator.Locate("Luton", "Chelsea", 4); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous for duplicate listing, got %v", err)
	}
}
