package fixture

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/prediction-verifier/internal/platform/textnorm"
)

var (
	ErrNotFound  = errors.New("fixture not found")
	ErrAmbiguous = errors.New("fixture ambiguous")
)

type pairKey struct {
	gameweek int
	home     string
	away     string
}

// Locator finds fixtures by team pair within a gameweek.
type Locator struct {
	byPair    map[pairKey]Fixture
	ambiguous map[pairKey]struct{}
}

// Resolution is a located fixture plus how the caller's team order maps onto it.
type Resolution struct {
	Fixture Fixture
	// FirstIsHome is true when the first team passed to Locate is the fixture's home team.
	FirstIsHome bool
}

func NewLocator(fixtures []Fixture) *Locator {
	l := &Locator{
		byPair:    make(map[pairKey]Fixture, len(fixtures)),
		ambiguous: make(map[pairKey]struct{}),
	}
	for _, item := range fixtures {
		key := pairKey{
			gameweek: item.Gameweek,
			home:     textnorm.Fold(item.HomeTeam),
			away:     textnorm.Fold(item.AwayTeam),
		}
		if existing, ok := l.byPair[key]; ok && existing.ID != item.ID {
			l.ambiguous[key] = struct{}{}
			continue
		}
		l.byPair[key] = item
	}
	return l
}

// Locate resolves two team names, given in the order they appeared in text,
// to a fixture in gameweek. Both orderings are tried; the returned fixture
// keeps its own home/away roles.
func (l *Locator) Locate(first, second string, gameweek int) (Resolution, error) {
	a := textnorm.Fold(first)
	b := textnorm.Fold(second)
	if a == "" || b == "" || a == b {
		return Resolution{}, fmt.Errorf("%w: need two distinct teams, got %q and %q", ErrNotFound, first, second)
	}

	forward := pairKey{gameweek: gameweek, home: a, away: b}
	reverse := pairKey{gameweek: gameweek, home: b, away: a}
	if l.isAmbiguous(forward) || l.isAmbiguous(reverse) {
		return Resolution{}, fmt.Errorf("%w: %s v %s listed more than once in gameweek %d", ErrAmbiguous, first, second, gameweek)
	}

	fwd, fwdOK := l.byPair[forward]
	rev, revOK := l.byPair[reverse]
	switch {
	case fwdOK && revOK:
		return Resolution{}, fmt.Errorf("%w: %s and %s meet twice in gameweek %d", ErrAmbiguous, first, second, gameweek)
	case fwdOK:
		return Resolution{Fixture: fwd, FirstIsHome: true}, nil
	case revOK:
		return Resolution{Fixture: rev, FirstIsHome: false}, nil
	default:
		return Resolution{}, fmt.Errorf("%w: %s v %s in gameweek %d", ErrNotFound, first, second, gameweek)
	}
}

func (l *Locator) isAmbiguous(key pairKey) bool {
	_, ok := l.ambiguous[key]
	return ok
}

// Project maps a score pair given in text order (first number belongs to the
// first team passed to Locate) onto the fixture's home and away slots.
func (r Resolution) Project(first, second int) (home, away int) {
	if r.FirstIsHome {
		return first, second
	}
	return second, first
}
