package team

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/riskibarqy/prediction-verifier/internal/platform/textnorm"
)

var (
	ErrAmbiguousMention    = errors.New("ambiguous team mention")
	ErrConflictingSpelling = errors.New("spelling maps to more than one team")
)

// Mention is one recognised team inside folded text; Start and End are byte offsets.
type Mention struct {
	Team  string
	Start int
	End   int
}

type spelling struct {
	folded string
	team   string
}

// Directory is the immutable set of team spellings scanned for in message text.
// Every spelling resolves to the team's canonical display name.
type Directory struct {
	spellings []spelling
}

func NewDirectory(teams []Team) (*Directory, error) {
	owner := make(map[string]string)
	for _, item := range teams {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("team %q: %w", item.ID, err)
		}
		for _, name := range item.Spellings() {
			folded := textnorm.Fold(name)
			if folded == "" {
				continue
			}
			if existing, ok := owner[folded]; ok && existing != item.Name {
				return nil, fmt.Errorf("%w: %q used by %q and %q", ErrConflictingSpelling, name, existing, item.Name)
			}
			owner[folded] = item.Name
		}
	}

	spellings := make([]spelling, 0, len(owner))
	for folded, name := range owner {
		spellings = append(spellings, spelling{folded: folded, team: name})
	}
	sort.Slice(spellings, func(i, j int) bool {
		return spellings[i].folded < spellings[j].folded
	})

	return &Directory{spellings: spellings}, nil
}

// Len returns the number of distinct spellings.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.spellings)
}

// Scan finds team mentions in text that has already been passed through
// textnorm.Fold. Mentions come back in order of first appearance, one per team.
//
// At any start offset the longest spelling wins and shorter spellings nested
// inside it are discarded. Spellings that cross the boundary of a selected
// mention cannot be attributed to either team, so the whole scan fails with
// ErrAmbiguousMention.
func (d *Directory) Scan(folded string) ([]Mention, error) {
	if d == nil || folded == "" {
		return nil, nil
	}

	var found []Mention
	for _, sp := range d.spellings {
		offset := 0
		for offset < len(folded) {
			idx := strings.Index(folded[offset:], sp.folded)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(sp.folded)
			if isWordBoundary(folded, start, end) {
				found = append(found, Mention{Team: sp.team, Start: start, End: end})
			}
			offset = start + 1
		}
	}
	if len(found) == 0 {
		return nil, nil
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Start != found[j].Start {
			return found[i].Start < found[j].Start
		}
		return found[i].End > found[j].End
	})

	selected := make([]Mention, 0, 2)
	for _, m := range found {
		if n := len(selected); n > 0 && m.Start < selected[n-1].End {
			if m.End <= selected[n-1].End {
				continue
			}
			last := selected[n-1]
			return nil, fmt.Errorf("%w: %q overlaps %q", ErrAmbiguousMention, folded[m.Start:m.End], folded[last.Start:last.End])
		}
		selected = append(selected, m)
	}

	seen := make(map[string]struct{}, len(selected))
	out := selected[:0]
	for _, m := range selected {
		if _, ok := seen[m.Team]; ok {
			continue
		}
		seen[m.Team] = struct{}{}
		out = append(out, m)
	}

	return out, nil
}

func isWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if textnorm.IsWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if textnorm.IsWordRune(r) {
			return false
		}
	}
	return true
}
