package message

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/riskibarqy/prediction-verifier/internal/domain/team"
)

var scorePattern = regexp.MustCompile(`(\d{1,2})(?:\s*[-–—]\s*|\s+to\s+)(\d{1,2})`)

// findScore looks for exactly one "n-m" pair in folded text. Team spans are
// blanked first so digits inside team names never read as goals.
func findScore(folded string, mentions []team.Mention) (*ScorePair, error) {
	masked := []byte(folded)
	for _, m := range mentions {
		for i := m.Start; i < m.End && i < len(masked); i++ {
			masked[i] = ' '
		}
	}
	text := string(masked)

	var pairs []ScorePair
	for _, loc := range scorePattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > 0 && isDigit(text[loc[0]-1]) {
			continue
		}
		if loc[1] < len(text) && isDigit(text[loc[1]]) {
			continue
		}
		first, _ := strconv.Atoi(text[loc[2]:loc[3]])
		second, _ := strconv.Atoi(text[loc[4]:loc[5]])
		pairs = append(pairs, ScorePair{First: first, Second: second})
	}

	switch len(pairs) {
	case 0:
		return nil, nil
	case 1:
		return &pairs[0], nil
	default:
		return nil, fmt.Errorf("%w: %d score pairs", ErrAmbiguousScore, len(pairs))
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
