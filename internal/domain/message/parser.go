package message

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-verifier/internal/domain/team"
	"github.com/riskibarqy/prediction-verifier/internal/platform/textnorm"
)

// Parser extracts candidates from documents. One Parser numbers candidates
// for one run, so it is not safe for concurrent use.
type Parser struct {
	directory *team.Directory
	location  *time.Location
	seq       int64
}

func NewParser(directory *team.Directory, location *time.Location) *Parser {
	if location == nil {
		location = time.UTC
	}
	return &Parser{directory: directory, location: location}
}

// Parse lazily yields one candidate per clause that mentions a team. A
// non-nil error marks a clause that had to be dropped; the accompanying
// candidate then only carries its source location, sender and text.
func (p *Parser) Parse(doc Document) iter.Seq2[ParsedCandidate, error] {
	return func(yield func(ParsedCandidate, error) bool) {
		decoder, err := newDecoder(doc.Kind, doc.Body, p.location)
		if err != nil {
			yield(ParsedCandidate{SourceID: doc.ID, Gameweek: doc.Gameweek}, err)
			return
		}

		lineNo := 0
		for raw := range strings.Lines(doc.Body) {
			lineNo++
			line, ok := decoder.decode(strings.TrimRight(raw, "\r\n"))
			if !ok {
				continue
			}
			for _, clause := range splitClauses(line.text) {
				base := ParsedCandidate{
					SourceID:       doc.ID,
					Line:           lineNo,
					Text:           clause,
					Gameweek:       doc.Gameweek,
					RawParticipant: line.sender,
					Timestamp:      line.at,
				}
				candidate, emit, err := p.extract(base, line.err)
				if !emit {
					continue
				}
				if !yield(candidate, err) {
					return
				}
			}
		}
	}
}

// extract turns one clause into a candidate. lineErr is a problem with the
// clause's line itself; it only surfaces for clauses that mention a team.
func (p *Parser) extract(c ParsedCandidate, lineErr error) (ParsedCandidate, bool, error) {
	folded := textnorm.Fold(c.Text)
	mentions, err := p.directory.Scan(folded)
	if err != nil {
		return c, true, fmt.Errorf("%w: %w", ErrAmbiguousTeams, err)
	}
	if len(mentions) == 0 {
		return c, false, nil
	}
	if lineErr != nil {
		return c, true, lineErr
	}
	if len(mentions) > 2 {
		return c, true, fmt.Errorf("%w: %d teams in one clause", ErrAmbiguousTeams, len(mentions))
	}
	if strings.TrimSpace(c.RawParticipant) == "" {
		return c, true, ErrUnattributed
	}

	names := make([]string, 0, len(mentions))
	for _, m := range mentions {
		names = append(names, m.Team)
	}
	c.TeamMentions = names

	if len(mentions) == 2 {
		score, err := findScore(folded, mentions)
		if err != nil {
			return c, true, err
		}
		c.Score = score
	}

	p.seq++
	c.Seq = p.seq
	return c, true, nil
}

func splitClauses(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == '|' || r == ','
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
