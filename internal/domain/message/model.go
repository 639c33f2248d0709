package message

import (
	"errors"
	"time"
)

// Kind selects the line format of a source document.
type Kind string

const (
	// KindPlain is an annotated text document: optional timestamp lines head a
	// block and "Name: ..." lines attribute the text that follows.
	KindPlain Kind = "plain"
	// KindChatExport is a chat transcript where each message line carries its
	// own "[date, time] Sender: text" prefix.
	KindChatExport Kind = "chat_export"
)

var (
	ErrUnsupportedKind = errors.New("unsupported document kind")
	ErrAmbiguousTeams  = errors.New("ambiguous team mentions")
	ErrAmbiguousScore  = errors.New("ambiguous score")
	ErrUnattributed    = errors.New("text has no sender")
	// ErrUnparsableTimestamp marks chat lines whose prefix date or time could
	// not be read in the document's date order.
	ErrUnparsableTimestamp = errors.New("unparsable message timestamp")
)

// Document is one already-retrieved source of prediction messages.
type Document struct {
	ID       string
	Kind     Kind
	Gameweek int
	Body     string
}

// ScorePair holds goals in text order: First belongs to the first-mentioned team.
type ScorePair struct {
	First  int
	Second int
}

// ParsedCandidate is one prediction-like clause before identity resolution.
// Score is only ever set when TeamMentions holds exactly two teams.
type ParsedCandidate struct {
	SourceID       string
	Line           int
	Text           string
	Gameweek       int
	RawParticipant string
	// TeamMentions are canonical team names ordered by position in Text.
	TeamMentions []string
	Score        *ScorePair
	// Timestamp is nil when the source carried none; it then orders before any time.
	Timestamp *time.Time
	// Seq is the candidate's position in parse order across a run.
	Seq int64
}

func (c ParsedCandidate) HasScore() bool {
	return c.Score != nil
}
