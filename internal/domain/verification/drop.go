package verification

import (
	"errors"

	"github.com/riskibarqy/prediction-verifier/internal/domain/message"
)

type DropReason string

const (
	DropUnresolvedParticipant DropReason = "UNRESOLVED_PARTICIPANT"
	DropUnresolvedFixture     DropReason = "UNRESOLVED_FIXTURE"
	DropExcludedByRule        DropReason = "EXCLUDED_BY_RULE"
	DropAmbiguousTeams        DropReason = "AMBIGUOUS_TEAMS"
	DropAmbiguousScore        DropReason = "AMBIGUOUS_SCORE"
	DropUnattributed          DropReason = "UNATTRIBUTED"
	DropUnparsableTimestamp   DropReason = "UNPARSABLE_TIMESTAMP"
	DropUnknownRound          DropReason = "UNKNOWN_ROUND"
	DropUnsupportedSource     DropReason = "UNSUPPORTED_SOURCE"
)

// DropReasons lists every reason in report order.
var DropReasons = []DropReason{
	DropUnresolvedParticipant,
	DropUnresolvedFixture,
	DropExcludedByRule,
	DropAmbiguousTeams,
	DropAmbiguousScore,
	DropUnattributed,
	DropUnparsableTimestamp,
	DropUnknownRound,
	DropUnsupportedSource,
}

var (
	ErrUnresolvedParticipant = errors.New("participant not resolved")
	ErrUnresolvedFixture     = errors.New("fixture not resolved")
	ErrExcludedByRule        = errors.New("announcement without score")
	ErrUnknownRound          = errors.New("round unknown")
)

var reasonByErr = []struct {
	err    error
	reason DropReason
}{
	{err: ErrExcludedByRule, reason: DropExcludedByRule},
	{err: ErrUnresolvedParticipant, reason: DropUnresolvedParticipant},
	{err: ErrUnresolvedFixture, reason: DropUnresolvedFixture},
	{err: ErrUnknownRound, reason: DropUnknownRound},
	{err: message.ErrAmbiguousTeams, reason: DropAmbiguousTeams},
	{err: message.ErrAmbiguousScore, reason: DropAmbiguousScore},
	{err: message.ErrUnattributed, reason: DropUnattributed},
	{err: message.ErrUnparsableTimestamp, reason: DropUnparsableTimestamp},
	{err: message.ErrUnsupportedKind, reason: DropUnsupportedSource},
}

// ReasonOf classifies a routine extraction or resolution error. It returns
// false for errors that are not expected drops.
func ReasonOf(err error) (DropReason, bool) {
	if err == nil {
		return "", false
	}
	for _, item := range reasonByErr {
		if errors.Is(err, item.err) {
			return item.reason, true
		}
	}
	return "", false
}

// Dropped is one input entry left out of reconciliation, kept for the run summary.
type Dropped struct {
	Reason         DropReason `json:"reason"`
	SourceID       string     `json:"source_id"`
	Line           int        `json:"line,omitempty"`
	RawParticipant string     `json:"raw_participant,omitempty"`
	Text           string     `json:"text,omitempty"`
	Detail         string     `json:"detail,omitempty"`
}

// DroppedFrom describes a parsed candidate rejected with err.
func DroppedFrom(pc message.ParsedCandidate, reason DropReason, err error) Dropped {
	d := Dropped{
		Reason:         reason,
		SourceID:       pc.SourceID,
		Line:           pc.Line,
		RawParticipant: pc.RawParticipant,
		Text:           pc.Text,
	}
	if err != nil {
		d.Detail = err.Error()
	}
	return d
}
