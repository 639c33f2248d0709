package verification

import (
	"fmt"

	"github.com/riskibarqy/prediction-verifier/internal/domain/fixture"
	"github.com/riskibarqy/prediction-verifier/internal/domain/message"
	"github.com/riskibarqy/prediction-verifier/internal/domain/participant"
	"github.com/riskibarqy/prediction-verifier/internal/platform/textnorm"
)

// CandidateResolver turns parsed candidates into canonical ones. It holds only
// read-only lookup tables and is safe to share.
type CandidateResolver struct {
	aliases    *participant.AliasTable
	locator    *fixture.Locator
	announcers map[string]struct{}
}

// NewCandidateResolver builds a resolver. announcementSenders may hold raw
// sender names or participant keys; both are compared after folding.
func NewCandidateResolver(aliases *participant.AliasTable, locator *fixture.Locator, announcementSenders []string) *CandidateResolver {
	announcers := make(map[string]struct{}, len(announcementSenders))
	for _, sender := range announcementSenders {
		if folded := textnorm.Fold(sender); folded != "" {
			announcers[folded] = struct{}{}
		}
	}
	return &CandidateResolver{
		aliases:    aliases,
		locator:    locator,
		announcers: announcers,
	}
}

// Resolve maps pc onto canonical participant and fixture identities. Every
// error it returns is a routine drop classified by ReasonOf.
func (r *CandidateResolver) Resolve(pc message.ParsedCandidate) (ResolvedCandidate, error) {
	key, known := r.aliases.Resolve(pc.RawParticipant)
	if !pc.HasScore() && (r.isAnnouncer(pc.RawParticipant) || (known && r.isAnnouncer(key))) {
		return ResolvedCandidate{}, fmt.Errorf("%w: %s", ErrExcludedByRule, pc.RawParticipant)
	}
	if !known {
		return ResolvedCandidate{}, fmt.Errorf("%w: %q", ErrUnresolvedParticipant, pc.RawParticipant)
	}
	if pc.Gameweek <= 0 {
		return ResolvedCandidate{}, fmt.Errorf("%w: source %s", ErrUnknownRound, pc.SourceID)
	}
	if len(pc.TeamMentions) != 2 {
		return ResolvedCandidate{}, fmt.Errorf("%w: %d team mention(s)", ErrUnresolvedFixture, len(pc.TeamMentions))
	}

	resolution, err := r.locator.Locate(pc.TeamMentions[0], pc.TeamMentions[1], pc.Gameweek)
	if err != nil {
		return ResolvedCandidate{}, fmt.Errorf("%w: %w", ErrUnresolvedFixture, err)
	}

	out := ResolvedCandidate{
		ParticipantKey: key,
		Fixture:        resolution.Fixture,
		Timestamp:      pc.Timestamp,
		Seq:            pc.Seq,
		SourceID:       pc.SourceID,
		Line:           pc.Line,
	}
	if pc.Score != nil {
		out.HomeGoals, out.AwayGoals = resolution.Project(pc.Score.First, pc.Score.Second)
		out.HasScore = true
	}
	return out, nil
}

func (r *CandidateResolver) isAnnouncer(name string) bool {
	_, ok := r.announcers[textnorm.Fold(name)]
	return ok
}
