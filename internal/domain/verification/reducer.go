package verification

import "sort"

// Outranks reports whether a should survive over b for the same key.
// Order: scored before unscored, then later timestamp (missing is earliest),
// then higher Seq. SourceID and Line only separate candidates that share a
// Seq, which happens when they came from different parser instances.
func Outranks(a, b ResolvedCandidate) bool {
	if a.HasScore != b.HasScore {
		return a.HasScore
	}

	switch at, bt := a.Timestamp, b.Timestamp; {
	case at == nil && bt != nil:
		return false
	case at != nil && bt == nil:
		return true
	case at != nil && bt != nil && !at.Equal(*bt):
		return at.After(*bt)
	}

	if a.Seq != b.Seq {
		return a.Seq > b.Seq
	}
	if a.SourceID != b.SourceID {
		return a.SourceID > b.SourceID
	}
	return a.Line > b.Line
}

// Reduce keeps one candidate per (participant, fixture). The result is sorted
// by participant then fixture and does not depend on input order.
func Reduce(candidates []ResolvedCandidate) []ResolvedCandidate {
	best := make(map[Key]ResolvedCandidate, len(candidates))
	for _, c := range candidates {
		key := c.Key()
		current, ok := best[key]
		if !ok || Outranks(c, current) {
			best[key] = c
		}
	}

	out := make([]ResolvedCandidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ParticipantKey != out[j].ParticipantKey {
			return out[i].ParticipantKey < out[j].ParticipantKey
		}
		return out[i].Fixture.ID < out[j].Fixture.ID
	})
	return out
}
