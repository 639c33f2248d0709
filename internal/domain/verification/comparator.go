package verification

import (
	"sort"

	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
)

// Compare diffs reduced candidates against stored predictions. Every key in
// either input yields exactly one record. Callers stamp run metadata.
func Compare(survivors []ResolvedCandidate, stored []prediction.StoredPrediction) []Record {
	byKey := make(map[Key]*Record, len(survivors)+len(stored))
	out := make([]*Record, 0, len(survivors)+len(stored))

	for _, c := range survivors {
		key := c.Key()
		if _, ok := byKey[key]; ok {
			continue
		}
		rec := &Record{
			Category:       CategoryMessageOnly,
			ParticipantKey: c.ParticipantKey,
			FixtureID:      c.Fixture.ID,
			Gameweek:       c.Fixture.Gameweek,
			HomeTeam:       c.Fixture.HomeTeam,
			AwayTeam:       c.Fixture.AwayTeam,
		}
		if c.HasScore {
			rec.MessageHomeGoals = intPtr(c.HomeGoals)
			rec.MessageAwayGoals = intPtr(c.AwayGoals)
		}
		byKey[key] = rec
		out = append(out, rec)
	}

	seenStored := make(map[Key]struct{}, len(stored))
	for _, p := range stored {
		key := Key{ParticipantKey: p.ParticipantKey, FixtureID: p.FixtureID}
		if _, dup := seenStored[key]; dup {
			continue
		}
		seenStored[key] = struct{}{}

		rec, ok := byKey[key]
		if !ok {
			rec = &Record{
				Category:       CategoryDatabaseOnly,
				ParticipantKey: p.ParticipantKey,
				FixtureID:      p.FixtureID,
				Gameweek:       p.Gameweek,
				HomeTeam:       p.HomeTeam,
				AwayTeam:       p.AwayTeam,
			}
			byKey[key] = rec
			out = append(out, rec)
		}
		rec.StoredHomeGoals = intPtr(p.HomeGoals)
		rec.StoredAwayGoals = intPtr(p.AwayGoals)
		if !ok {
			continue
		}

		rec.Category = CategoryScoreMismatch
		if rec.MessageHomeGoals != nil && *rec.MessageHomeGoals == p.HomeGoals && *rec.MessageAwayGoals == p.AwayGoals {
			rec.Category = CategoryMatch
		}
	}

	records := make([]Record, 0, len(out))
	for _, rec := range out {
		records = append(records, *rec)
	}
	SortRecords(records)
	return records
}

// SortRecords orders records by participant, gameweek, then fixture.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.ParticipantKey != b.ParticipantKey {
			return a.ParticipantKey < b.ParticipantKey
		}
		if a.Gameweek != b.Gameweek {
			return a.Gameweek < b.Gameweek
		}
		return a.FixtureID < b.FixtureID
	})
}
