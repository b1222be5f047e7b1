package tally

import (
	"sort"

	"ballot/contexts/poll-network/poll-actor/domain/entities"
)

// Compute aggregates ranked votes into the final ordered results using
// Borda-style scoring: position i of a ranking awards votesPerVoter-i points,
// saturating at zero for positions at or past votesPerVoter.
//
// The output is deterministic for any map iteration order: scores are
// accumulated per nomination id, materialized in ascending id order, then
// stable-sorted descending by score. Equal scores therefore keep ascending
// nomination-id order, which is the tie-break rule.
func Compute(
	votesPerVoter uint32,
	rankings map[string][]string,
	nominations map[string]entities.Nomination,
) []entities.ResultEntry {
	scores := make(map[string]uint64)
	for _, ranked := range rankings {
		for position, nominationID := range ranked {
			var points uint64
			if uint64(position) < uint64(votesPerVoter) {
				points = uint64(votesPerVoter) - uint64(position)
			}
			scores[nominationID] += points
		}
	}

	ids := make([]string, 0, len(scores))
	for nominationID := range scores {
		ids = append(ids, nominationID)
	}
	sort.Strings(ids)

	results := make([]entities.ResultEntry, 0, len(ids))
	for _, nominationID := range ids {
		// "Unknown" is only reachable if a ranking references an id the poll
		// never handed out; nominations are never deleted.
		text := "Unknown"
		if nomination, ok := nominations[nominationID]; ok {
			text = nomination.Text
		}
		results = append(results, entities.ResultEntry{
			NominationID:   nominationID,
			NominationText: text,
			Score:          scores[nominationID],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
