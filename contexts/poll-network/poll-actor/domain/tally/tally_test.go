package tally

import (
	"testing"

	"ballot/contexts/poll-network/poll-actor/domain/entities"
)

func TestComputeBordaScoresAndOrdering(t *testing.T) {
	nominations := map[string]entities.Nomination{
		"nom_0": {UserID: "alice", Text: "Pizza"},
		"nom_1": {UserID: "bob", Text: "Sushi"},
	}
	rankings := map[string][]string{
		"alice": {"nom_0", "nom_1"},
		"bob":   {"nom_1"},
	}

	results := Compute(2, rankings, nominations)
	if len(results) != 2 {
		t.Fatalf("expected 2 result entries, got %d", len(results))
	}

	// Pizza: 2 from alice's first place. Sushi: 1 from alice's second
	// place plus 2 from bob's first place.
	if results[0].NominationID != "nom_1" || results[0].Score != 3 {
		t.Fatalf("expected nom_1 with score 3 first, got %s with score %d", results[0].NominationID, results[0].Score)
	}
	if results[0].NominationText != "Sushi" {
		t.Fatalf("expected Sushi text, got %q", results[0].NominationText)
	}
	if results[1].NominationID != "nom_0" || results[1].Score != 2 {
		t.Fatalf("expected nom_0 with score 2 second, got %s with score %d", results[1].NominationID, results[1].Score)
	}
}

func TestComputeTieBreaksByAscendingNominationID(t *testing.T) {
	nominations := map[string]entities.Nomination{
		"nom_0": {UserID: "a", Text: "First"},
		"nom_1": {UserID: "b", Text: "Second"},
	}
	rankings := map[string][]string{
		"a": {"nom_1"},
		"b": {"nom_0"},
	}

	results := Compute(1, rankings, nominations)
	if len(results) != 2 {
		t.Fatalf("expected 2 result entries, got %d", len(results))
	}
	if results[0].Score != results[1].Score {
		t.Fatalf("expected a tie, got %d and %d", results[0].Score, results[1].Score)
	}
	if results[0].NominationID != "nom_0" || results[1].NominationID != "nom_1" {
		t.Fatalf("expected ascending id order on ties, got %s then %s", results[0].NominationID, results[1].NominationID)
	}
}

func TestComputePositionsBeyondVotesPerVoterScoreZero(t *testing.T) {
	nominations := map[string]entities.Nomination{
		"nom_0": {UserID: "a", Text: "A"},
		"nom_1": {UserID: "a", Text: "B"},
		"nom_2": {UserID: "a", Text: "C"},
	}
	rankings := map[string][]string{
		"a": {"nom_0", "nom_1", "nom_2"},
	}

	// votes_per_voter is 2, so the third position contributes nothing
	// instead of underflowing.
	results := Compute(2, rankings, nominations)
	scores := map[string]uint64{}
	for _, entry := range results {
		scores[entry.NominationID] = entry.Score
	}
	if scores["nom_0"] != 2 || scores["nom_1"] != 1 || scores["nom_2"] != 0 {
		t.Fatalf("unexpected scores: %v", scores)
	}
}

func TestComputeUnknownNominationGetsFallbackText(t *testing.T) {
	rankings := map[string][]string{
		"a": {"nom_9"},
	}

	results := Compute(1, rankings, map[string]entities.Nomination{})
	if len(results) != 1 {
		t.Fatalf("expected 1 result entry, got %d", len(results))
	}
	if results[0].NominationID != "nom_9" || results[0].NominationText != "Unknown" {
		t.Fatalf("expected fallback text for unknown nomination, got %+v", results[0])
	}
	if results[0].Score != 1 {
		t.Fatalf("expected score 1, got %d", results[0].Score)
	}
}

func TestComputeWithNoRankingsIsEmpty(t *testing.T) {
	nominations := map[string]entities.Nomination{
		"nom_0": {UserID: "a", Text: "Only"},
	}

	// Only nominations that appear in at least one ranking score; an
	// unranked nomination never enters the results.
	results := Compute(3, nil, nominations)
	if len(results) != 0 {
		t.Fatalf("expected no result entries without rankings, got %d", len(results))
	}
}
