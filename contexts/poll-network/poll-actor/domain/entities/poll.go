package entities

import "fmt"

// Nomination is a single nominated option, attributed to the participant who
// proposed it.
type Nomination struct {
	UserID string
	Text   string
}

// ResultEntry is one row of the computed tally, written exactly once when the
// poll closes.
type ResultEntry struct {
	NominationID   string
	NominationText string
	Score          uint64
}

// NominationEntry pairs a nomination with its id for read surfaces.
type NominationEntry struct {
	NominationID string
	UserID       string
	Text         string
}

// ParticipantEntry pairs a participant id with its display name for read
// surfaces.
type ParticipantEntry struct {
	UserID string
	Name   string
}

// RankingEntry is one voter's submitted ranking for read surfaces.
type RankingEntry struct {
	UserID        string
	NominationIDs []string
}

// PollState is the whole state of one poll chain. It is exclusively owned by
// that chain's actor: calls load it, mutate a private copy, and persist it
// back, so a failed validation never leaves partial writes behind.
//
// Phase lifecycle: initialized (open for join/nominate) -> voting (after
// StartVote) -> closed (after ClosePoll, terminal). Topic, VotesPerVoter and
// AdminID are set once at initialization.
type PollState struct {
	Topic         string
	VotesPerVoter uint32
	AdminID       string
	HasStarted    bool
	IsClosed      bool
	Participants  map[string]string
	Nominations   map[string]Nomination
	Rankings      map[string][]string
	Results       []ResultEntry
}

// NewPollState returns an empty state with allocated maps.
func NewPollState() PollState {
	return PollState{
		Participants: make(map[string]string),
		Nominations:  make(map[string]Nomination),
		Rankings:     make(map[string][]string),
	}
}

// IsAdmin reports whether userID is this poll's sole administrator.
func (s PollState) IsAdmin(userID string) bool {
	return userID == s.AdminID
}

// IsParticipant reports whether userID has joined the poll.
func (s PollState) IsParticipant(userID string) bool {
	_, ok := s.Participants[userID]
	return ok
}

// NextNominationID derives the next dense sequential id. Nominations are
// never deleted, so the current count is always the next free slot.
func (s PollState) NextNominationID() string {
	return fmt.Sprintf("nom_%d", len(s.Nominations))
}

// Clone returns a deep copy so callers can mutate freely without touching the
// stored state until they persist.
func (s PollState) Clone() PollState {
	clone := s
	clone.Participants = make(map[string]string, len(s.Participants))
	for userID, name := range s.Participants {
		clone.Participants[userID] = name
	}
	clone.Nominations = make(map[string]Nomination, len(s.Nominations))
	for nominationID, nomination := range s.Nominations {
		clone.Nominations[nominationID] = nomination
	}
	clone.Rankings = make(map[string][]string, len(s.Rankings))
	for userID, ranked := range s.Rankings {
		clone.Rankings[userID] = append([]string(nil), ranked...)
	}
	clone.Results = append([]ResultEntry(nil), s.Results...)
	return clone
}
