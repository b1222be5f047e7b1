package memory

import (
	"context"
	"sync"

	"ballot/contexts/poll-network/poll-actor/domain/entities"
	domainerrors "ballot/contexts/poll-network/poll-actor/domain/errors"
)

// Store keeps whole-poll state per chain in process memory. Load and Save
// exchange deep copies, so a caller that aborts mid-mutation leaves the
// stored state untouched.
type Store struct {
	mu     sync.RWMutex
	states map[string]entities.PollState
}

func NewStore() *Store {
	return &Store{
		states: make(map[string]entities.PollState),
	}
}

func (s *Store) Load(_ context.Context, chainID string) (entities.PollState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[chainID]
	if !ok {
		return entities.PollState{}, domainerrors.ErrPollNotFound
	}
	return state.Clone(), nil
}

func (s *Store) Save(_ context.Context, chainID string, state entities.PollState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chainID] = state.Clone()
	return nil
}
