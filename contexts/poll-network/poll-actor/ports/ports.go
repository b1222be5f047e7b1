package ports

import (
	"context"

	"ballot/contexts/poll-network/poll-actor/domain/entities"
)

// StateStore persists whole-poll state per chain. Load must return an
// isolated copy (domain code mutates it before deciding whether to Save), and
// Load of a chain that was never initialized fails with ErrPollNotFound.
//
// Calls against one chain are serialized by the runtime substrate, so
// implementations only need to be safe for concurrent access across chains.
type StateStore interface {
	Load(ctx context.Context, chainID string) (entities.PollState, error)
	Save(ctx context.Context, chainID string, state entities.PollState) error
}
