package commands

import (
	"context"
	"errors"
	"fmt"

	application "ballot/contexts/poll-network/poll-actor/application"
	"ballot/contexts/poll-network/poll-actor/domain/entities"
	domainerrors "ballot/contexts/poll-network/poll-actor/domain/errors"
	"ballot/internal/shared/protocol"
)

// HandleMessage applies a remote-origin message to the chain that owns the
// poll. Except for InitializePoll, every variant validates and mutates
// exactly like its local operation counterpart; the routing substrate is
// trusted to have authenticated the acting identity it carries.
func (uc PollUseCase) HandleMessage(ctx context.Context, chainID string, message protocol.Message) error {
	switch m := message.(type) {
	case protocol.InitializePoll:
		return uc.initializePoll(ctx, chainID, m)
	case protocol.Nominate:
		_, err := uc.Nominate(ctx, NominateCommand{
			ChainID: chainID,
			Text:    m.Text,
			Owner:   m.UserID,
		})
		return err
	case protocol.Vote:
		return uc.Vote(ctx, VoteCommand{
			ChainID:  chainID,
			Rankings: m.Rankings,
			Owner:    m.UserID,
		})
	case protocol.StartVote:
		return uc.StartVote(ctx, StartVoteCommand{
			ChainID: chainID,
			Owner:   m.UserID,
		})
	case protocol.ClosePoll:
		_, err := uc.ClosePoll(ctx, ClosePollCommand{
			ChainID: chainID,
			Owner:   m.UserID,
		})
		return err
	default:
		return fmt.Errorf("unhandled message kind %q", message.Kind())
	}
}

// initializePoll seeds the poll registers and auto-joins the admin under the
// display name "Admin". There is no idempotency guard: the routing substrate
// delivers InitializePoll exactly once by construction, and a re-delivery
// would silently reset topic, admin, and phase flags while keeping any
// existing participants, nominations, and rankings.
func (uc PollUseCase) initializePoll(ctx context.Context, chainID string, message protocol.InitializePoll) error {
	logger := application.ResolveLogger(uc.Logger)
	state, err := uc.States.Load(ctx, chainID)
	if errors.Is(err, domainerrors.ErrPollNotFound) {
		state = entities.NewPollState()
	} else if err != nil {
		return err
	}
	state.Topic = message.Topic
	state.VotesPerVoter = message.VotesPerVoter
	state.AdminID = message.AdminID
	state.HasStarted = false
	state.IsClosed = false
	state.Results = nil
	state.Participants[message.AdminID] = "Admin"
	if err := uc.States.Save(ctx, chainID, state); err != nil {
		return err
	}
	logger.Info("poll initialized",
		"event", "poll_initialized",
		"module", "poll-network/poll-actor",
		"layer", "application",
		"chain_id", chainID,
		"admin_id", message.AdminID,
		"votes_per_voter", message.VotesPerVoter,
	)
	return nil
}
