package commands

import (
	"context"
	"log/slog"

	application "ballot/contexts/poll-network/poll-actor/application"
	"ballot/contexts/poll-network/poll-actor/domain/entities"
	domainerrors "ballot/contexts/poll-network/poll-actor/domain/errors"
	"ballot/contexts/poll-network/poll-actor/domain/tally"
	"ballot/contexts/poll-network/poll-actor/ports"
)

// JoinCommand registers (or renames) a participant. Joining stays open during
// the voting phase; only closing shuts it.
type JoinCommand struct {
	ChainID string
	Name    string
	Owner   string
}

// NominateCommand proposes an option. Allowed until voting starts; the
// is-closed flag deliberately does not gate this path.
type NominateCommand struct {
	ChainID string
	Text    string
	Owner   string
}

// NominateResult carries the sequential id assigned to the new nomination.
type NominateResult struct {
	NominationID string
}

// VoteCommand submits a full ranking. Re-voting overwrites the previous
// ranking, last write wins.
type VoteCommand struct {
	ChainID  string
	Rankings []string
	Owner    string
}

// StartVoteCommand opens the voting phase, admin only. Re-invoking once
// started is a no-op, not an error.
type StartVoteCommand struct {
	ChainID string
	Owner   string
}

// ClosePollCommand closes the poll, admin only, exactly once; the tally runs
// synchronously inside the close.
type ClosePollCommand struct {
	ChainID string
	Owner   string
}

// PollUseCase executes operations against the poll a chain owns. Every method
// loads the state, validates phase and identity, mutates its private copy,
// and persists only on success, so failures abort with zero partial mutation.
// Per-chain serialization is the runtime substrate's job, not this type's.
type PollUseCase struct {
	States ports.StateStore
	Logger *slog.Logger
}

// Join upserts participants[owner]; the sole guard is the closed flag.
func (uc PollUseCase) Join(ctx context.Context, cmd JoinCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	state, err := uc.States.Load(ctx, cmd.ChainID)
	if err != nil {
		return err
	}
	if state.IsClosed {
		logger.Warn("join denied on closed poll",
			"event", "poll_join_denied",
			"module", "poll-network/poll-actor",
			"layer", "application",
			"chain_id", cmd.ChainID,
			"user_id", cmd.Owner,
		)
		return domainerrors.ErrPollClosed
	}
	state.Participants[cmd.Owner] = cmd.Name
	if err := uc.States.Save(ctx, cmd.ChainID, state); err != nil {
		return err
	}
	logger.Info("participant joined",
		"event", "poll_participant_joined",
		"module", "poll-network/poll-actor",
		"layer", "application",
		"chain_id", cmd.ChainID,
		"user_id", cmd.Owner,
	)
	return nil
}

// Nominate inserts nominations[nom_N] for the next dense N. Guarded by the
// started flag and participant membership, in that order.
func (uc PollUseCase) Nominate(ctx context.Context, cmd NominateCommand) (NominateResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	state, err := uc.States.Load(ctx, cmd.ChainID)
	if err != nil {
		return NominateResult{}, err
	}
	if state.HasStarted {
		logger.Warn("nomination denied after voting started",
			"event", "poll_nominate_denied",
			"module", "poll-network/poll-actor",
			"layer", "application",
			"chain_id", cmd.ChainID,
			"user_id", cmd.Owner,
		)
		return NominateResult{}, domainerrors.ErrVotingAlreadyStarted
	}
	if !state.IsParticipant(cmd.Owner) {
		logger.Warn("nomination denied for non-participant",
			"event", "poll_nominate_denied",
			"module", "poll-network/poll-actor",
			"layer", "application",
			"chain_id", cmd.ChainID,
			"user_id", cmd.Owner,
		)
		return NominateResult{}, domainerrors.ErrNotAParticipant
	}
	nominationID := state.NextNominationID()
	state.Nominations[nominationID] = entities.Nomination{
		UserID: cmd.Owner,
		Text:   cmd.Text,
	}
	if err := uc.States.Save(ctx, cmd.ChainID, state); err != nil {
		return NominateResult{}, err
	}
	logger.Info("nomination added",
		"event", "poll_nomination_added",
		"module", "poll-network/poll-actor",
		"layer", "application",
		"chain_id", cmd.ChainID,
		"nomination_id", nominationID,
		"user_id", cmd.Owner,
	)
	return NominateResult{NominationID: nominationID}, nil
}

// Vote upserts rankings[owner]. Guard order: not started, closed, ranking
// length cap, participant membership.
func (uc PollUseCase) Vote(ctx context.Context, cmd VoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	state, err := uc.States.Load(ctx, cmd.ChainID)
	if err != nil {
		return err
	}
	if !state.HasStarted {
		return domainerrors.ErrVotingNotStarted
	}
	if state.IsClosed {
		return domainerrors.ErrPollClosed
	}
	if uint64(len(cmd.Rankings)) > uint64(state.VotesPerVoter) {
		logger.Warn("vote denied for oversized ranking",
			"event", "poll_vote_denied",
			"module", "poll-network/poll-actor",
			"layer", "application",
			"chain_id", cmd.ChainID,
			"user_id", cmd.Owner,
			"ranking_len", len(cmd.Rankings),
			"votes_per_voter", state.VotesPerVoter,
		)
		return domainerrors.ErrTooManyRankings
	}
	if !state.IsParticipant(cmd.Owner) {
		return domainerrors.ErrNotAParticipant
	}
	state.Rankings[cmd.Owner] = append([]string(nil), cmd.Rankings...)
	if err := uc.States.Save(ctx, cmd.ChainID, state); err != nil {
		return err
	}
	logger.Info("ranking recorded",
		"event", "poll_ranking_recorded",
		"module", "poll-network/poll-actor",
		"layer", "application",
		"chain_id", cmd.ChainID,
		"user_id", cmd.Owner,
		"ranking_len", len(cmd.Rankings),
	)
	return nil
}

// StartVote flips the started flag, admin only. The flag only ever moves
// false to true.
func (uc PollUseCase) StartVote(ctx context.Context, cmd StartVoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	state, err := uc.States.Load(ctx, cmd.ChainID)
	if err != nil {
		return err
	}
	if !state.IsAdmin(cmd.Owner) {
		logger.Warn("start vote denied for non-admin",
			"event", "poll_start_denied",
			"module", "poll-network/poll-actor",
			"layer", "application",
			"chain_id", cmd.ChainID,
			"user_id", cmd.Owner,
		)
		return domainerrors.ErrNotAdmin
	}
	state.HasStarted = true
	if err := uc.States.Save(ctx, cmd.ChainID, state); err != nil {
		return err
	}
	logger.Info("voting started",
		"event", "poll_voting_started",
		"module", "poll-network/poll-actor",
		"layer", "application",
		"chain_id", cmd.ChainID,
	)
	return nil
}

// ClosePoll sets the terminal closed flag and runs the tally exactly once.
// Closing does not require voting to have started.
func (uc PollUseCase) ClosePoll(ctx context.Context, cmd ClosePollCommand) ([]entities.ResultEntry, error) {
	logger := application.ResolveLogger(uc.Logger)
	state, err := uc.States.Load(ctx, cmd.ChainID)
	if err != nil {
		return nil, err
	}
	if !state.IsAdmin(cmd.Owner) {
		logger.Warn("close denied for non-admin",
			"event", "poll_close_denied",
			"module", "poll-network/poll-actor",
			"layer", "application",
			"chain_id", cmd.ChainID,
			"user_id", cmd.Owner,
		)
		return nil, domainerrors.ErrNotAdmin
	}
	if state.IsClosed {
		return nil, domainerrors.ErrAlreadyClosed
	}
	state.IsClosed = true
	state.Results = tally.Compute(state.VotesPerVoter, state.Rankings, state.Nominations)
	if err := uc.States.Save(ctx, cmd.ChainID, state); err != nil {
		return nil, err
	}
	logger.Info("poll closed",
		"event", "poll_closed",
		"module", "poll-network/poll-actor",
		"layer", "application",
		"chain_id", cmd.ChainID,
		"result_count", len(state.Results),
	)
	return state.Results, nil
}
