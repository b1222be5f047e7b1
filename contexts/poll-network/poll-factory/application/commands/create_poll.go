package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ballot/contexts/poll-network/poll-factory/application"
	domainerrors "ballot/contexts/poll-network/poll-factory/domain/errors"
	"ballot/contexts/poll-network/poll-factory/ports"
	"ballot/internal/shared/protocol"
)

const defaultFundingTokens = 10

// CreatePollCommand carries the new poll's parameters plus the authenticated
// creator identity, which becomes the poll's sole admin.
type CreatePollCommand struct {
	Topic         string
	VotesPerVoter uint32
	Owner         string
}

// CreatePollResult returns the id of the freshly spawned chain. The chain
// briefly exists uninitialized until the relayed InitializePoll executes.
type CreatePollResult struct {
	ChainID string
}

// CreatePollUseCase orchestrates poll creation: spawn a single-owner chain,
// park InitializePoll in the outbox (fire-and-forget, not transactionally
// linked to its execution on the new chain), and append the chain id to the
// creator's ledger.
type CreatePollUseCase struct {
	Spawner       ports.ChainSpawner
	Ledger        ports.LedgerStore
	Outbox        ports.MessageOutbox
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	FundingTokens uint64
	Logger        *slog.Logger
}

func (uc CreatePollUseCase) CreatePoll(ctx context.Context, cmd CreatePollCommand) (CreatePollResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	owner := strings.TrimSpace(cmd.Owner)
	if owner == "" {
		logger.Warn("poll creation denied without authenticated signer",
			"event", "factory_create_denied",
			"module", "poll-network/poll-factory",
			"layer", "application",
		)
		return CreatePollResult{}, domainerrors.ErrAuthenticationMissing
	}

	chainID, err := uc.Spawner.Spawn(ctx, owner, uc.resolveFunding())
	if err != nil {
		logger.Error("chain spawn failed",
			"event", "factory_spawn_failed",
			"module", "poll-network/poll-factory",
			"layer", "application",
			"user_id", owner,
			"error", err.Error(),
		)
		return CreatePollResult{}, err
	}

	messageID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CreatePollResult{}, err
	}
	envelope, err := protocol.Encode(messageID, chainID, protocol.InitializePoll{
		Topic:         cmd.Topic,
		VotesPerVoter: cmd.VotesPerVoter,
		AdminID:       owner,
	})
	if err != nil {
		return CreatePollResult{}, err
	}
	payload, err := protocol.Marshal(envelope)
	if err != nil {
		return CreatePollResult{}, err
	}
	if err := uc.Outbox.AppendOutbox(ctx, ports.OutboxMessage{
		OutboxID:    messageID,
		TargetChain: chainID,
		Payload:     payload,
		CreatedAt:   uc.now(),
	}); err != nil {
		return CreatePollResult{}, err
	}

	if err := uc.Ledger.AppendCreatedPoll(ctx, owner, chainID); err != nil {
		return CreatePollResult{}, err
	}

	logger.Info("poll created",
		"event", "factory_poll_created",
		"module", "poll-network/poll-factory",
		"layer", "application",
		"chain_id", chainID,
		"admin_id", owner,
		"votes_per_voter", cmd.VotesPerVoter,
	)
	return CreatePollResult{ChainID: chainID}, nil
}

func (uc CreatePollUseCase) resolveFunding() uint64 {
	if uc.FundingTokens == 0 {
		return defaultFundingTokens
	}
	return uc.FundingTokens
}

func (uc CreatePollUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
