package ports

import (
	"context"
	"time"
)

// ChainSpawner asks the runtime substrate for a new chain owned solely by
// owner and seeded with a fixed token amount. The returned chain id is live
// immediately; its poll stays uninitialized until InitializePoll executes.
type ChainSpawner interface {
	Spawn(ctx context.Context, owner string, fundingTokens uint64) (string, error)
}

// LedgerStore is the creator-indexed record of spawned chains. Append-only,
// no dedup; a creator's list grows with every CreatePoll.
type LedgerStore interface {
	AppendCreatedPoll(ctx context.Context, creatorID string, chainID string) error
	ListCreatedPolls(ctx context.Context, creatorID string) ([]string, error)
}

// OutboxMessage is one cross-chain message awaiting delivery.
type OutboxMessage struct {
	OutboxID    string
	TargetChain string
	Payload     []byte
	CreatedAt   time.Time
}

// MessageOutbox is the command-side write port: CreatePoll parks its
// InitializePoll here and returns without observing delivery.
type MessageOutbox interface {
	AppendOutbox(ctx context.Context, message OutboxMessage) error
}

// OutboxRepository is the relay-side view of pending messages. Rows are
// listed oldest first so per-chain FIFO survives the relay.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// MessagePublisher hands a message payload to the routing substrate for
// delivery into the target chain's mailbox.
type MessagePublisher interface {
	Publish(ctx context.Context, targetChain string, payload []byte) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
