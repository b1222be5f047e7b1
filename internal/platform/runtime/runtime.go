package runtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ChainRuntime is the in-process actor substrate: it allocates chains, funds
// them at spawn time, and routes messages and operations onto them with
// per-chain serialization. Senders never observe execution outcome; the
// asynchrony between a sender and delivery lives in the factory's outbox,
// whose relay hands pending messages to Publish one at a time per chain, so
// delivery to the same chain stays FIFO. Nothing is ordered across distinct
// chains.
type ChainRuntime struct {
	mu       sync.RWMutex
	chains   map[string]*mailbox
	balances map[string]uint64
	owners   map[string]string
	handler  MessageHandler
	logger   *slog.Logger
}

// MessageHandler executes one delivered message payload on the target chain.
type MessageHandler func(ctx context.Context, chainID string, payload []byte) error

// mailbox serializes everything targeting one chain: operations and message
// deliveries take the same mutex, so a chain has exactly one writer at a time.
type mailbox struct {
	mu sync.Mutex
}

func New(logger *slog.Logger) *ChainRuntime {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChainRuntime{
		chains:   make(map[string]*mailbox),
		balances: make(map[string]uint64),
		owners:   make(map[string]string),
		logger:   logger,
	}
}

// RegisterHandler installs the message executor. Must happen before any
// Publish.
func (r *ChainRuntime) RegisterHandler(handler MessageHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = handler
}

// Spawn allocates a fresh chain id and records sole ownership plus the
// funding seed. The spawned chain carries no poll state until an
// InitializePoll message executes on it.
func (r *ChainRuntime) Spawn(_ context.Context, owner string, fundingTokens uint64) (string, error) {
	chainID := "chain_" + uuid.NewString()

	r.mu.Lock()
	r.owners[chainID] = owner
	r.balances[chainID] = fundingTokens
	r.mu.Unlock()

	r.logger.Info("chain spawned",
		"event", "runtime_chain_spawned",
		"module", "internal/platform/runtime",
		"layer", "platform",
		"chain_id", chainID,
		"owner", owner,
		"funding_tokens", fundingTokens,
	)
	return chainID, nil
}

// Publish delivers a message payload to the target chain, serialized with
// every other call targeting it. A validation rejection by the receiving
// actor is final: it is logged and not surfaced to the original sender,
// who already moved on.
func (r *ChainRuntime) Publish(ctx context.Context, targetChain string, payload []byte) error {
	r.mu.RLock()
	handler := r.handler
	r.mu.RUnlock()
	if handler == nil {
		return errors.New("no message handler registered")
	}

	mb := r.ensureMailbox(targetChain)
	mb.mu.Lock()
	err := handler(ctx, targetChain, payload)
	mb.mu.Unlock()
	if err != nil {
		r.logger.Warn("message execution rejected by target chain",
			"event", "runtime_message_rejected",
			"module", "internal/platform/runtime",
			"layer", "platform",
			"chain_id", targetChain,
			"error", err.Error(),
		)
	}
	return nil
}

// Do runs a synchronous operation against the chain, serialized with every
// other operation and message delivery targeting it.
func (r *ChainRuntime) Do(chainID string, fn func() error) error {
	mb := r.ensureMailbox(chainID)
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return fn()
}

// Balance reports the remaining funding of a chain.
func (r *ChainRuntime) Balance(chainID string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.balances[chainID]
}

// Owner reports the sole owner recorded at spawn time.
func (r *ChainRuntime) Owner(chainID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owners[chainID]
}

// ensureMailbox opens a chain's mailbox on first use. Mailboxes exist on
// demand: the runtime is a router, existence of poll state is the state
// store's concern.
func (r *ChainRuntime) ensureMailbox(chainID string) *mailbox {
	r.mu.RLock()
	mb, ok := r.chains[chainID]
	r.mu.RUnlock()
	if ok {
		return mb
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if mb, ok = r.chains[chainID]; ok {
		return mb
	}
	mb = &mailbox{}
	r.chains[chainID] = mb
	return mb
}
