package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	domainerrors "ballot/contexts/poll-network/poll-factory/domain/errors"
	"ballot/contexts/poll-network/poll-factory/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-process ledger and outbox, plus the Clock/IDGenerator
// conveniences the in-memory module wires in.
type Store struct {
	mu     sync.RWMutex
	ledger map[string][]string
	outbox map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		ledger: make(map[string][]string),
		outbox: make(map[string]outboxRecord),
	}
}

func (s *Store) AppendCreatedPoll(_ context.Context, creatorID string, chainID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger[creatorID] = append(s.ledger[creatorID], chainID)
	return nil
}

func (s *Store) ListCreatedPolls(_ context.Context, creatorID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.ledger[creatorID]...), nil
}

func (s *Store) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.outbox[message.OutboxID]; ok {
		if !bytes.Equal(existing.message.Payload, message.Payload) {
			return domainerrors.ErrOutboxConflict
		}
		return nil
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	s.outbox[message.OutboxID] = outboxRecord{message: message}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].OutboxID < items[j].OutboxID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[outboxID]
	if !ok {
		return domainerrors.ErrOutboxConflict
	}
	row.published = true
	s.outbox[outboxID] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
