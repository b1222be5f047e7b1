package memory

import (
	"context"
	"errors"
	"testing"

	"ballot/contexts/poll-network/poll-actor/domain/entities"
	domainerrors "ballot/contexts/poll-network/poll-actor/domain/errors"
)

func TestLoadUnknownChainReturnsNotFound(t *testing.T) {
	store := NewStore()
	_, err := store.Load(context.Background(), "chain_missing")
	if !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
}

func TestSaveAndLoadExchangeIsolatedCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	state := entities.NewPollState()
	state.Topic = "lunch"
	state.Participants["alice"] = "Alice"
	if err := store.Save(ctx, "chain_a", state); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the saved value after the fact must not leak into the store.
	state.Participants["bob"] = "Bob"

	loaded, err := store.Load(ctx, "chain_a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := loaded.Participants["bob"]; ok {
		t.Fatalf("saved state aliases caller memory")
	}

	// Mutating a loaded copy must not change what the next reader sees.
	loaded.Participants["carol"] = "Carol"
	reloaded, err := store.Load(ctx, "chain_a")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := reloaded.Participants["carol"]; ok {
		t.Fatalf("loaded state aliases store memory")
	}
	if reloaded.Participants["alice"] != "Alice" {
		t.Fatalf("expected persisted participant, got %v", reloaded.Participants)
	}
}

func TestChainsAreIsolatedFromEachOther(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := entities.NewPollState()
	first.Topic = "lunch"
	second := entities.NewPollState()
	second.Topic = "dinner"

	if err := store.Save(ctx, "chain_a", first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "chain_b", second); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx, "chain_b")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Topic != "dinner" {
		t.Fatalf("expected chain_b topic, got %q", loaded.Topic)
	}
}
