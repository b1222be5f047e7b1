package commands

import (
	"context"
	"errors"
	"testing"

	"ballot/contexts/poll-network/poll-actor/adapters/memory"
	domainerrors "ballot/contexts/poll-network/poll-actor/domain/errors"
	"ballot/internal/shared/protocol"
)

func TestInitializeSeedsStateAndAutoJoinsAdmin(t *testing.T) {
	uc := PollUseCase{States: memory.NewStore()}
	ctx := context.Background()

	err := uc.HandleMessage(ctx, testChain, protocol.InitializePoll{
		Topic:         "dinner",
		VotesPerVoter: 3,
		AdminID:       "carol",
	})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}

	state, err := uc.States.Load(ctx, testChain)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.Topic != "dinner" || state.VotesPerVoter != 3 || state.AdminID != "carol" {
		t.Fatalf("unexpected registers: %+v", state)
	}
	if state.HasStarted || state.IsClosed {
		t.Fatalf("expected fresh phase flags, got started=%v closed=%v", state.HasStarted, state.IsClosed)
	}
	if state.Participants["carol"] != "Admin" {
		t.Fatalf("expected admin auto-joined as Admin, got %q", state.Participants["carol"])
	}
}

func TestReinitializeResetsRegistersButKeepsCollections(t *testing.T) {
	uc := newInitializedUseCase(t, 2)
	ctx := context.Background()

	if err := uc.Join(ctx, JoinCommand{ChainID: testChain, Name: "Alice", Owner: "alice"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := uc.Nominate(ctx, NominateCommand{ChainID: testChain, Text: "Pizza", Owner: "alice"}); err != nil {
		t.Fatalf("nominate: %v", err)
	}
	if err := uc.StartVote(ctx, StartVoteCommand{ChainID: testChain, Owner: "admin"}); err != nil {
		t.Fatalf("start vote: %v", err)
	}

	err := uc.HandleMessage(ctx, testChain, protocol.InitializePoll{
		Topic:         "dessert",
		VotesPerVoter: 1,
		AdminID:       "dave",
	})
	if err != nil {
		t.Fatalf("reinitialize: %v", err)
	}

	state, err := uc.States.Load(ctx, testChain)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.Topic != "dessert" || state.AdminID != "dave" || state.HasStarted {
		t.Fatalf("expected registers reset, got %+v", state)
	}
	if state.Participants["alice"] != "Alice" {
		t.Fatalf("expected existing participants preserved, got %v", state.Participants)
	}
	if _, ok := state.Nominations["nom_0"]; !ok {
		t.Fatalf("expected existing nominations preserved, got %v", state.Nominations)
	}
}

func TestRemoteMessagesValidateLikeLocalOperations(t *testing.T) {
	uc := newInitializedUseCase(t, 1)
	ctx := context.Background()

	err := uc.HandleMessage(ctx, testChain, protocol.Nominate{UserID: "stranger", Text: "Pizza"})
	if !errors.Is(err, domainerrors.ErrNotAParticipant) {
		t.Fatalf("expected remote nomination to hit membership guard, got %v", err)
	}

	err = uc.HandleMessage(ctx, testChain, protocol.Vote{UserID: "admin", Rankings: []string{"nom_0"}})
	if !errors.Is(err, domainerrors.ErrVotingNotStarted) {
		t.Fatalf("expected remote vote to hit phase guard, got %v", err)
	}

	err = uc.HandleMessage(ctx, testChain, protocol.StartVote{UserID: "stranger"})
	if !errors.Is(err, domainerrors.ErrNotAdmin) {
		t.Fatalf("expected remote start to hit admin guard, got %v", err)
	}
}

func TestRemoteLifecycleMatchesLocalEffects(t *testing.T) {
	uc := newInitializedUseCase(t, 2)
	ctx := context.Background()

	if err := uc.Join(ctx, JoinCommand{ChainID: testChain, Name: "Alice", Owner: "alice"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := uc.HandleMessage(ctx, testChain, protocol.Nominate{UserID: "alice", Text: "Pizza"}); err != nil {
		t.Fatalf("remote nominate: %v", err)
	}
	if err := uc.HandleMessage(ctx, testChain, protocol.StartVote{UserID: "admin"}); err != nil {
		t.Fatalf("remote start: %v", err)
	}
	if err := uc.HandleMessage(ctx, testChain, protocol.Vote{UserID: "alice", Rankings: []string{"nom_0"}}); err != nil {
		t.Fatalf("remote vote: %v", err)
	}
	if err := uc.HandleMessage(ctx, testChain, protocol.ClosePoll{UserID: "admin"}); err != nil {
		t.Fatalf("remote close: %v", err)
	}

	state, err := uc.States.Load(ctx, testChain)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !state.IsClosed {
		t.Fatalf("expected poll closed")
	}
	if len(state.Results) != 1 || state.Results[0].Score != 2 {
		t.Fatalf("unexpected results: %+v", state.Results)
	}
}
