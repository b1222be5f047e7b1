package queries

import (
	"context"
	"sort"

	"ballot/contexts/poll-network/poll-actor/domain/entities"
	"ballot/contexts/poll-network/poll-actor/ports"
)

// Overview is the scalar register view of one poll chain.
type Overview struct {
	Topic         string
	AdminID       string
	VotesPerVoter uint32
	HasStarted    bool
	IsClosed      bool
}

// PollQueryUseCase serves the informational read surface. Queries never
// mutate; they observe whatever state the last committed call left behind.
type PollQueryUseCase struct {
	States ports.StateStore
}

func (uc PollQueryUseCase) Overview(ctx context.Context, chainID string) (Overview, error) {
	state, err := uc.States.Load(ctx, chainID)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Topic:         state.Topic,
		AdminID:       state.AdminID,
		VotesPerVoter: state.VotesPerVoter,
		HasStarted:    state.HasStarted,
		IsClosed:      state.IsClosed,
	}, nil
}

// Results returns the tally output, empty until the poll closes.
func (uc PollQueryUseCase) Results(ctx context.Context, chainID string) ([]entities.ResultEntry, error) {
	state, err := uc.States.Load(ctx, chainID)
	if err != nil {
		return nil, err
	}
	if state.Results == nil {
		return []entities.ResultEntry{}, nil
	}
	return state.Results, nil
}

// Nominations lists all nominations in ascending nomination-id order.
func (uc PollQueryUseCase) Nominations(ctx context.Context, chainID string) ([]entities.NominationEntry, error) {
	state, err := uc.States.Load(ctx, chainID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(state.Nominations))
	for nominationID := range state.Nominations {
		ids = append(ids, nominationID)
	}
	sort.Strings(ids)
	items := make([]entities.NominationEntry, 0, len(ids))
	for _, nominationID := range ids {
		nomination := state.Nominations[nominationID]
		items = append(items, entities.NominationEntry{
			NominationID: nominationID,
			UserID:       nomination.UserID,
			Text:         nomination.Text,
		})
	}
	return items, nil
}

// Participants lists all participants in ascending user-id order plus the
// participant count.
func (uc PollQueryUseCase) Participants(ctx context.Context, chainID string) ([]entities.ParticipantEntry, int, error) {
	state, err := uc.States.Load(ctx, chainID)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(state.Participants))
	for userID := range state.Participants {
		ids = append(ids, userID)
	}
	sort.Strings(ids)
	items := make([]entities.ParticipantEntry, 0, len(ids))
	for _, userID := range ids {
		items = append(items, entities.ParticipantEntry{
			UserID: userID,
			Name:   state.Participants[userID],
		})
	}
	return items, len(items), nil
}

// Rankings lists every submitted ranking in ascending voter-id order.
func (uc PollQueryUseCase) Rankings(ctx context.Context, chainID string) ([]entities.RankingEntry, error) {
	state, err := uc.States.Load(ctx, chainID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(state.Rankings))
	for userID := range state.Rankings {
		ids = append(ids, userID)
	}
	sort.Strings(ids)
	items := make([]entities.RankingEntry, 0, len(ids))
	for _, userID := range ids {
		items = append(items, entities.RankingEntry{
			UserID:        userID,
			NominationIDs: append([]string(nil), state.Rankings[userID]...),
		})
	}
	return items, nil
}
