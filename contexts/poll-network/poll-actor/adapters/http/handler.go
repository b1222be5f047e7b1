package httpadapter

import (
	"context"
	"log/slog"

	"ballot/contexts/poll-network/poll-actor/application/commands"
	"ballot/contexts/poll-network/poll-actor/application/queries"
	"ballot/contexts/poll-network/poll-actor/domain/entities"
	httptransport "ballot/contexts/poll-network/poll-actor/transport/http"
)

// Handler maps transport DTOs onto operation and query use cases. It carries
// no routing or serialization concerns; the platform server owns those.
type Handler struct {
	Polls   commands.PollUseCase
	Queries queries.PollQueryUseCase
	Logger  *slog.Logger
}

func (h Handler) JoinHandler(ctx context.Context, chainID string, req httptransport.JoinRequest) (httptransport.JoinResponse, error) {
	err := h.Polls.Join(ctx, commands.JoinCommand{
		ChainID: chainID,
		Name:    req.Name,
		Owner:   req.Owner,
	})
	if err != nil {
		return httptransport.JoinResponse{}, err
	}
	return httptransport.JoinResponse{
		ChainID: chainID,
		UserID:  req.Owner,
		Name:    req.Name,
	}, nil
}

func (h Handler) NominateHandler(ctx context.Context, chainID string, req httptransport.NominateRequest) (httptransport.NominateResponse, error) {
	result, err := h.Polls.Nominate(ctx, commands.NominateCommand{
		ChainID: chainID,
		Text:    req.Text,
		Owner:   req.Owner,
	})
	if err != nil {
		return httptransport.NominateResponse{}, err
	}
	return httptransport.NominateResponse{
		NominationID: result.NominationID,
	}, nil
}

func (h Handler) VoteHandler(ctx context.Context, chainID string, req httptransport.VoteRequest) (httptransport.VoteResponse, error) {
	err := h.Polls.Vote(ctx, commands.VoteCommand{
		ChainID:  chainID,
		Rankings: req.Rankings,
		Owner:    req.Owner,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return httptransport.VoteResponse{
		ChainID:    chainID,
		UserID:     req.Owner,
		RankingLen: len(req.Rankings),
	}, nil
}

func (h Handler) StartVoteHandler(ctx context.Context, chainID string, req httptransport.StartVoteRequest) (httptransport.StartVoteResponse, error) {
	err := h.Polls.StartVote(ctx, commands.StartVoteCommand{
		ChainID: chainID,
		Owner:   req.Owner,
	})
	if err != nil {
		return httptransport.StartVoteResponse{}, err
	}
	return httptransport.StartVoteResponse{HasStarted: true}, nil
}

func (h Handler) ClosePollHandler(ctx context.Context, chainID string, req httptransport.ClosePollRequest) (httptransport.ClosePollResponse, error) {
	results, err := h.Polls.ClosePoll(ctx, commands.ClosePollCommand{
		ChainID: chainID,
		Owner:   req.Owner,
	})
	if err != nil {
		return httptransport.ClosePollResponse{}, err
	}
	return httptransport.ClosePollResponse{
		IsClosed: true,
		Results:  mapResults(results),
	}, nil
}

func (h Handler) OverviewHandler(ctx context.Context, chainID string) (httptransport.OverviewResponse, error) {
	overview, err := h.Queries.Overview(ctx, chainID)
	if err != nil {
		return httptransport.OverviewResponse{}, err
	}
	return httptransport.OverviewResponse{
		ChainID:       chainID,
		Topic:         overview.Topic,
		AdminID:       overview.AdminID,
		VotesPerVoter: overview.VotesPerVoter,
		HasStarted:    overview.HasStarted,
		IsClosed:      overview.IsClosed,
	}, nil
}

func (h Handler) ResultsHandler(ctx context.Context, chainID string) (httptransport.ResultsResponse, error) {
	results, err := h.Queries.Results(ctx, chainID)
	if err != nil {
		return httptransport.ResultsResponse{}, err
	}
	return httptransport.ResultsResponse{Items: mapResults(results)}, nil
}

func (h Handler) NominationsHandler(ctx context.Context, chainID string) (httptransport.NominationsResponse, error) {
	nominations, err := h.Queries.Nominations(ctx, chainID)
	if err != nil {
		return httptransport.NominationsResponse{}, err
	}
	items := make([]httptransport.NominationItem, 0, len(nominations))
	for _, nomination := range nominations {
		items = append(items, httptransport.NominationItem{
			NominationID: nomination.NominationID,
			UserID:       nomination.UserID,
			Text:         nomination.Text,
		})
	}
	return httptransport.NominationsResponse{Items: items}, nil
}

func (h Handler) ParticipantsHandler(ctx context.Context, chainID string) (httptransport.ParticipantsResponse, error) {
	participants, count, err := h.Queries.Participants(ctx, chainID)
	if err != nil {
		return httptransport.ParticipantsResponse{}, err
	}
	items := make([]httptransport.ParticipantItem, 0, len(participants))
	for _, participant := range participants {
		items = append(items, httptransport.ParticipantItem{
			UserID: participant.UserID,
			Name:   participant.Name,
		})
	}
	return httptransport.ParticipantsResponse{
		Items: items,
		Count: count,
	}, nil
}

func (h Handler) RankingsHandler(ctx context.Context, chainID string) (httptransport.RankingsResponse, error) {
	rankings, err := h.Queries.Rankings(ctx, chainID)
	if err != nil {
		return httptransport.RankingsResponse{}, err
	}
	items := make([]httptransport.RankingItem, 0, len(rankings))
	for _, ranking := range rankings {
		items = append(items, httptransport.RankingItem{
			UserID:        ranking.UserID,
			NominationIDs: ranking.NominationIDs,
		})
	}
	return httptransport.RankingsResponse{Items: items}, nil
}

func mapResults(results []entities.ResultEntry) []httptransport.ResultEntryItem {
	items := make([]httptransport.ResultEntryItem, 0, len(results))
	for _, entry := range results {
		items = append(items, httptransport.ResultEntryItem{
			NominationID:   entry.NominationID,
			NominationText: entry.NominationText,
			Score:          entry.Score,
		})
	}
	return items
}
