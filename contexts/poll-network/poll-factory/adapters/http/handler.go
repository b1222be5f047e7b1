package httpadapter

import (
	"context"
	"log/slog"

	"ballot/contexts/poll-network/poll-factory/application/commands"
	"ballot/contexts/poll-network/poll-factory/application/queries"
	httptransport "ballot/contexts/poll-network/poll-factory/transport/http"
)

type Handler struct {
	Factory commands.CreatePollUseCase
	Ledger  queries.CreatedPollsUseCase
	Logger  *slog.Logger
}

// CreatePollHandler requires a non-empty authenticated signer; the owner
// field in the request body is the identity the new poll records as admin
// and defaults to the signer.
func (h Handler) CreatePollHandler(ctx context.Context, signer string, req httptransport.CreatePollRequest) (httptransport.CreatePollResponse, error) {
	owner := ""
	if signer != "" {
		owner = req.Owner
		if owner == "" {
			owner = signer
		}
	}
	result, err := h.Factory.CreatePoll(ctx, commands.CreatePollCommand{
		Topic:         req.Topic,
		VotesPerVoter: req.VotesPerVoter,
		Owner:         owner,
	})
	if err != nil {
		return httptransport.CreatePollResponse{}, err
	}
	return httptransport.CreatePollResponse{ChainID: result.ChainID}, nil
}

func (h Handler) CreatedPollsHandler(ctx context.Context, creatorID string) (httptransport.CreatedPollsResponse, error) {
	chainIDs, err := h.Ledger.CreatedPolls(ctx, creatorID)
	if err != nil {
		return httptransport.CreatedPollsResponse{}, err
	}
	return httptransport.CreatedPollsResponse{
		CreatorID: creatorID,
		ChainIDs:  chainIDs,
	}, nil
}
