package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePollRequest struct {
	Topic         string `json:"topic"`
	VotesPerVoter uint32 `json:"votes_per_voter"`
	Owner         string `json:"owner"`
}

type CreatePollResponse struct {
	ChainID string `json:"chain_id"`
}

type CreatedPollsResponse struct {
	CreatorID string   `json:"creator_id"`
	ChainIDs  []string `json:"chain_ids"`
}

type ChainStatusResponse struct {
	ChainID       string `json:"chain_id"`
	Owner         string `json:"owner"`
	FundingTokens uint64 `json:"funding_tokens"`
}
