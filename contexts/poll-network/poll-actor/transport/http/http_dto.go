package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type JoinRequest struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

type JoinResponse struct {
	ChainID string `json:"chain_id"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
}

type NominateRequest struct {
	Text  string `json:"text"`
	Owner string `json:"owner"`
}

type NominateResponse struct {
	NominationID string `json:"nomination_id"`
}

type VoteRequest struct {
	Rankings []string `json:"rankings"`
	Owner    string   `json:"owner"`
}

type VoteResponse struct {
	ChainID    string `json:"chain_id"`
	UserID     string `json:"user_id"`
	RankingLen int    `json:"ranking_len"`
}

type StartVoteRequest struct {
	Owner string `json:"owner"`
}

type StartVoteResponse struct {
	HasStarted bool `json:"has_started"`
}

type ClosePollRequest struct {
	Owner string `json:"owner"`
}

type ClosePollResponse struct {
	IsClosed bool              `json:"is_closed"`
	Results  []ResultEntryItem `json:"results"`
}

type ResultEntryItem struct {
	NominationID   string `json:"nomination_id"`
	NominationText string `json:"nomination_text"`
	Score          uint64 `json:"score"`
}

type OverviewResponse struct {
	ChainID       string `json:"chain_id"`
	Topic         string `json:"topic"`
	AdminID       string `json:"admin_id"`
	VotesPerVoter uint32 `json:"votes_per_voter"`
	HasStarted    bool   `json:"has_started"`
	IsClosed      bool   `json:"is_closed"`
}

type ResultsResponse struct {
	Items []ResultEntryItem `json:"items"`
}

type NominationItem struct {
	NominationID string `json:"nomination_id"`
	UserID       string `json:"user_id"`
	Text         string `json:"text"`
}

type NominationsResponse struct {
	Items []NominationItem `json:"items"`
}

type ParticipantItem struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type ParticipantsResponse struct {
	Items []ParticipantItem `json:"items"`
	Count int               `json:"count"`
}

type RankingItem struct {
	UserID        string   `json:"user_id"`
	NominationIDs []string `json:"nomination_ids"`
}

type RankingsResponse struct {
	Items []RankingItem `json:"items"`
}

type MessageAcceptedResponse struct {
	MessageID   string `json:"message_id"`
	TargetChain string `json:"target_chain"`
}
