package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	factoryhttp "ballot/contexts/poll-network/poll-factory/transport/http"
)

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req factoryhttp.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFactoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.factory.Handler.CreatePollHandler(r.Context(), resolveSigner(r), req)
	if err != nil {
		writeFactoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCreatedPolls(w http.ResponseWriter, r *http.Request) {
	creatorID := strings.TrimSpace(r.PathValue("user_id"))
	if creatorID == "" {
		writeFactoryError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}

	resp, err := s.factory.Handler.CreatedPollsHandler(r.Context(), creatorID)
	if err != nil {
		writeFactoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleChainStatus reports the spawn-time facts the runtime tracks about a
// chain: its sole owner and the funding seeded into it.
func (s *Server) handleChainStatus(w http.ResponseWriter, r *http.Request) {
	chainID := r.PathValue("chain_id")
	owner := s.chains.Owner(chainID)
	if owner == "" {
		writeFactoryError(w, http.StatusNotFound, "chain_not_found", "chain is not known to this runtime")
		return
	}
	writeJSON(w, http.StatusOK, factoryhttp.ChainStatusResponse{
		ChainID:       chainID,
		Owner:         owner,
		FundingTokens: s.chains.Balance(chainID),
	})
}
