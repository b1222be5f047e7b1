package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	pollhttp "ballot/contexts/poll-network/poll-actor/transport/http"
	"ballot/internal/shared/protocol"
)

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.Owner = resolveOwner(r, req.Owner)
	if strings.TrimSpace(req.Owner) == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header or owner field is required")
		return
	}

	chainID := r.PathValue("chain_id")
	var resp pollhttp.JoinResponse
	err := s.chains.Do(chainID, func() error {
		var handlerErr error
		resp, handlerErr = s.polls.Handler.JoinHandler(r.Context(), chainID, req)
		return handlerErr
	})
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNominate(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.NominateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.Owner = resolveOwner(r, req.Owner)
	if strings.TrimSpace(req.Owner) == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header or owner field is required")
		return
	}

	chainID := r.PathValue("chain_id")
	var resp pollhttp.NominateResponse
	err := s.chains.Do(chainID, func() error {
		var handlerErr error
		resp, handlerErr = s.polls.Handler.NominateHandler(r.Context(), chainID, req)
		return handlerErr
	})
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.Owner = resolveOwner(r, req.Owner)
	if strings.TrimSpace(req.Owner) == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header or owner field is required")
		return
	}

	chainID := r.PathValue("chain_id")
	var resp pollhttp.VoteResponse
	err := s.chains.Do(chainID, func() error {
		var handlerErr error
		resp, handlerErr = s.polls.Handler.VoteHandler(r.Context(), chainID, req)
		return handlerErr
	})
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartVote(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.StartVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.Owner = resolveOwner(r, req.Owner)
	if strings.TrimSpace(req.Owner) == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header or owner field is required")
		return
	}

	chainID := r.PathValue("chain_id")
	var resp pollhttp.StartVoteResponse
	err := s.chains.Do(chainID, func() error {
		var handlerErr error
		resp, handlerErr = s.polls.Handler.StartVoteHandler(r.Context(), chainID, req)
		return handlerErr
	})
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClosePoll(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.ClosePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.Owner = resolveOwner(r, req.Owner)
	if strings.TrimSpace(req.Owner) == "" {
		writePollError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header or owner field is required")
		return
	}

	chainID := r.PathValue("chain_id")
	var resp pollhttp.ClosePollResponse
	err := s.chains.Do(chainID, func() error {
		var handlerErr error
		resp, handlerErr = s.polls.Handler.ClosePollHandler(r.Context(), chainID, req)
		return handlerErr
	})
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollOverview(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.OverviewHandler(r.Context(), r.PathValue("chain_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.ResultsHandler(r.Context(), r.PathValue("chain_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollNominations(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.NominationsHandler(r.Context(), r.PathValue("chain_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollParticipants(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.ParticipantsHandler(r.Context(), r.PathValue("chain_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollRankings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.RankingsHandler(r.Context(), r.PathValue("chain_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDeliverMessage injects a cross-chain message envelope straight into
// the routing substrate. The path chain id wins over whatever target the
// envelope carries. Acceptance means enqueued, not executed; rejections by
// the target chain surface only in logs.
func (s *Server) handleDeliverMessage(w http.ResponseWriter, r *http.Request) {
	var envelope protocol.Envelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	chainID := r.PathValue("chain_id")
	envelope.TargetChain = chainID
	if _, err := protocol.Decode(envelope); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_message", err.Error())
		return
	}

	raw, err := protocol.Marshal(envelope)
	if err != nil {
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if err := s.chains.Publish(r.Context(), chainID, raw); err != nil {
		writePollError(w, http.StatusServiceUnavailable, "delivery_unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, pollhttp.MessageAcceptedResponse{
		MessageID:   envelope.MessageID,
		TargetChain: chainID,
	})
}
