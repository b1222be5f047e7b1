package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	pollactor "ballot/contexts/poll-network/poll-actor"
	pollerrors "ballot/contexts/poll-network/poll-actor/domain/errors"
	pollhttp "ballot/contexts/poll-network/poll-actor/transport/http"
	pollfactory "ballot/contexts/poll-network/poll-factory"
	factoryerrors "ballot/contexts/poll-network/poll-factory/domain/errors"
	factoryhttp "ballot/contexts/poll-network/poll-factory/transport/http"
	"ballot/internal/platform/runtime"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "ballot/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	polls   pollactor.Module
	factory pollfactory.Module
	chains  *runtime.ChainRuntime
}

func New(
	polls pollactor.Module,
	factory pollfactory.Module,
	chains *runtime.ChainRuntime,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		polls:   polls,
		factory: factory,
		chains:  chains,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/polls", s.handleCreatePoll)
	s.mux.HandleFunc("GET /v1/creators/{user_id}/polls", s.handleCreatedPolls)
	s.mux.HandleFunc("GET /v1/chains/{chain_id}", s.handleChainStatus)
	s.mux.HandleFunc("POST /v1/chains/{chain_id}/messages", s.handleDeliverMessage)

	s.mux.HandleFunc("GET /v1/polls/{chain_id}", s.handlePollOverview)
	s.mux.HandleFunc("GET /v1/polls/{chain_id}/results", s.handlePollResults)
	s.mux.HandleFunc("GET /v1/polls/{chain_id}/nominations", s.handlePollNominations)
	s.mux.HandleFunc("GET /v1/polls/{chain_id}/participants", s.handlePollParticipants)
	s.mux.HandleFunc("GET /v1/polls/{chain_id}/rankings", s.handlePollRankings)

	s.mux.HandleFunc("POST /v1/polls/{chain_id}/join", s.handleJoin)
	s.mux.HandleFunc("POST /v1/polls/{chain_id}/nominations", s.handleNominate)
	s.mux.HandleFunc("POST /v1/polls/{chain_id}/votes", s.handleVote)
	s.mux.HandleFunc("POST /v1/polls/{chain_id}/start", s.handleStartVote)
	s.mux.HandleFunc("POST /v1/polls/{chain_id}/close", s.handleClosePoll)
}

func writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrPollNotFound):
		writePollError(w, http.StatusNotFound, "poll_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrPollClosed):
		writePollError(w, http.StatusConflict, "poll_closed", err.Error())
	case errors.Is(err, pollerrors.ErrAlreadyClosed):
		writePollError(w, http.StatusConflict, "already_closed", err.Error())
	case errors.Is(err, pollerrors.ErrVotingAlreadyStarted):
		writePollError(w, http.StatusConflict, "voting_already_started", err.Error())
	case errors.Is(err, pollerrors.ErrVotingNotStarted):
		writePollError(w, http.StatusConflict, "voting_not_started", err.Error())
	case errors.Is(err, pollerrors.ErrNotAParticipant):
		writePollError(w, http.StatusForbidden, "not_a_participant", err.Error())
	case errors.Is(err, pollerrors.ErrNotAdmin):
		writePollError(w, http.StatusForbidden, "not_admin", err.Error())
	case errors.Is(err, pollerrors.ErrTooManyRankings):
		writePollError(w, http.StatusUnprocessableEntity, "too_many_rankings", err.Error())
	default:
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeFactoryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, factoryerrors.ErrAuthenticationMissing):
		writeFactoryError(w, http.StatusUnauthorized, "authentication_missing", err.Error())
	case errors.Is(err, factoryerrors.ErrOutboxConflict):
		writeFactoryError(w, http.StatusConflict, "outbox_conflict", err.Error())
	default:
		writeFactoryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePollError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeFactoryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, factoryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// resolveSigner reads the authenticated identity the gateway forwards. It is
// the acting identity unless the request body names another owner.
func resolveSigner(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func resolveOwner(r *http.Request, bodyOwner string) string {
	if strings.TrimSpace(bodyOwner) != "" {
		return bodyOwner
	}
	return resolveSigner(r)
}
