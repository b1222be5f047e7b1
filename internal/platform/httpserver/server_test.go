package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pollactor "ballot/contexts/poll-network/poll-actor"
	pollfactory "ballot/contexts/poll-network/poll-factory"
	"ballot/internal/platform/runtime"
	"ballot/internal/shared/protocol"
)

type testEnv struct {
	server  *Server
	factory pollfactory.Module
}

func newTestServer() testEnv {
	chains := runtime.New(nil)
	polls := pollactor.NewInMemoryModule(nil)
	factory := pollfactory.NewInMemoryModule(chains, chains, nil)

	chains.RegisterHandler(func(ctx context.Context, chainID string, payload []byte) error {
		envelope, err := protocol.Unmarshal(payload)
		if err != nil {
			return err
		}
		message, err := protocol.Decode(envelope)
		if err != nil {
			return err
		}
		return polls.Polls.HandleMessage(ctx, chainID, message)
	})

	return testEnv{
		server:  New(polls, factory, chains, nil, ":0"),
		factory: factory,
	}
}

func (e testEnv) do(t *testing.T, method string, path string, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	rr := httptest.NewRecorder()
	e.server.mux.ServeHTTP(rr, req)
	return rr
}

func (e testEnv) createPoll(t *testing.T, admin string) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/v1/polls", admin, `{"topic":"lunch","votes_per_voter":2}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create poll: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		ChainID string `json:"chain_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if err := e.factory.Relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay: %v", err)
	}
	return resp.ChainID
}

func TestCreatePollRequiresSigner(t *testing.T) {
	env := newTestServer()
	rr := env.do(t, http.MethodPost, "/v1/polls", "", `{"topic":"lunch","votes_per_voter":2}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreatePollSpawnsInitializedChain(t *testing.T) {
	env := newTestServer()
	chainID := env.createPoll(t, "alice")

	rr := env.do(t, http.MethodGet, "/v1/polls/"+chainID, "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("overview: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var overview struct {
		Topic         string `json:"topic"`
		AdminID       string `json:"admin_id"`
		VotesPerVoter uint32 `json:"votes_per_voter"`
		HasStarted    bool   `json:"has_started"`
		IsClosed      bool   `json:"is_closed"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.Topic != "lunch" || overview.AdminID != "alice" || overview.VotesPerVoter != 2 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
	if overview.HasStarted || overview.IsClosed {
		t.Fatalf("expected fresh poll phase, got %+v", overview)
	}

	rr = env.do(t, http.MethodGet, "/v1/creators/alice/polls", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("created polls: expected 200, got %d", rr.Code)
	}
	var created struct {
		ChainIDs []string `json:"chain_ids"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created polls: %v", err)
	}
	if len(created.ChainIDs) != 1 || created.ChainIDs[0] != chainID {
		t.Fatalf("expected ledger entry, got %v", created.ChainIDs)
	}
}

func TestPollLifecycleOverHTTP(t *testing.T) {
	env := newTestServer()
	chainID := env.createPoll(t, "alice")

	rr := env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/join", "bob", `{"name":"Bob"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("join: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/nominations", "bob", `{"text":"Pizza"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("nominate: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/nominations", "alice", `{"text":"Sushi"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("nominate: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/start", "bob", `{}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("non-admin start: expected 403, got %d", rr.Code)
	}
	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/start", "alice", `{}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/votes", "alice", `{"rankings":["nom_0","nom_1"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("vote: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/votes", "bob", `{"rankings":["nom_1"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("vote: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/votes", "bob", `{"rankings":["nom_0","nom_1","nom_2"]}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("oversized vote: expected 422, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/close", "alice", `{}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var closed struct {
		IsClosed bool `json:"is_closed"`
		Results  []struct {
			NominationID string `json:"nomination_id"`
			Score        uint64 `json:"score"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &closed); err != nil {
		t.Fatalf("decode close response: %v", err)
	}
	if !closed.IsClosed || len(closed.Results) != 2 {
		t.Fatalf("unexpected close response: %+v", closed)
	}
	if closed.Results[0].NominationID != "nom_1" || closed.Results[0].Score != 3 {
		t.Fatalf("expected nom_1 with score 3 first, got %+v", closed.Results[0])
	}

	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/close", "alice", `{}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("second close: expected 409, got %d", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/v1/polls/"+chainID+"/results", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("results: expected 200, got %d", rr.Code)
	}
}

func TestOperationsOnUnknownChainReturnNotFound(t *testing.T) {
	env := newTestServer()

	rr := env.do(t, http.MethodGet, "/v1/polls/chain_missing", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("overview: expected 404, got %d", rr.Code)
	}
	rr = env.do(t, http.MethodPost, "/v1/polls/chain_missing/join", "bob", `{"name":"Bob"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("join: expected 404, got %d", rr.Code)
	}
}

func TestMutationsRequireActingIdentity(t *testing.T) {
	env := newTestServer()
	chainID := env.createPoll(t, "alice")

	rr := env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/join", "", `{"name":"Ghost"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rr.Code)
	}

	// A body-level owner stands in for the header.
	rr = env.do(t, http.MethodPost, "/v1/polls/"+chainID+"/join", "", `{"name":"Bob","owner":"bob"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected body owner accepted, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDeliverMessageEndpointExecutesEnvelope(t *testing.T) {
	env := newTestServer()
	chainID := env.createPoll(t, "alice")

	body := `{"message_id":"m-1","kind":"start_vote","payload":{"user_id":"alice"}}`
	rr := env.do(t, http.MethodPost, "/v1/chains/"+chainID+"/messages", "", body)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("deliver: expected 202, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodGet, "/v1/polls/"+chainID, "", "")
	var overview struct {
		HasStarted bool `json:"has_started"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if !overview.HasStarted {
		t.Fatalf("expected delivered message to start voting")
	}
}

func TestDeliverMessageRejectsUnknownKind(t *testing.T) {
	env := newTestServer()
	rr := env.do(t, http.MethodPost, "/v1/chains/chain_x/messages", "", `{"message_id":"m-1","kind":"bogus","payload":{}}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestChainStatusReportsSpawnFacts(t *testing.T) {
	env := newTestServer()
	chainID := env.createPoll(t, "alice")

	rr := env.do(t, http.MethodGet, "/v1/chains/"+chainID, "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("chain status: expected 200, got %d", rr.Code)
	}
	var status struct {
		Owner         string `json:"owner"`
		FundingTokens uint64 `json:"funding_tokens"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Owner != "alice" || status.FundingTokens == 0 {
		t.Fatalf("unexpected chain status: %+v", status)
	}

	rr = env.do(t, http.MethodGet, "/v1/chains/chain_unknown", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown chain: expected 404, got %d", rr.Code)
	}
}
