package chat

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pmoncada/gemchat/internal/analysis/fallback"
	chatmodel "github.com/pmoncada/gemchat/internal/model/chat"
	chatstore "github.com/pmoncada/gemchat/internal/service/chat"
	"github.com/pmoncada/gemchat/internal/service/relay"
)

func setupRouter() (*chi.Mux, *chatstore.Store) {
	store := chatstore.NewStore()
	responder := fallback.New(rand.New(rand.NewSource(1)))
	relaySvc := relay.NewService(nil, responder, store, time.Second)
	handler := New(relaySvc, store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func postChat(t *testing.T, r *chi.Mux, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatFallbackExchange(t *testing.T) {
	r, store := setupRouter()

	resp := postChat(t, r, map[string]any{"message": "hello"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload chatmodel.Response
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if payload.UsingRealAI {
		t.Fatal("expected usingRealAI=false without a provider")
	}
	greetings := fallback.Replies(fallback.Greeting)
	found := false
	for _, option := range greetings {
		if option == payload.Response {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("response %q is not in the greeting fallback set", payload.Response)
	}

	if len(store.Get(chatmodel.DefaultSessionID)) != 2 {
		t.Fatal("expected the exchange to store 2 turns under the default session")
	}
}

func TestChatEmptyMessage(t *testing.T) {
	r, store := setupRouter()

	resp := postChat(t, r, map[string]any{"message": ""})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] == "" {
		t.Fatal("expected an error field in the body")
	}

	if len(store.Get(chatmodel.DefaultSessionID)) != 0 {
		t.Fatal("a rejected request must not mutate session state")
	}
}

func TestChatInvalidJSON(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetHistoryIdempotent(t *testing.T) {
	r, _ := setupRouter()
	postChat(t, r, map[string]any{"message": "hello", "sessionId": "s1"})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/chat/s1", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/chat/s1", nil))

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200s, got %d and %d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatal("repeated reads returned different payloads")
	}

	var payload struct {
		SessionID    string           `json:"sessionId"`
		History      []chatmodel.Turn `json:"history"`
		MessageCount int              `json:"messageCount"`
	}
	if err := json.Unmarshal(first.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if payload.MessageCount != 2 || len(payload.History) != 2 {
		t.Fatalf("expected 2 turns, got count=%d len=%d", payload.MessageCount, len(payload.History))
	}
}

func TestDeleteSession(t *testing.T) {
	r, _ := setupRouter()

	// Deleting a session that never existed.
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/chat/ghost", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		Deleted   bool   `json:"deleted"`
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if payload.Deleted {
		t.Fatal("expected deleted=false for an unknown session")
	}

	// Create, delete and verify the history is gone.
	postChat(t, r, map[string]any{"message": "hello", "sessionId": "s1"})

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/chat/s1", nil))
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if !payload.Deleted || payload.SessionID != "s1" {
		t.Fatalf("expected deleted=true for s1, got %+v", payload)
	}

	check := httptest.NewRecorder()
	r.ServeHTTP(check, httptest.NewRequest(http.MethodGet, "/chat/s1", nil))
	var history struct {
		MessageCount int `json:"messageCount"`
	}
	if err := json.Unmarshal(check.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if history.MessageCount != 0 {
		t.Fatalf("expected empty history after delete, got %d", history.MessageCount)
	}
}
