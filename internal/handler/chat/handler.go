package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/pmoncada/gemchat/internal/model/chat"
	chatstore "github.com/pmoncada/gemchat/internal/service/chat"
	"github.com/pmoncada/gemchat/internal/service/relay"
	"github.com/pmoncada/gemchat/pkg/utils"
)

// Handler serves the chat relay endpoints.
type Handler struct {
	relay *relay.Service
	store *chatstore.Store
}

// New creates the chat handler.
func New(relaySvc *relay.Service, store *chatstore.Store) *Handler {
	return &Handler{
		relay: relaySvc,
		store: store,
	}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat/{sessionID}", h.handleGetHistory)
	r.Delete("/chat/{sessionID}", h.handleClearSession)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatmodel.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.relay.HandleChat(r.Context(), payload)
	if err != nil {
		if errors.Is(err, relay.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[http] chat exchange failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, response)
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	history := h.store.Get(sessionID)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId":    sessionID,
		"history":      history,
		"messageCount": len(history),
	})
}

func (h *Handler) handleClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	deleted := h.store.Clear(sessionID)

	message := "session cleared"
	if !deleted {
		message = "session not found"
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":   message,
		"sessionId": sessionID,
		"deleted":   deleted,
	})
}
