package system

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pmoncada/gemchat/internal/config"
	"github.com/pmoncada/gemchat/internal/service/ai"
	"github.com/pmoncada/gemchat/pkg/utils"
)

const version = "1.0.0"

// Handler serves the service-level endpoints: health, info and model listing.
type Handler struct {
	ai  *ai.Service
	cfg *config.Config
}

// New creates the system handler. aiSvc is nil when Gemini is not configured.
func New(aiSvc *ai.Service, cfg *config.Config) *Handler {
	return &Handler{ai: aiSvc, cfg: cfg}
}

// RegisterRoutes mounts the system routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/info", h.handleInfo)
	r.Get("/models", h.handleListModels)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"geminiAvailable": h.ai != nil,
		"hasApiKey":       h.cfg.AI.APIKey != "",
		"usingRealAI":     h.ai != nil,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"environment":     h.cfg.Environment,
	})
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	mode := "fallback"
	if h.ai != nil {
		mode = "gemini"
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"name":       "gemchat",
		"version":    version,
		"status":     "running",
		"aiProvider": "Google Gemini",
		"mode":       mode,
		"endpoints": []string{
			"POST /api/chat",
			"GET /api/chat/{sessionID}",
			"DELETE /api/chat/{sessionID}",
			"GET /api/health",
			"GET /api/info",
			"GET /api/models",
		},
	})
}

func (h *Handler) handleListModels(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "gemini is not configured")
		return
	}

	models, err := h.ai.ListModels(r.Context())
	if err != nil {
		log.Printf("[http] model listing failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "failed to list models")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"models": models})
}
