package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chathandler "github.com/pmoncada/gemchat/internal/handler/chat"
	systemhandler "github.com/pmoncada/gemchat/internal/handler/system"
	middlewarePkg "github.com/pmoncada/gemchat/internal/middleware"

	"github.com/pmoncada/gemchat/internal/config"
	"github.com/pmoncada/gemchat/internal/service/ai"
	chatstore "github.com/pmoncada/gemchat/internal/service/chat"
	"github.com/pmoncada/gemchat/internal/service/relay"
	"github.com/pmoncada/gemchat/pkg/utils"
)

// NewRouter wires HTTP routes to core services. aiSvc is nil when the
// generation provider is not configured.
func NewRouter(cfg *config.Config, relaySvc *relay.Service, store *chatstore.Store, aiSvc *ai.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chathandler.New(relaySvc, store)
	systemHandler := systemhandler.New(aiSvc, cfg)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		systemHandler.RegisterRoutes(api)

		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusNotFound, map[string]string{
				"error":  "not found",
				"path":   r.URL.Path,
				"method": r.Method,
			})
		})
	})

	// Browser client.
	r.Handle("/*", http.FileServer(http.Dir(cfg.Server.StaticDir)))

	return r
}
