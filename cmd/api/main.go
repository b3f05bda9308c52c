package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pmoncada/gemchat/internal/analysis/fallback"
	"github.com/pmoncada/gemchat/internal/config"
	"github.com/pmoncada/gemchat/internal/handler"
	"github.com/pmoncada/gemchat/internal/service/ai"
	chatstore "github.com/pmoncada/gemchat/internal/service/chat"
	"github.com/pmoncada/gemchat/internal/service/relay"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store := chatstore.NewStore()
	responder := fallback.New(rand.New(rand.NewSource(time.Now().UnixNano())))

	// Initialize the Gemini provider when credentials are present; the relay
	// runs fallback-only otherwise.
	var aiSvc *ai.Service
	if cfg.AI.Enabled() {
		aiSvc, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize gemini service: %v", err)
			log.Println("continuing with fallback responses only - check GEMINI_API_KEY")
		} else {
			log.Printf("gemini service initialized, model=%s", aiSvc.Model())
		}
	} else {
		log.Println("GEMINI_API_KEY not set, serving fallback responses only")
	}

	var provider relay.Provider
	if aiSvc != nil {
		provider = aiSvc
	}
	relaySvc := relay.NewService(provider, responder, store, cfg.AI.Timeout)

	router := handler.NewRouter(cfg, relaySvc, store, aiSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("gemchat backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
