// Command modellister prints the Gemini models available to the configured
// API key. Useful for picking a GEMINI_MODEL value.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/pmoncada/gemchat/internal/config"
	"github.com/pmoncada/gemchat/internal/service/ai"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.AI.Enabled() {
		log.Fatal("gemini is not configured, set GEMINI_API_KEY first")
	}

	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	svc, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize gemini service: %v", err)
	}

	models, err := svc.ListModels(ctx)
	if err != nil {
		log.Fatalf("failed to list models: %v", err)
	}

	fmt.Printf("Available Gemini models (%d):\n", len(models))
	for _, m := range models {
		if m.DisplayName != "" {
			fmt.Printf("- %s (%s)\n", m.Name, m.DisplayName)
			continue
		}
		fmt.Printf("- %s\n", m.Name)
	}
}
