package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kevo-dev/Portfolio2/internal/config"
	"github.com/kevo-dev/Portfolio2/internal/gateway"
	"github.com/kevo-dev/Portfolio2/internal/profile"
	"github.com/kevo-dev/Portfolio2/pkg/llm"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	p, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		log.Fatalf("error loading profile: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen, err := llm.New(ctx, cfg.LLMProvider, cfg.LLMAPIKey, cfg.LLMModel)
	if err != nil {
		log.Fatalf("error creating %s client: %v", cfg.LLMProvider, err)
	}

	gw := gateway.New(gen, p, gateway.WithFeedSize(cfg.FeedSize))

	slog.Info("synthesizing feed", "provider", gen.Name(), "size", cfg.FeedSize)

	res := gw.SynthesizeFeed(ctx)
	if res.Outcome != gateway.OutcomeOK {
		log.Fatalf("feed synthesis failed: %s", res.Outcome)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Articles); err != nil {
		log.Fatalf("error writing feed: %v", err)
	}

	slog.Info("feed synthesized", "article_count", len(res.Articles))
}
