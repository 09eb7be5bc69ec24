// Package config reads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kevo-dev/Portfolio2/internal/model"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Port        string
	FrontendURL string

	LLMProvider string
	LLMAPIKey   string
	LLMModel    string
	FeedSize    int

	StoreBackend string
	DatabaseURL  string
	RedisURL     string
	SQLitePath   string

	ProfilePath string
	SessionTTL  time.Duration
}

// Load builds a Config from the process environment. Call godotenv.Load
// first to pick up a local .env file.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:         envOr(getenv, "PORT", "8080"),
		FrontendURL:  getenv("FRONTEND_URL"),
		LLMProvider:  strings.ToLower(envOr(getenv, "LLM_PROVIDER", "gemini")),
		LLMModel:     getenv("LLM_MODEL"),
		FeedSize:     model.DefaultFeedSize,
		StoreBackend: strings.ToLower(envOr(getenv, "STORE_BACKEND", BackendMemory)),
		DatabaseURL:  getenv("DATABASE_URL"),
		RedisURL:     getenv("REDIS_URL"),
		SQLitePath:   envOr(getenv, "SQLITE_PATH", "portfolio.db"),
		ProfilePath:  getenv("PROFILE_PATH"),
		SessionTTL:   2 * time.Hour,
	}

	switch cfg.LLMProvider {
	case "gemini", "google":
		cfg.LLMAPIKey = getenv("GEMINI_API_KEY")
		if cfg.LLMAPIKey == "" {
			cfg.LLMAPIKey = getenv("API_KEY")
		}
	case "openai":
		cfg.LLMAPIKey = getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.LLMAPIKey = getenv("ANTHROPIC_API_KEY")
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}

	if raw := getenv("FEED_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse FEED_SIZE: %w", err)
		}
		if n != model.DefaultFeedSize && n != model.ExtendedFeedSize {
			return nil, fmt.Errorf("FEED_SIZE must be %d or %d, got %d", model.DefaultFeedSize, model.ExtendedFeedSize, n)
		}
		cfg.FeedSize = n
	}

	if raw := getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, errors.New("SESSION_TTL must be positive")
		}
		cfg.SessionTTL = ttl
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL is required for the redis store")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}

// AllowedOrigins is the CORS allow list: the local dev frontend plus
// FRONTEND_URL when set.
func (c *Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:3000"}
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	return origins
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
