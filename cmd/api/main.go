package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kevo-dev/Portfolio2/db"
	"github.com/kevo-dev/Portfolio2/internal/config"
	"github.com/kevo-dev/Portfolio2/internal/gateway"
	"github.com/kevo-dev/Portfolio2/internal/handler"
	"github.com/kevo-dev/Portfolio2/internal/kvstore"
	"github.com/kevo-dev/Portfolio2/internal/profile"
	"github.com/kevo-dev/Portfolio2/internal/repository"
	"github.com/kevo-dev/Portfolio2/internal/session"
	"github.com/kevo-dev/Portfolio2/pkg/llm"
	"github.com/robfig/cron/v3"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx := context.Background()

	p, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		log.Fatalf("error loading profile: %v", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("error opening %s store: %v", cfg.StoreBackend, err)
	}
	defer db.Close()
	defer db.CloseRedis()

	gen, err := llm.New(ctx, cfg.LLMProvider, cfg.LLMAPIKey, cfg.LLMModel)
	if err != nil {
		log.Fatalf("error creating %s client: %v", cfg.LLMProvider, err)
	}
	if cfg.LLMAPIKey == "" {
		slog.Warn("no API key configured, AI features will return configuration fallbacks", "provider", cfg.LLMProvider)
	}

	gw := gateway.New(gen, p, gateway.WithFeedSize(cfg.FeedSize))
	commentRepo := repository.NewCommentRepository(store)
	registry := session.NewRegistry(gw, commentRepo, gw, p, cfg.SessionTTL)

	sweeper := cron.New()
	if _, err := registry.Schedule(sweeper); err != nil {
		log.Fatalf("error scheduling visitor sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	blogHandler := handler.NewBlogHandler(gw)
	visitorHandler := handler.NewVisitorHandler(registry)
	siteHandler := handler.NewSiteHandler(p, store)

	r := gin.New()
	r.Use(gin.Logger(), handler.Recovery())

	allowedOrigins := cfg.AllowedOrigins()
	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.POST("/api/chat", blogHandler.PostChat)
	r.GET("/api/blog/posts", blogHandler.GetPosts)
	r.POST("/api/blog/expand", blogHandler.PostExpand)

	r.POST("/api/feed", visitorHandler.LoadFeed)
	r.GET("/api/feed", visitorHandler.GetFeed)
	r.POST("/api/feed/back", visitorHandler.Back)
	r.PUT("/api/feed/username", visitorHandler.SetUserName)
	r.GET("/api/feed/:id", visitorHandler.OpenArticle)
	r.POST("/api/feed/:id/like", visitorHandler.Like)
	r.POST("/api/feed/:id/comments", visitorHandler.AddComment)
	r.GET("/api/assistant", visitorHandler.GetAssistant)
	r.POST("/api/assistant/messages", visitorHandler.SendMessage)

	r.GET("/api/view", siteHandler.GetView)
	r.GET("/api/profile", siteHandler.GetProfile)
	r.GET("/sitemap.xml", siteHandler.GetSitemap)
	r.GET("/health", siteHandler.GetHealth)

	slog.Info("starting server", "port", cfg.Port, "provider", gen.Name(), "store", cfg.StoreBackend, "feed_size", cfg.FeedSize)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		if err := db.ConnectRedis(ctx, cfg.RedisURL); err != nil {
			return nil, err
		}
		return kvstore.NewRedis(db.Redis), nil
	case config.BackendPostgres:
		if err := db.Connect(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		return ensureSQL(ctx, kvstore.NewSQL(db.DB, kvstore.Postgres))
	case config.BackendSQLite:
		if err := db.ConnectSQLite(cfg.SQLitePath); err != nil {
			return nil, err
		}
		return ensureSQL(ctx, kvstore.NewSQL(db.DB, kvstore.SQLite))
	case config.BackendMemory:
		return kvstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func ensureSQL(ctx context.Context, s *kvstore.SQL) (kvstore.Store, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return s, nil
}
