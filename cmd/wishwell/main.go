package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/wishwell/wishwell/internal/api"
	"github.com/wishwell/wishwell/internal/cache"
	"github.com/wishwell/wishwell/internal/config"
	"github.com/wishwell/wishwell/internal/database"
	"github.com/wishwell/wishwell/internal/fetcher"
	"github.com/wishwell/wishwell/internal/ratelimit"
	"github.com/wishwell/wishwell/internal/scraper"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Name,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// The cache fails open, so a missing redis only costs repeat fetches.
	var productCache api.ProductCache
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, product cache disabled", "error", err)
	} else {
		productCache = cache.New(redisClient, time.Duration(cfg.Scraper.CacheTTLMinutes)*time.Minute, logger)
	}

	limiter := ratelimit.NewKeyedLimiter(time.Duration(cfg.Scraper.RateLimitSeconds) * time.Second)
	scraperService := scraper.NewService(fetcher.New(nil), limiter, logger)

	handlers := api.NewHandlers(scraperService, db, productCache, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(api.RateLimitMiddleware(cfg.Server.RequestsPerSecond, cfg.Server.Burst))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/products/preview", handlers.PreviewProduct)

		r.Route("/wishlists", func(r chi.Router) {
			r.Post("/", handlers.CreateWishlist)
			r.Get("/", handlers.ListWishlists)
			r.Get("/{wishlistID}", handlers.GetWishlist)
			r.Delete("/{wishlistID}", handlers.DeleteWishlist)
			r.Get("/{wishlistID}/items", handlers.ListItems)
			r.Post("/{wishlistID}/import", handlers.ImportWishlist)
		})

		r.Post("/items/{itemID}/purchase", handlers.PurchaseItem)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "port", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
