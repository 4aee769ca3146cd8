package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planets-api/internal/auth"
	"planets-api/internal/middleware"
	"planets-api/internal/planet"
	"planets-api/internal/server"
	"planets-api/internal/shared/config"
	"planets-api/internal/shared/database"
	"planets-api/internal/shared/logger"
	"planets-api/internal/shared/redis"
	"planets-api/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	log := slog.With("component", "main")

	db, err := database.Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if err := db.RunMigrations(context.Background(), cfg.Database.MigrationsPath); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.Connect(cfg.Redis)
	if err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis client", "error", err)
		}
	}()

	uploads, err := upload.NewStore(cfg.Upload, slog.Default())
	if err != nil {
		log.Error("Failed to initialize upload store", "error", err)
		os.Exit(1)
	}

	planetRepo := planet.NewRepository(db, slog.Default())
	planetService := planet.NewService(planetRepo, slog.Default())
	authService := auth.NewService(cfg.Auth, slog.Default())
	states := auth.NewStateStore(redisClient)

	routes := server.NewRoutes(cfg, db, planetService, authService, states, uploads, slog.Default())
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	corsMiddleware := middleware.NewCORS(cfg)

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
