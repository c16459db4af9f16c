package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopkeeper/shopkeeper-api/internal/api"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
	"github.com/shopkeeper/shopkeeper-api/internal/infrastructure/audit"
	"github.com/shopkeeper/shopkeeper-api/internal/infrastructure/config"
	mongostore "github.com/shopkeeper/shopkeeper-api/internal/infrastructure/db/mongo"
	redisstore "github.com/shopkeeper/shopkeeper-api/internal/infrastructure/db/redis"
	"github.com/shopkeeper/shopkeeper-api/internal/infrastructure/ratelimit"
	"github.com/shopkeeper/shopkeeper-api/pkg/logger"
)

const (
	auditWorkers    = 4
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	var limiter ports.RateLimiter
	switch cfg.RateLimit.Store {
	case "memory":
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Window, cfg.RateLimit.Threshold)
	default:
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Window, cfg.RateLimit.Threshold)
	}

	dispatcher := audit.NewDispatcher(auditWorkers, mongostore.NewAuditSink(db), audit.NewLogSink(log), log)
	dispatcher.Start()

	e := api.NewRouter(db, rdb, limiter, dispatcher, api.RouterConfig{
		JWTSecret:          cfg.JWTSecret,
		APIKey:             cfg.APIKey,
		TokenTTL:           cfg.TokenTTL,
		LockoutMaxFailures: cfg.Lockout.MaxFailures,
		LockoutDuration:    cfg.Lockout.Duration,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Drain after the server: in-flight requests record right up to shutdown.
	dispatcher.Stop()
}
