package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/moviepulse/awards-voting-api/config"
	"github.com/moviepulse/awards-voting-api/internal/api"
	"github.com/moviepulse/awards-voting-api/internal/catalog"
	"github.com/moviepulse/awards-voting-api/internal/logging"
	"github.com/moviepulse/awards-voting-api/internal/metrics"
	"github.com/moviepulse/awards-voting-api/internal/middleware"
	"github.com/moviepulse/awards-voting-api/internal/models"
	"github.com/moviepulse/awards-voting-api/internal/store"
	"github.com/moviepulse/awards-voting-api/internal/utils"
	"github.com/moviepulse/awards-voting-api/internal/voting"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := store.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	st := store.New(rdb)
	logger.Info().Str("addr", cfg.RedisURI).Msg("Redis connected")

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		seedAdmin(ctx, st, cfg, logger)
	}

	reader := catalog.NewReader(st, logger)
	votes := voting.New(st, cfg.VoteCooldown, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), metrics.Middleware())
	api.New(cfg, st, reader, votes, logger).RegisterRoutes(r)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("awards voting API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := st.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close store")
	}
}

// seedAdmin makes sure the configured back-office account exists. A taken
// username means the account was seeded on an earlier boot.
func seedAdmin(ctx context.Context, st *store.Store, cfg config.Config, logger zerolog.Logger) {
	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to hash admin password")
	}
	_, err = st.CreateUser(ctx, cfg.AdminUsername, hash, models.RoleAdmin)
	switch {
	case err == nil:
		logger.Info().Str("username", cfg.AdminUsername).Msg("admin account created")
	case errors.Is(err, store.ErrUserExists):
		logger.Debug().Str("username", cfg.AdminUsername).Msg("admin account already present")
	default:
		logger.Fatal().Err(err).Msg("failed to seed admin account")
	}
}
