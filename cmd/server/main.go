package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/myhr/portal-gateway/internal/api"
	"github.com/myhr/portal-gateway/internal/infrastructure/config"
	redisdb "github.com/myhr/portal-gateway/internal/infrastructure/db/redis"
	"github.com/myhr/portal-gateway/pkg/logger"

	_ "github.com/myhr/portal-gateway/docs" // swagger docs
)

// @title        HR Portal Gateway API
// @version      1.0
// @description  Session-terminating gateway in front of the HR REST API: CSRF
// @description  token lifecycle, session resolution and role-gated routing.
// @BasePath     /

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "hr-portal-gateway",
	})

	if cfg.Session.Secret == "" {
		log.Fatal().Msg("SESSION_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	e := api.NewRouter(rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("hr_api", cfg.HRAPI.BaseURL).Msg("starting gateway")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
