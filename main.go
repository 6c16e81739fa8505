package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rps/internal/config"
	"github.com/robalobadob/rps/internal/game"
	"github.com/robalobadob/rps/internal/httpserver"
	"github.com/robalobadob/rps/internal/janitor"
	"github.com/robalobadob/rps/internal/labels"
	"github.com/robalobadob/rps/internal/store"
	"github.com/robalobadob/rps/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	cfg.SetupLogging(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}

	mem := store.NewMemoryStore(func() *game.Session {
		return game.NewSession(game.RandomPicker{}, labels.Messages{})
	})
	jan, err := janitor.Start(mem, cfg.SweepInterval, cfg.SessionIdle)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start session janitor")
	}

	srv := httpserver.New(mem, httpserver.Options{
		CookieName: cfg.SessionCookie,
		Secret:     []byte(cfg.SessionSecret),
		Secure:     cfg.Production(),
		Timeout:    cfg.RequestTimeout,
	})

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting rps server")
		errc <- srv.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if err != nil {
			log.Error().Err(err).Msg("server exited")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	if err := jan.Stop(); err != nil {
		log.Warn().Err(err).Msg("janitor shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("tracing shutdown")
	}
}
