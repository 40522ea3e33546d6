package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/book-tracker-be/internal/app"
	"github.com/isdelr/book-tracker-be/internal/config"
	"github.com/isdelr/book-tracker-be/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	a := app.New(cfg)
	if err := a.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	case err := <-a.Errors():
		log.Error().Err(err).Msg("Server failed, shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.Stop(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
