package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/OlivierMantz/CommentAPI/internal/app"
	"github.com/OlivierMantz/CommentAPI/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		zlog.Init()
		zlog.Logger.Fatal().Err(err).Msg("failed to load config")
	}

	app.SetupLogging(cfg.Logging.Level)
	zlog.Logger.Info().Str("level", cfg.Logging.Level).Msg("zlog initialized")

	a, err := app.New(ctx, cfg)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to initialise application")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Start()
	}()

	select {
	case <-ctx.Done():
		zlog.Logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			zlog.Logger.Error().Err(err).Msg("HTTP server stopped")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()

	if err := a.Stop(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	zlog.Logger.Info().Msg("server stopped")
}
