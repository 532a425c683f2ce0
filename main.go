package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ms-venue/internal/config"
	"ms-venue/internal/console"
	"ms-venue/internal/logger"
	"ms-venue/internal/session"
)

func main() {
	loadedEnv := godotenv.Load() == nil
	cfg := config.Load()

	// the menu owns stdout, so terminal logging goes to stderr and only
	// warnings make it there
	opts := []logger.Option{logger.WithTerminal(os.Stderr), logger.WithMinLevel(logger.WARN)}
	if cfg.Log.Quiet {
		opts = []logger.Option{logger.WithTerminal(io.Discard)}
	}
	log, err := logger.NewLogger(cfg.Log.Dir, "venue", opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if !loadedEnv {
		log.Debug("CONFIG", ".env file not found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("APP", "Loading tournament catalog")
	s, err := session.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("APP", fmt.Sprintf("Failed to open session: %v", err))
	}
	if s.CatalogErr != nil {
		log.Warn("CATALOG", fmt.Sprintf("Catalog incomplete: %v", s.CatalogErr))
	}

	runErr := console.New(s, os.Stdin, os.Stdout).Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Close(closeCtx); err != nil {
		log.Error("APP", fmt.Sprintf("Failed to persist session: %v", err))
	}
	if runErr != nil {
		log.Error("APP", fmt.Sprintf("Console stopped: %v", runErr))
		os.Exit(1)
	}
}
