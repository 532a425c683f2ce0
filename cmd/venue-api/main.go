package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ms-venue/internal/config"
	"ms-venue/internal/logger"
	"ms-venue/internal/session"
	"ms-venue/internal/tickets/qr"
	"ms-venue/internal/venue_api"
)

func main() {
	loadedEnv := godotenv.Load() == nil
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Dir, "venue-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("APP", "Starting Venue API initialization")
	if loadedEnv {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	} else {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}

	ctx := context.Background()
	s, err := session.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("APP", fmt.Sprintf("Failed to open session: %v", err))
	}
	if s.CatalogErr != nil {
		log.Warn("CATALOG", fmt.Sprintf("Serving an incomplete catalog: %v", s.CatalogErr))
	}

	handler := venue_api.NewHandler(s, qr.NewGenerator(cfg.Tickets.QRSecret), log)
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Venue API running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	}
	if err := s.Close(ctxShutdown); err != nil {
		log.Error("APP", fmt.Sprintf("Failed to persist session: %v", err))
	} else {
		log.Info("APP", "✅ Venue API shutdown complete")
	}
}
