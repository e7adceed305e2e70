// Package main is the entry point for the procurement API server.
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

	"procurement/internal/config"
	"procurement/internal/domain/acquisition"
	"procurement/internal/domain/auth"
	v1 "procurement/internal/infrastructure/http/v1"
	"procurement/internal/infrastructure/metrics"
	"procurement/internal/infrastructure/storage"
	"procurement/pkg/logger"
)

func main() {
	os.Exit(run())
}

// waitForStop blocks until a signal arrives or the server fails and
// returns the exit code to use once shutdown completes.
func waitForStop(log *logger.Logger, quit <-chan os.Signal, serverErr <-chan error) int {
	select {
	case sig := <-quit:
		log.Infow("signal received", "signal", sig.String())
		return 0
	case err := <-serverErr:
		log.Errorw("server failed", "error", err)
		return 1
	}
}

// run wires and serves the API. It returns the process exit code after
// every deferred cleanup has run.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting procurement server", "storage", cfg.StorageDriver)

	// --- Storage ---
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Errorw("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warnw("failed to close storage", "error", err)
		}
	}()

	// --- Acquisition service ---
	m := metrics.New()
	service := acquisition.NewService(ctx, store,
		acquisition.WithLogger(log),
		acquisition.WithSaveObserver(m),
	)
	m.RegisterHooks(service.Hooks())

	// --- Router and optional JWT ---
	routerCfg := v1.RouterConfig{
		Service:         service,
		Logger:          log,
		Metrics:         m,
		Storage:         store,
		StorageDriver:   cfg.StorageDriver,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
	}
	if cfg.AuthEnabled() {
		jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
		jwtConfig.Issuer = cfg.JWTIssuer
		routerCfg.JWTValidator = auth.NewJWTService(jwtConfig)
		log.Info("bearer token auth enabled for mutating routes")
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      v1.NewRouter(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; a listen failure still goes through the
	// shutdown path below so the final state is written.
	serverErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := waitForStop(log, quit, serverErr)

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	// Requests are drained; write the final state.
	if err := service.Close(shutdownCtx); err != nil {
		log.Errorw("failed to write final state", "error", err)
	}

	log.Info("server stopped")
	return exitCode
}
