// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

// Package main is the entry point for the Cloudcompass server.
//
// Cloudcompass recommends a cloud provider (AWS, Azure, or GCP) and a
// service model (IaaS, PaaS, or SaaS) from qualitative preferences. The
// scoring engine is fully deterministic; an optional Gemini-backed
// enhancer rewrites the explanation text and fails open to the
// deterministic text when unavailable.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: Initialize zerolog with the configured level and format
//  3. Enhancer (optional): Gemini client behind a circuit breaker and rate limiter
//  4. HTTP Server: Chi router with recommendation, health, and metrics endpoints
//  5. Supervisor: suture tree that restarts the HTTP server on failure
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (HTTP_PORT, GEMINI_API_KEY, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
// Deterministic mode (no AI enhancement):
//
//	./cloudcompass
//
// With Gemini explanation enhancement:
//
//	export ENABLE_AI_EXPLANATION=true
//	export GEMINI_API_KEY=your-api-key
//	./cloudcompass
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (configurable timeout)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cloudcompass/internal/api"
	"github.com/tomtom215/cloudcompass/internal/config"
	"github.com/tomtom215/cloudcompass/internal/explain"
	"github.com/tomtom215/cloudcompass/internal/logging"
	"github.com/tomtom215/cloudcompass/internal/supervisor"
	"github.com/tomtom215/cloudcompass/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Bool("enhancer_enabled", cfg.Enhancer.Enabled).
		Msg("Starting Cloudcompass")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enhancer := buildEnhancer(ctx, cfg)

	handler := api.NewHandler(cfg, enhancer)
	chiMw := api.NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewMaintenanceService(handler.GetCacheStats, time.Minute))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// buildEnhancer constructs the explanation enhancer from configuration.
// Returns nil when enhancement is disabled or the client cannot be
// created; the service then serves deterministic explanations only.
// The API key is never logged.
func buildEnhancer(ctx context.Context, cfg *config.Config) explain.Enhancer {
	if !cfg.Enhancer.Enabled {
		logging.Info().Msg("AI explanation enhancement disabled")
		return nil
	}

	enhancer, err := explain.NewGeminiEnhancer(ctx, explain.GeminiConfig{
		APIKey:            cfg.Enhancer.APIKey,
		Model:             cfg.Enhancer.Model,
		Timeout:           cfg.Enhancer.Timeout,
		RequestsPerMinute: cfg.Enhancer.RequestsPerMinute,
		CacheTTL:          cfg.Enhancer.CacheTTL,
	})
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to initialize explanation enhancer, continuing without it")
		return nil
	}

	logging.Info().Str("model", cfg.Enhancer.Model).Msg("AI explanation enhancement enabled")
	return enhancer
}
