// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

package api

import (
	"time"

	"github.com/tomtom215/cloudcompass/internal/cache"
	"github.com/tomtom215/cloudcompass/internal/config"
	"github.com/tomtom215/cloudcompass/internal/explain"
	"github.com/tomtom215/cloudcompass/internal/logging"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, utility methods (this file)
//   - handlers_helpers.go: Shared helper functions
//   - handlers_recommend.go: Recommendation endpoint (POST/GET)
//   - handlers_health.go: Health and probe endpoints
type Handler struct {
	config    *config.Config
	enhancer  explain.Enhancer
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// The enhancer rewrites deterministic explanations into friendlier prose;
// pass nil to disable enhancement, in which case responses carry the
// joined deterministic sentences as the enhanced text.
//
// Recommendation responses are cached for 5 minutes keyed by the request
// payload. The engine is deterministic, so identical requests always
// produce identical responses and the cache is purely a latency win when
// enhancement is enabled.
//
// Example:
//
//	handler := api.NewHandler(cfg, enhancer)
//	router := api.NewRouter(handler, chiMw)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(cfg *config.Config, enhancer explain.Enhancer) *Handler {
	return &Handler{
		config:    cfg,
		enhancer:  enhancer,
		cache:     cache.New(5 * time.Minute),
		startTime: time.Now(),
	}
}

// ClearCache invalidates all cached recommendation responses.
//
// Thread Safety: Safe for concurrent access.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("Recommendation cache cleared")
	}
}

// GetCacheStats returns cache performance statistics.
func (h *Handler) GetCacheStats() cache.Stats {
	if h.cache != nil {
		return h.cache.GetStats()
	}
	return cache.Stats{}
}
