// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

// Package api provides the HTTP layer for the recommendation service.
//
// Routing uses Chi with production-hardened middleware from the Chi
// ecosystem (go-chi/cors for CORS, go-chi/httprate for rate limiting).
// Handlers are split across files by concern:
//
//   - handlers.go: Handler struct and constructor
//   - handlers_helpers.go: shared response helpers
//   - handlers_recommend.go: recommendation endpoint
//   - handlers_health.go: health and probe endpoints
//   - chi_middleware.go: middleware factories
//   - chi_router.go: route registration
//
// All responses use the models.APIResponse envelope with a "success" or
// "error" status and RFC3339 timestamps in metadata.
package api
