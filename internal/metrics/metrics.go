// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

// Package metrics provides Prometheus instrumentation for Cloudcompass:
// API endpoint latency and throughput, recommendation outcomes, the AI
// enhancer circuit breaker, and explanation cache efficiency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total recommendations served, by provider and service model",
		},
		[]string{"provider", "service_model"},
	)

	RecommendationConfidence = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_confidence_percent",
			Help:    "Distribution of recommendation confidence percentages",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"level"},
	)

	// AI Enhancer Metrics
	EnhancerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enhancer_requests_total",
			Help: "Total enhancer invocations by outcome (success, fallback, cached)",
		},
		[]string{"outcome"},
	)

	EnhancerDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enhancer_duration_seconds",
			Help:    "Latency of external enhancer calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		},
	)

	// Explanation Cache Metrics
	ExplanationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "explanation_cache_hits_total",
			Help: "Total number of enhanced explanation cache hits",
		},
	)

	ExplanationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "explanation_cache_misses_total",
			Help: "Total number of enhanced explanation cache misses",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total requests through circuit breakers by result",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current consecutive failure count per circuit breaker",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records a served recommendation.
func RecordRecommendation(provider, serviceModel string, confidencePercent float64, confidenceLevel string) {
	RecommendationsTotal.WithLabelValues(provider, serviceModel).Inc()
	RecommendationConfidence.WithLabelValues(confidenceLevel).Observe(confidencePercent)
}

// RecordEnhancerOutcome records an enhancer invocation outcome.
// Outcomes: "success", "fallback", "cached", "disabled".
func RecordEnhancerOutcome(outcome string) {
	EnhancerRequestsTotal.WithLabelValues(outcome).Inc()
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
