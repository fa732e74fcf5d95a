// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

// Package metrics defines the Prometheus collectors exported on /metrics and
// small Record helpers so callers never touch label values directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by several collectors.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeTimeout = "timeout"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
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

	// Catalog Metrics
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Outbound catalog requests by operation and outcome",
		},
		[]string{"operation", "outcome"}, // outcome: success, not_found, failure, rejected
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Outbound catalog request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	CatalogLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_lookups_total",
			Help: "Movie resolutions by lookup kind and result",
		},
		[]string{"kind", "result"}, // kind: id, title. result: resolved, unavailable
	)

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Catalog cache hits by tier",
		},
		[]string{"tier"}, // memory, disk
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Catalog cache misses across all tiers",
		},
	)

	CatalogCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_cache_entries",
			Help: "Current number of movies held in the memory tier",
		},
	)

	// Generative Service Metrics
	GenAIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_requests_total",
			Help: "Generative service calls by provider, purpose and outcome",
		},
		[]string{"provider", "purpose", "outcome"},
	)

	GenAIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genai_request_duration_seconds",
			Help:    "Generative service call latency in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 30},
		},
		[]string{"provider"},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Recommendation responses by source",
		},
		[]string{"source"}, // generated, fallback, empty
	)

	RecommendationItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_items",
			Help:    "Number of movies per recommendation response",
			Buckets: []float64{0, 1, 2, 3, 4},
		},
	)

	RecommendationCandidatesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_candidates_dropped_total",
			Help: "Candidate titles discarded before resolution",
		},
		[]string{"reason"}, // missing_title, unresolved, malformed
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End to end recommendation latency in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
	)

	// Sentiment Metrics
	SentimentClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_classifications_total",
			Help: "Sentiment classifications by label and path",
		},
		[]string{"label", "path"}, // path: heuristic, generative, degraded
	)

	// Review Metrics
	ReviewsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_created_total",
			Help: "Review creation attempts by result",
		},
		[]string{"result"}, // created, duplicate, invalid, error
	)

	// Auth Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Register and login attempts by result",
		},
		[]string{"operation", "result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Supervisor Metrics
	ServiceRestarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supervisor_service_restarts_total",
			Help: "Service restarts observed by the supervisor",
		},
		[]string{"service"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordCatalogRequest records one outbound catalog call.
func RecordCatalogRequest(operation, outcome string, duration time.Duration) {
	CatalogRequests.WithLabelValues(operation, outcome).Inc()
	CatalogRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCatalogLookup records whether a movie resolution produced metadata.
func RecordCatalogLookup(kind string, resolved bool) {
	result := "resolved"
	if !resolved {
		result = "unavailable"
	}
	CatalogLookups.WithLabelValues(kind, result).Inc()
}

// RecordCatalogCacheHit counts a hit in the given tier.
func RecordCatalogCacheHit(tier string) {
	CatalogCacheHits.WithLabelValues(tier).Inc()
}

// RecordCatalogCacheMiss counts a miss in every tier.
func RecordCatalogCacheMiss() {
	CatalogCacheMisses.Inc()
}

// SetCatalogCacheEntries reports the memory tier size.
func SetCatalogCacheEntries(n int) {
	CatalogCacheEntries.Set(float64(n))
}

// RecordGenAICall records one generative service call.
func RecordGenAICall(provider, purpose, outcome string, duration time.Duration) {
	GenAIRequests.WithLabelValues(provider, purpose, outcome).Inc()
	GenAIRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordRecommendation records a completed recommendation response.
func RecordRecommendation(source string, items int, duration time.Duration) {
	RecommendationsServed.WithLabelValues(source).Inc()
	RecommendationItems.Observe(float64(items))
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordCandidateDropped counts a discarded candidate title.
func RecordCandidateDropped(reason string) {
	RecommendationCandidatesDropped.WithLabelValues(reason).Inc()
}

// RecordSentiment records one classification.
func RecordSentiment(label, path string) {
	SentimentClassifications.WithLabelValues(label, path).Inc()
}

// RecordReviewCreate records a review creation attempt.
func RecordReviewCreate(result string) {
	ReviewsCreated.WithLabelValues(result).Inc()
}

// RecordAuthAttempt records a register or login attempt.
func RecordAuthAttempt(operation string, success bool) {
	result := OutcomeSuccess
	if !success {
		result = OutcomeFailure
	}
	AuthAttempts.WithLabelValues(operation, result).Inc()
}

// RecordServiceRestart counts a supervised service restart.
func RecordServiceRestart(service string) {
	ServiceRestarts.WithLabelValues(service).Inc()
}
