// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Poster lookup results.
const (
	PosterResultHit         = "hit"
	PosterResultUnavailable = "unavailable"
	PosterResultError       = "error"
	PosterResultTimeout     = "timeout"
	PosterResultRejected    = "rejected"
	PosterResultRateLimited = "rate_limited"
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
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
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

	// Build Metrics
	BuildStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_build_stage_duration_seconds",
			Help:    "Duration of each offline build stage",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"stage"},
	)

	BuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_builds_total",
			Help: "Total number of build runs",
		},
		[]string{"result"}, // "success", "failure"
	)

	MalformedFields = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_malformed_fields_total",
			Help: "Metadata fields that could not be parsed and were treated as empty",
		},
		[]string{"field"},
	)

	// Model Metrics
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_vocabulary_size",
			Help: "Number of terms in the loaded vocabulary",
		},
	)

	ArtifactVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_artifact_version",
			Help: "Version of the loaded build artifact",
		},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommend_duration_seconds",
			Help:    "Duration of recommend calls including poster lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	RecommendNotFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_recommend_not_found_total",
			Help: "Recommend calls for titles absent from the catalog",
		},
	)

	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_poster_lookups_total",
			Help: "Poster lookups by result",
		},
		[]string{"result"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "memory", "badger"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
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

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

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

// RecordBuildStage records how long one build stage took.
func RecordBuildStage(stage string, duration time.Duration) {
	BuildStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordBuild records the outcome of a build run.
func RecordBuild(err error) {
	if err != nil {
		BuildsTotal.WithLabelValues("failure").Inc()
		return
	}
	BuildsTotal.WithLabelValues("success").Inc()
}

// RecordMalformedField counts a metadata field that failed to parse.
func RecordMalformedField(field string) {
	MalformedFields.WithLabelValues(field).Inc()
}

// SetModelInfo publishes the size of the loaded model.
func SetModelInfo(movies, vocabulary, version int) {
	CatalogMovies.Set(float64(movies))
	VocabularySize.Set(float64(vocabulary))
	ArtifactVersion.Set(float64(version))
}

// RecordRecommend records a recommend call. notFound marks unknown titles.
func RecordRecommend(duration time.Duration, notFound bool) {
	if notFound {
		RecommendNotFound.Inc()
		return
	}
	RecommendDuration.Observe(duration.Seconds())
}

// RecordPosterLookup counts one poster lookup by result.
func RecordPosterLookup(result string) {
	PosterLookups.WithLabelValues(result).Inc()
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}
