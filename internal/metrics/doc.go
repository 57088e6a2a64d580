// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with the default registry through promauto and are
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8501/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Build Metrics:
  - reelmatch_build_stage_duration_seconds: Stage latency (histogram)
    Labels: stage (acquire, load, normalize, compose, vectorize, similarity, save)
  - reelmatch_builds_total: Build runs (counter)
    Labels: result
  - reelmatch_malformed_fields_total: Unparseable metadata fields (counter)
    Labels: field (genres, keywords, cast, crew)

Model and Recommendation Metrics:
  - reelmatch_catalog_movies, reelmatch_vocabulary_size, reelmatch_artifact_version (gauges)
  - reelmatch_recommend_duration_seconds (histogram)
  - reelmatch_recommend_not_found_total (counter)
  - reelmatch_poster_lookups_total (counter)
    Labels: result (hit, unavailable, error, timeout, rejected)

Cache and Circuit Breaker Metrics:
  - cache_hits_total, cache_misses_total (counters)
    Labels: cache_type (memory, badger)
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total (counter)
    Labels: name, result
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)
    Labels: name, from_state, to_state

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
