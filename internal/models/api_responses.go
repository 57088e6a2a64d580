// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"title": "Aliens", "poster_url": "https://..."}],
//	  "metadata": {"timestamp": "2026-10-18T12:00:00Z", "query_time_ms": 45}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "MOVIE_NOT_FOUND", "message": "movie \"X\" not found in catalog"},
//	  "metadata": {"timestamp": "2026-10-18T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response timing and tracing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Count       int       `json:"count,omitempty"`
}

// APIError is the machine-readable error payload.
//
// Codes used by the API:
//   - VALIDATION_ERROR: query parameters failed validation
//   - MOVIE_NOT_FOUND: the requested title is not in the catalog
//   - RATE_LIMITED: the per-client request budget is exhausted
//   - NOT_FOUND / METHOD_NOT_ALLOWED: no such route
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus reports what the running service is answering from.
type HealthStatus struct {
	Status          string    `json:"status"`
	Version         string    `json:"version"`
	Movies          int       `json:"movies"`
	VocabularySize  int       `json:"vocabulary_size"`
	ArtifactVersion int       `json:"artifact_version"`
	ArtifactBuiltAt time.Time `json:"artifact_built_at"`
	PosterLookups   string    `json:"poster_lookups"`
	Uptime          float64   `json:"uptime_seconds"`
}
