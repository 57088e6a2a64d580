// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides the process-wide zerolog logger for Reelmatch.
//
// The build pipeline and the HTTP service share one configured logger:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("movies", 4806).Msg("Catalog loaded")
//
// Request-scoped logging picks up request and correlation IDs placed in
// the context by the API middleware:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Poster lookup degraded")
//
// Libraries that only speak log/slog (the suture supervisor hook) are
// bridged through SlogHandler.
//
// # Configuration
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  true, false (default: false)
package logging
