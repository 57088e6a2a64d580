// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides the HTTP middleware shared by every API route.

Key Components:

  - RequestID: X-Request-ID propagation plus request and correlation ids in
    the logging context
  - PrometheusMetrics: request count, duration and in-flight gauge, labelled
    by the chi route pattern so path values never explode label cardinality
  - AccessLog: one structured zerolog event per completed request

All middleware has the chi signature func(http.Handler) http.Handler and is
installed with r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.PrometheusMetrics)

RequestID must run first so that later middleware and handlers can read the
ids through logging.RequestIDFromContext and logging.Ctx.
*/
package middleware
