// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api exposes the recommendation service over HTTP using the chi router.

Endpoints:

	GET /api/v1/movies                   every catalog title, in catalog order
	GET /api/v1/recommend?movie=<title>  five recommendations with poster URLs
	GET /api/v1/similar?movie=&k=        up to k neighbours with scores (1..50)
	GET /api/v1/health                   model and artifact summary
	GET /api/v1/health/live              liveness check
	GET /metrics                         Prometheus exposition
	GET /swagger/*                       Swagger UI; document at /swagger/doc.json

All JSON responses use the models.APIResponse envelope. Missing or invalid
query parameters return 400 VALIDATION_ERROR; an unknown title returns 404
MOVIE_NOT_FOUND. Poster failures never fail a request: the placeholder URL
is substituted by the recommendation service.

Middleware stack (outermost first): request id, access log, real IP,
panic recovery, CORS, gzip, then per-group rate limiting, security headers
and Prometheus request metrics.
*/
package api
