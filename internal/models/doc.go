// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package models defines the JSON envelope shared by all HTTP endpoints.
//
// Every response is an APIResponse with status "success" or "error". Errors
// carry an APIError with a stable code; successful responses carry the
// payload in Data. Domain payloads such as recommend.Recommendation are
// defined by the package that produces them.
package models
