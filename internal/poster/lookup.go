// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package poster resolves poster image URLs for movie titles.
//
// A Lookup is the single capability the recommendation service depends on.
// The production chain is OMDbClient wrapped by CircuitBreaker wrapped by
// Cached. Any error, including ErrNotAvailable, means the caller shows
// Placeholder instead.
package poster

import (
	"context"
	"errors"
)

// Placeholder is shown when no poster can be resolved.
const Placeholder = "https://via.placeholder.com/500x750.png?text=Poster+Not+Found"

// ErrNotAvailable reports that the upstream answered but has no poster for
// the title. It is not a service failure.
var ErrNotAvailable = errors.New("poster not available")

// ErrRateLimited reports that the local outbound limiter had no token in
// time. The upstream was never called.
var ErrRateLimited = errors.New("poster rate limit exceeded")

// Lookup resolves a title to a poster URL.
type Lookup interface {
	Poster(ctx context.Context, title string) (string, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, title string) (string, error)

// Poster calls f.
func (f LookupFunc) Poster(ctx context.Context, title string) (string, error) {
	return f(ctx, title)
}

// Disabled is used when no API key is configured.
type Disabled struct{}

// Poster always returns ErrNotAvailable.
func (Disabled) Poster(context.Context, string) (string, error) {
	return "", ErrNotAvailable
}

// OrPlaceholder returns url, or Placeholder when err is set or url is empty.
func OrPlaceholder(url string, err error) string {
	if err != nil || url == "" {
		return Placeholder
	}
	return url
}
