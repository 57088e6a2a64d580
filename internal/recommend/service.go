// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Defaults applied by NewService.
const (
	DefaultK             = 5
	DefaultPosterTimeout = 3 * time.Second
)

// Recommendation is one recommended movie with its poster.
type Recommendation struct {
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
}

// SimilarMovie is a neighbour with its similarity score.
type SimilarMovie struct {
	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// Options tunes a Service.
type Options struct {
	// K is the number of recommendations returned by Recommend.
	K int
	// PosterTimeout bounds each poster lookup.
	PosterTimeout time.Duration
}

// Service answers recommendation queries against an immutable Model.
// It is safe for concurrent use.
type Service struct {
	model   *Model
	posters poster.Lookup
	opts    Options
	logger  zerolog.Logger
}

// NewService creates a Service. A nil posters lookup disables posters.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(model *Model, posters poster.Lookup, opts Options, logger zerolog.Logger) *Service {
	if posters == nil {
		posters = poster.Disabled{}
	}
	if opts.K <= 0 {
		opts.K = DefaultK
	}
	if opts.PosterTimeout <= 0 {
		opts.PosterTimeout = DefaultPosterTimeout
	}
	return &Service{
		model:   model,
		posters: posters,
		opts:    opts,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}
}

// Model returns the model the service answers from.
func (s *Service) Model() *Model {
	return s.model
}

// ListTitles returns every catalog title in catalog order.
func (s *Service) ListTitles() []string {
	return s.model.Titles()
}

// Recommend returns up to K movies most similar to title, best first, each
// with a poster URL. Poster failures never fail the call; the placeholder
// is substituted instead. An unknown title returns a *NotFoundError.
func (s *Service) Recommend(ctx context.Context, title string) ([]Recommendation, error) {
	start := time.Now()

	neighbors, err := s.neighbors(title, s.opts.K)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, len(neighbors))
	var wg sync.WaitGroup
	for i, n := range neighbors {
		recs[i].Title = s.model.Movie(n.Index).Title
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			recs[i].PosterURL = s.posterFor(ctx, recs[i].Title)
		}(i)
	}
	wg.Wait()

	elapsed := time.Since(start)
	metrics.RecordRecommend(elapsed, false)
	s.log(ctx).Debug().
		Str("title", title).
		Int("results", len(recs)).
		Dur("duration", elapsed).
		Msg("Recommendations served")

	return recs, nil
}

// Similar returns up to k neighbours of title with their scores and no
// poster lookups.
func (s *Service) Similar(title string, k int) ([]SimilarMovie, error) {
	neighbors, err := s.neighbors(title, k)
	if err != nil {
		return nil, err
	}

	out := make([]SimilarMovie, len(neighbors))
	for i, n := range neighbors {
		mv := s.model.Movie(n.Index)
		out[i] = SimilarMovie{MovieID: mv.ID, Title: mv.Title, Score: n.Score}
	}
	return out, nil
}

func (s *Service) neighbors(title string, k int) ([]similarity.Neighbor, error) {
	idx, ok := s.model.Lookup(title)
	if !ok {
		metrics.RecordRecommend(0, true)
		return nil, &NotFoundError{Title: title}
	}

	neighbors, err := s.model.Matrix().Neighbors(idx, k)
	if err != nil {
		return nil, fmt.Errorf("neighbors of %q: %w", title, err)
	}
	return neighbors, nil
}

// posterFor resolves one poster under its own deadline.
func (s *Service) posterFor(ctx context.Context, title string) string {
	lookupCtx, cancel := context.WithTimeout(ctx, s.opts.PosterTimeout)
	defer cancel()

	url, err := s.posters.Poster(lookupCtx, title)
	result := posterResult(err)
	metrics.RecordPosterLookup(result)

	switch result {
	case metrics.PosterResultHit, metrics.PosterResultUnavailable:
	default:
		s.log(ctx).Warn().Err(err).Str("title", title).Str("result", result).Msg("Poster lookup failed, using placeholder")
	}
	return poster.OrPlaceholder(url, err)
}

// log adds the request and correlation ids carried by ctx.
func (s *Service) log(ctx context.Context) *zerolog.Logger {
	logCtx := s.logger.With()
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	l := logCtx.Logger()
	return &l
}

// posterResult classifies a lookup outcome for metrics.
func posterResult(err error) string {
	switch {
	case err == nil:
		return metrics.PosterResultHit
	case errors.Is(err, poster.ErrNotAvailable):
		return metrics.PosterResultUnavailable
	case poster.IsRejected(err):
		return metrics.PosterResultRejected
	case errors.Is(err, poster.ErrRateLimited):
		return metrics.PosterResultRateLimited
	case errors.Is(err, context.DeadlineExceeded):
		return metrics.PosterResultTimeout
	default:
		return metrics.PosterResultError
	}
}
