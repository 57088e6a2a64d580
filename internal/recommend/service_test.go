// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/poster"
)

func TestService_RecommendReturnsNeighborsWithPosters(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	posters := poster.LookupFunc(func(_ context.Context, title string) (string, error) {
		calls.Add(1)
		return "https://img.example/" + title + ".jpg", nil
	})
	svc := NewService(testModel(t), posters, Options{}, zerolog.Nop())

	recs, err := svc.Recommend(context.Background(), "Avatar")
	require.NoError(t, err)
	require.Len(t, recs, DefaultK)
	assert.Equal(t, int32(DefaultK), calls.Load())

	assert.Equal(t, "Aliens", recs[0].Title)
	for _, r := range recs {
		assert.Equal(t, "https://img.example/"+r.Title+".jpg", r.PosterURL)
	}
}

func TestService_RecommendExcludesQueriedRow(t *testing.T) {
	t.Parallel()

	svc := NewService(testModel(t), nil, Options{K: 7}, zerolog.Nop())
	recs, err := svc.Recommend(context.Background(), "Heat")
	require.NoError(t, err)
	require.Len(t, recs, 7)
	for _, r := range recs {
		assert.NotEqual(t, "Heat", r.Title)
		assert.Equal(t, poster.Placeholder, r.PosterURL)
	}
}

func TestService_RecommendPosterFailuresUsePlaceholder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "generic error", err: errors.New("upstream exploded")},
		{name: "not available", err: poster.ErrNotAvailable},
		{name: "breaker open", err: gobreaker.ErrOpenState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			posters := poster.LookupFunc(func(context.Context, string) (string, error) {
				return "", tt.err
			})
			svc := NewService(testModel(t), posters, Options{}, zerolog.Nop())

			recs, err := svc.Recommend(context.Background(), "Avatar")
			require.NoError(t, err)
			require.Len(t, recs, 5)
			for _, r := range recs {
				assert.Equal(t, poster.Placeholder, r.PosterURL)
				assert.NotEmpty(t, r.Title)
			}
		})
	}
}

func TestService_RecommendSlowPosterTimesOut(t *testing.T) {
	t.Parallel()

	posters := poster.LookupFunc(func(ctx context.Context, _ string) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(10 * time.Second):
			return "https://img.example/late.jpg", nil
		}
	})
	svc := NewService(testModel(t), posters, Options{PosterTimeout: 20 * time.Millisecond}, zerolog.Nop())

	start := time.Now()
	recs, err := svc.Recommend(context.Background(), "Gravity")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "lookups run concurrently under their own deadline")
	require.Len(t, recs, 5)
	for _, r := range recs {
		assert.Equal(t, poster.Placeholder, r.PosterURL)
	}
}

func TestService_RecommendUnknownTitle(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	posters := poster.LookupFunc(func(context.Context, string) (string, error) {
		calls.Add(1)
		return "", nil
	})
	svc := NewService(testModel(t), posters, Options{}, zerolog.Nop())

	recs, err := svc.Recommend(context.Background(), "Unknown Title 123")
	require.Error(t, err)
	assert.Nil(t, recs)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Unknown Title 123", nf.Title)
	assert.Equal(t, `movie "Unknown Title 123" not found in catalog`, err.Error())
	assert.Zero(t, calls.Load())
}

func TestService_RecommendIsDeterministic(t *testing.T) {
	t.Parallel()

	svc := NewService(testModel(t), nil, Options{}, zerolog.Nop())
	first, err := svc.Recommend(context.Background(), "Interstellar")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.Recommend(context.Background(), "Interstellar")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestService_ListTitles(t *testing.T) {
	t.Parallel()

	svc := NewService(testModel(t), nil, Options{}, zerolog.Nop())
	assert.Equal(t, []string{
		"Avatar", "Aliens", "Titanic", "The Notebook",
		"Gravity", "Interstellar", "Heat", "Avatar",
	}, svc.ListTitles())
}

func TestService_Similar(t *testing.T) {
	t.Parallel()

	svc := NewService(testModel(t), nil, Options{}, zerolog.Nop())

	got, err := svc.Similar("Avatar", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Aliens", got[0].Title)
	assert.Equal(t, int64(679), got[0].MovieID)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}

	all, err := svc.Similar("Avatar", 100)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	_, err = svc.Similar("Nope", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPosterResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "hit", err: nil, want: metrics.PosterResultHit},
		{name: "unavailable", err: poster.ErrNotAvailable, want: metrics.PosterResultUnavailable},
		{name: "wrapped unavailable", err: fmt.Errorf("omdb: %w", poster.ErrNotAvailable), want: metrics.PosterResultUnavailable},
		{name: "open breaker", err: gobreaker.ErrOpenState, want: metrics.PosterResultRejected},
		{name: "half-open limit", err: gobreaker.ErrTooManyRequests, want: metrics.PosterResultRejected},
		{name: "throttled", err: fmt.Errorf("%w: %w", poster.ErrRateLimited, context.DeadlineExceeded), want: metrics.PosterResultRateLimited},
		{name: "deadline", err: context.DeadlineExceeded, want: metrics.PosterResultTimeout},
		{name: "other", err: errors.New("boom"), want: metrics.PosterResultError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, posterResult(tt.err))
		})
	}
}
