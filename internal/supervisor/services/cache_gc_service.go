// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// defaultGCInterval is used when no interval is configured.
const defaultGCInterval = time.Hour

// GarbageCollector reclaims space in a persistent store.
// *poster.BadgerStore satisfies it.
type GarbageCollector interface {
	RunGC() error
}

// CacheGCService runs RunGC on a fixed interval. A failed pass is logged
// and retried on the next tick rather than restarting the service.
type CacheGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheGCService creates the service. A non-positive interval uses one hour.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *CacheGCService {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	return &CacheGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "cache_gc").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("Poster cache garbage collection failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("Poster cache garbage collection complete")
		}
	}
}

// String names the service in supervisor events.
func (s *CacheGCService) String() string {
	return "poster-cache-gc"
}
