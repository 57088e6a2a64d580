// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
)

// Chain is the configured lookup stack plus the resources it owns.
type Chain struct {
	Lookup

	// Store is the persistent cache, nil when poster.cache_dir is unset.
	Store *BadgerStore

	enabled bool
}

// Enabled reports whether lookups reach OMDb.
func (c *Chain) Enabled() bool {
	return c.enabled
}

// Close releases the persistent cache.
func (c *Chain) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// New builds the lookup chain for cfg: an in-memory and optional BadgerDB
// cache in front of a circuit breaker in front of the OMDb client. Without
// an API key the chain is Disabled.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.PosterConfig, logger zerolog.Logger) (*Chain, error) {
	if !cfg.Enabled() {
		logger.Warn().Msg("OMDB_API_KEY not set, posters disabled; recommendations use the placeholder image")
		return &Chain{Lookup: Disabled{}}, nil
	}

	client, err := NewOMDbClient(cfg)
	if err != nil {
		return nil, err
	}
	breaker := NewCircuitBreaker(client, cfg, logger)

	var store *BadgerStore
	if cfg.CacheDir != "" {
		store, err = OpenBadgerStore(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("dir", cfg.CacheDir).Dur("ttl", cfg.CacheTTL).Msg("Persistent poster cache opened")
	}

	return &Chain{
		Lookup:  NewCached(breaker, cfg.CacheSize, cfg.CacheTTL, store, logger),
		Store:   store,
		enabled: true,
	}, nil
}
