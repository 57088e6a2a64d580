// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// posterKeyPrefix namespaces poster entries in BadgerDB.
const posterKeyPrefix = "poster:"

// cacheKey normalizes a title so lookups are case and spacing insensitive.
func cacheKey(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// BadgerStore persists resolved poster URLs across restarts.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerStore opens (or creates) a BadgerDB at dir.
func OpenBadgerStore(dir string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for posters: %w", err)
	}
	return NewBadgerStore(db, ttl), nil
}

// NewBadgerStore wraps an open database. Entries expire after ttl.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	return &BadgerStore{db: db, ttl: ttl}
}

// Get returns the stored URL for title.
func (s *BadgerStore) Get(title string) (string, bool, error) {
	var url string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(posterKeyPrefix + cacheKey(title)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			url = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get poster: %w", err)
	}
	return url, true, nil
}

// Set stores url for title with the store's TTL.
func (s *BadgerStore) Set(title, url string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(posterKeyPrefix+cacheKey(title)), []byte(url))
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// gcDiscardRatio is the value log rewrite threshold passed to BadgerDB.
const gcDiscardRatio = 0.5

// RunGC reclaims value log space held by expired entries. It rewrites
// files until BadgerDB reports nothing left to collect.
func (s *BadgerStore) RunGC() error {
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			return nil
		case err != nil:
			return fmt.Errorf("poster cache gc: %w", err)
		}
	}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Cached serves resolved posters from memory, then from an optional
// BadgerStore, before asking the wrapped lookup. Only successful lookups
// are cached so a title whose poster appears later is retried.
type Cached struct {
	next   Lookup
	mem    *expirable.LRU[string, string]
	store  *BadgerStore
	logger zerolog.Logger
}

// NewCached wraps next with an in-memory LRU of size entries expiring
// after ttl. store may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCached(next Lookup, size int, ttl time.Duration, store *BadgerStore, logger zerolog.Logger) *Cached {
	if size <= 0 {
		size = 1
	}
	return &Cached{
		next:   next,
		mem:    expirable.NewLRU[string, string](size, nil, ttl),
		store:  store,
		logger: logger.With().Str("component", "poster_cache").Logger(),
	}
}

// Poster returns a cached URL or resolves and caches a new one.
func (c *Cached) Poster(ctx context.Context, title string) (string, error) {
	key := cacheKey(title)

	if url, ok := c.mem.Get(key); ok {
		metrics.RecordCacheLookup("memory", true)
		return url, nil
	}
	metrics.RecordCacheLookup("memory", false)

	if c.store != nil {
		url, ok, err := c.store.Get(key)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Str("title", title).Msg("Persistent poster cache read failed")
		case ok:
			metrics.RecordCacheLookup("badger", true)
			c.mem.Add(key, url)
			return url, nil
		default:
			metrics.RecordCacheLookup("badger", false)
		}
	}

	url, err := c.next.Poster(ctx, title)
	if err != nil {
		return "", err
	}

	c.mem.Add(key, url)
	if c.store != nil {
		if err := c.store.Set(key, url); err != nil {
			c.logger.Warn().Err(err).Str("title", title).Msg("Persistent poster cache write failed")
		}
	}
	return url, nil
}

// Len returns the number of entries held in memory.
func (c *Cached) Len() int {
	return c.mem.Len()
}
