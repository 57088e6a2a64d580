// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import "time"

// Config holds every setting for the build and serve commands.
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Build     BuildConfig     `koanf:"build"`
	Storage   StorageConfig   `koanf:"storage"`
	Poster    PosterConfig    `koanf:"poster"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// SecurityConfig holds CORS and rate limiting settings.
//
// Environment Variables:
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS: Requests per window per client IP (default: 100)
//   - RATE_LIMIT_WINDOW: Window length (default: 1m)
//   - DISABLE_RATE_LIMIT: Turn rate limiting off (default: false)
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins" validate:"min=1"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// DatasetConfig locates the raw movies and credits CSV files.
//
// When either file is missing from Dir and URL is set, the build downloads
// the archive from URL and extracts both files into Dir.
type DatasetConfig struct {
	Dir             string        `koanf:"dir" validate:"required"`
	URL             string        `koanf:"url" validate:"omitempty,http_url"`
	DownloadTimeout time.Duration `koanf:"download_timeout" validate:"min=1s"`
}

// BuildConfig tunes the offline feature pipeline.
type BuildConfig struct {
	// MaxFeatures bounds the vocabulary size.
	MaxFeatures int `koanf:"max_features" validate:"min=1"`

	// StopWords names the stop word list: english or none.
	StopWords string `koanf:"stop_words" validate:"oneof=english none"`

	// Workers bounds parallelism for normalization and the similarity
	// matrix. Zero means GOMAXPROCS.
	Workers int `koanf:"workers" validate:"min=0"`
}

// StorageConfig controls where build artifacts are persisted.
type StorageConfig struct {
	ArtifactDir  string `koanf:"artifact_dir" validate:"required"`
	KeepVersions int    `koanf:"keep_versions" validate:"min=1"`
}

// PosterConfig configures the OMDb poster collaborator.
//
// An empty APIKey disables lookups; every recommendation then carries the
// placeholder poster.
//
// Environment Variables:
//   - OMDB_API_KEY: OMDb API key (default: empty, lookups disabled)
//   - OMDB_BASE_URL: API base URL (default: http://www.omdbapi.com/)
//   - POSTER_TIMEOUT: Deadline for a single lookup (default: 3s)
//   - POSTER_CACHE_DIR: BadgerDB directory for the persistent cache (default: empty, memory only)
//   - POSTER_CACHE_GC_INTERVAL: Value log compaction interval (default: 1h)
type PosterConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url" validate:"required,http_url"`
	Timeout           time.Duration `koanf:"timeout" validate:"min=100ms"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"min=1"`

	CacheSize int           `koanf:"cache_size" validate:"min=0"`
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"min=0"`
	CacheDir  string        `koanf:"cache_dir"`

	// CacheGCInterval is how often the persistent cache compacts its
	// value log. Only used when CacheDir is set.
	CacheGCInterval time.Duration `koanf:"cache_gc_interval" validate:"min=0"`

	// Circuit breaker: the circuit opens when at least BreakerMinRequests
	// were seen in the current interval and the failure ratio reaches
	// BreakerFailureRatio. It stays open for BreakerTimeout.
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests" validate:"min=1"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio" validate:"gt=0,lte=1"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout" validate:"min=1s"`
}

// Enabled reports whether an API key is configured.
func (p PosterConfig) Enabled() bool {
	return p.APIKey != ""
}

// RecommendConfig holds online service settings.
type RecommendConfig struct {
	// K is the number of recommendations per request.
	K int `koanf:"k" validate:"min=1,max=50"`
}

// Load reads configuration using Koanf with layered sources:
// defaults, then an optional YAML file, then environment variables.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
