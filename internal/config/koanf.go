// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Defaults shared with callers that build components without a Config.
const (
	DefaultDatasetURL  = "https://github.com/roshansg2005/movie-recommender-app/raw/main/archive.zip"
	DefaultOMDbBaseURL = "http://www.omdbapi.com/"
)

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Dataset: DatasetConfig{
			Dir:             "data",
			URL:             DefaultDatasetURL,
			DownloadTimeout: 5 * time.Minute,
		},
		Build: BuildConfig{
			MaxFeatures: 5000,
			StopWords:   "english",
			Workers:     0,
		},
		Storage: StorageConfig{
			ArtifactDir:  "artifacts",
			KeepVersions: 3,
		},
		Poster: PosterConfig{
			APIKey:              "",
			BaseURL:             DefaultOMDbBaseURL,
			Timeout:             3 * time.Second,
			RequestsPerSecond:   5,
			Burst:               5,
			CacheSize:           2048,
			CacheTTL:            24 * time.Hour,
			CacheDir:            "",
			CacheGCInterval:     time.Hour,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
			BreakerTimeout:      2 * time.Minute,
		},
		Recommend: RecommendConfig{
			K: 5,
		},
	}
}

// LoadWithKoanf loads configuration using the default file search.
func LoadWithKoanf() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration with the given YAML file as layer two.
// An empty path falls back to CONFIG_PATH and DefaultConfigPaths, and a
// missing default file is not an error.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// HTTP_PORT -> server.port
	// OMDB_API_KEY -> poster.api_key
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names to koanf paths.
var envMappings = map[string]string{
	"http_host":        "server.host",
	"http_port":        "server.port",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"data_dir":                 "dataset.dir",
	"dataset_url":              "dataset.url",
	"dataset_download_timeout": "dataset.download_timeout",

	"max_features":  "build.max_features",
	"stop_words":    "build.stop_words",
	"build_workers": "build.workers",

	"artifact_dir":  "storage.artifact_dir",
	"keep_versions": "storage.keep_versions",

	"omdb_api_key":              "poster.api_key",
	"omdb_base_url":             "poster.base_url",
	"poster_timeout":            "poster.timeout",
	"poster_requests_per_sec":   "poster.requests_per_second",
	"poster_burst":              "poster.burst",
	"poster_cache_size":         "poster.cache_size",
	"poster_cache_ttl":          "poster.cache_ttl",
	"poster_cache_dir":          "poster.cache_dir",
	"poster_cache_gc_interval":  "poster.cache_gc_interval",
	"poster_breaker_timeout":    "poster.breaker_timeout",
	"poster_breaker_min_reqs":   "poster.breaker_min_requests",
	"poster_breaker_fail_ratio": "poster.breaker_failure_ratio",

	"recommend_k": "recommend.k",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - OMDB_API_KEY -> poster.api_key
//   - ARTIFACT_DIR -> storage.artifact_dir
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// cannot pollute the config.
	return ""
}
