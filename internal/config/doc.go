// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config loads reelmatch configuration with Koanf.

# Configuration Sources

Sources are layered, later layers overriding earlier ones:
  - Struct defaults (defaultConfig)
  - An optional YAML file: the --config flag, CONFIG_PATH, then DefaultConfigPaths
  - Environment variables mapped explicitly in envMappings

# Example config.yaml

	server:
	  port: 8501
	dataset:
	  dir: /var/lib/reelmatch/data
	storage:
	  artifact_dir: /var/lib/reelmatch/artifacts
	  keep_versions: 3
	poster:
	  api_key: your-omdb-key
	  cache_dir: /var/lib/reelmatch/posters
	recommend:
	  k: 5

# Validation

Validate applies the go-playground/validator tags on every section, then
the rules that span fields (rate limit bounds, persistent cache TTL).
Load returns the first failure wrapped with "configuration validation
failed".
*/
package config
