// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package main is the reelmatch command.
//
// Reelmatch recommends movies with similar content. An offline build turns
// the TMDB 5000 movies and credits CSV files into a cosine similarity
// matrix; the serve command answers recommendation queries over HTTP.
//
// # Commands
//
//	reelmatch build                 # acquire the dataset, build and persist a model
//	reelmatch serve                 # serve /api/v1 from the latest model
//	reelmatch recommend "Avatar"    # print five recommendations
//	reelmatch titles                # print every catalog title
//
// # Configuration
//
// Settings are layered with Koanf (highest priority wins):
//   - Environment variables (HTTP_PORT, OMDB_API_KEY, ARTIFACT_DIR, ...)
//   - Config file (--config, CONFIG_PATH, or ./config.yaml)
//   - Built-in defaults
//
// Without OMDB_API_KEY every recommendation carries the placeholder poster.
//
// @title Reelmatch API
// @version 1.0
// @description Content-based movie recommendations over the TMDB 5000 catalog.
// @description Titles are matched exactly and case-sensitively.
// @description Poster URLs come from OMDb when an API key is configured.
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
// @BasePath /api/v1
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tomtom215/reelmatch/docs" // registers the OpenAPI document
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// SIGINT and SIGTERM cancel a running build and stop the server.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
