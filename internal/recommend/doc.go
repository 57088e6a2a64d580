// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend builds and serves content-based movie recommendations.
//
// # Architecture
//
// The package has two halves that share only the persisted artifact:
//
//   - Builder (offline): acquire dataset, load and join CSVs, normalize
//     metadata, compose stemmed tags, fit the bounded vocabulary, compute
//     the cosine similarity matrix, persist a versioned artifact.
//   - Service (online): resolve a title to its catalog row, take the top
//     neighbours from the matrix, attach poster URLs with a placeholder
//     fallback.
//
// # Design Principles
//
//   - Deterministic: the same input files produce the same vocabulary,
//     matrix and artifact payload.
//   - Immutable serving state: a Model is loaded once and shared read-only
//     by all requests, so no locking is required.
//   - Degradation over failure: a poster problem never fails a request.
//   - Observable: every build stage and request is logged with structured
//     fields and recorded in Prometheus metrics.
//
// # Usage
//
//	store, _ := storage.NewStore(cfg.Storage.ArtifactDir)
//	model, err := recommend.LoadModel(ctx, store)
//	if err != nil {
//	    return err // no artifact: run the build first
//	}
//	svc := recommend.NewService(model, posters, recommend.Options{K: 5}, logger)
//	recs, err := svc.Recommend(ctx, "Avatar")
//	if errors.Is(err, recommend.ErrNotFound) {
//	    // unknown title
//	}
package recommend
