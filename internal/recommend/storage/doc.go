// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package storage persists build artifacts for the recommendation service.
//
// An artifact bundle holds everything the service needs at start-up: the
// catalog rows (movie id, title, tags), the vocabulary terms, and the
// packed upper triangle of the similarity matrix.
//
// # Storage Format
//
//	filename: {name}_v{version}.gob.gz
//
//	structure:
//	  - Metadata (ArtifactMetadata)
//	  - CompressedData (gzip-compressed gob-encoded Bundle)
//
// Metadata carries a SHA-256 checksum of the uncompressed payload; Load
// rejects files whose payload does not match. Files are written to a
// temporary name and renamed into place, so a failed build never leaves a
// partial artifact behind.
//
// # Usage
//
//	store, err := storage.NewStore("/data/artifacts")
//	version := store.NextVersion(storage.DefaultArtifactName)
//	err = store.Save(ctx, storage.DefaultArtifactName, version, bundle, meta)
//
//	var bundle storage.Bundle
//	meta, err := store.Load(ctx, storage.DefaultArtifactName, 0, &bundle) // 0 = latest
//
// Old versions are removed with Prune.
package storage
