// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package features turns raw movie metadata into count vectors.
//
// The pipeline has three steps, each a pure function of its input:
//
//  1. Normalize extracts token lists from the raw record. Overview text is
//     split on whitespace; genres, keywords, top-3 cast and the director are
//     pulled from serialized list-of-object fields. Multi-word names are
//     collapsed into a single token ("Sam Worthington" becomes
//     "SamWorthington"). A field that cannot be parsed yields an empty list
//     and never fails the record.
//
//  2. Compose joins the fields in a fixed order (overview, genres, keywords,
//     cast, crew), lowercases, and Porter-stems every token.
//
//  3. Vectorizer.Fit builds a bounded vocabulary from the composed corpus
//     and Transform maps each movie to a FeatureVector of token counts.
//
// # Determinism
//
// Identical corpus, MaxFeatures and stop-word set always produce the same
// Vocabulary. Tokens are ranked by corpus frequency with lexical
// tie-breaking; retained tokens are then indexed in lexical order.
//
// # Stop Words
//
// The English stop-word list is the one shipped with Bleve's "en" analyzer,
// loaded through the Bleve registry. StopWordsNone disables filtering.
package features
