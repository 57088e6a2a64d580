// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// Compose flattens a normalized record into its tag string: overview,
// genres, keywords, cast and crew tokens in that order, lowercased and
// Porter-stemmed, separated by single spaces.
//
//nolint:gocritic // Normalized is passed by value to keep Compose pure
func Compose(n Normalized) string {
	size := len(n.Overview) + len(n.Genres) + len(n.Keywords) + len(n.Cast) + len(n.Crew)
	tokens := make([]string, 0, size)
	for _, field := range [][]string{n.Overview, n.Genres, n.Keywords, n.Cast, n.Crew} {
		tokens = append(tokens, field...)
	}

	stemmed := make([]string, 0, len(tokens))
	for _, tok := range strings.Fields(strings.ToLower(strings.Join(tokens, " "))) {
		stemmed = append(stemmed, Stem(tok))
	}
	return strings.Join(stemmed, " ")
}

// Tags splits a composed tag string into its tokens.
func Tags(composed string) []string {
	return strings.Fields(composed)
}

// Stem returns the Porter stem of a lowercase token.
func Stem(token string) string {
	return porterstemmer.StemString(token)
}
