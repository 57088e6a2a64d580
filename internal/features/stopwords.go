// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
)

// Named stop-word sets accepted by LoadStopWords.
const (
	StopWordsEnglish = "english"
	StopWordsNone    = "none"
)

// StopWords is a set of tokens excluded from the vocabulary.
type StopWords = analysis.TokenMap

// LoadStopWords returns the named stop-word set. An empty name means none.
func LoadStopWords(name string) (StopWords, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StopWordsNone:
		return analysis.NewTokenMap(), nil
	case StopWordsEnglish:
		words := analysis.NewTokenMap()
		if err := words.LoadBytes(en.EnglishStopWords); err != nil {
			return nil, fmt.Errorf("load english stop words: %w", err)
		}
		return words, nil
	default:
		return nil, fmt.Errorf("unknown stop word set %q", name)
	}
}

// NewStopWords builds a stop-word set from explicit tokens.
func NewStopWords(tokens ...string) StopWords {
	words := analysis.NewTokenMap()
	for _, t := range tokens {
		words.AddToken(t)
	}
	return words
}
