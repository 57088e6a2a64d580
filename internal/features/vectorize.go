// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DefaultMaxFeatures bounds the vocabulary size.
const DefaultMaxFeatures = 5000

// ErrEmptyVocabulary is returned by Fit when no token survives filtering.
var ErrEmptyVocabulary = errors.New("vocabulary is empty")

// Vocabulary maps tokens to stable feature indices.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary builds a vocabulary whose feature i is terms[i].
// Terms must be unique.
func NewVocabulary(terms []string) (*Vocabulary, error) {
	v := &Vocabulary{
		terms: make([]string, len(terms)),
		index: make(map[string]int, len(terms)),
	}
	copy(v.terms, terms)
	for i, t := range v.terms {
		if _, dup := v.index[t]; dup {
			return nil, fmt.Errorf("duplicate vocabulary term %q", t)
		}
		v.index[t] = i
	}
	return v, nil
}

// Len returns the number of features.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Index returns the feature index of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Term returns the token for feature i.
func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Terms returns a copy of the tokens in feature order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// FeatureVector is a token-count vector over a Vocabulary. Only non-zero
// entries are stored; Indices is strictly increasing.
type FeatureVector struct {
	Dim     int
	Indices []int
	Counts  []int
}

// Len returns the vector's logical length, which is the vocabulary size.
func (fv FeatureVector) Len() int {
	return fv.Dim
}

// At returns the count for feature i.
func (fv FeatureVector) At(i int) int {
	j := sort.SearchInts(fv.Indices, i)
	if j < len(fv.Indices) && fv.Indices[j] == i {
		return fv.Counts[j]
	}
	return 0
}

// Dense expands the vector to a float slice of length Len.
func (fv FeatureVector) Dense() []float64 {
	out := make([]float64, fv.Dim)
	for k, i := range fv.Indices {
		out[i] = float64(fv.Counts[k])
	}
	return out
}

// Norm returns the Euclidean norm.
func (fv FeatureVector) Norm() float64 {
	if len(fv.Counts) == 0 {
		return 0
	}
	vals := make([]float64, len(fv.Counts))
	for k, c := range fv.Counts {
		vals[k] = float64(c)
	}
	return floats.Norm(vals, 2)
}

// Dot returns the inner product with another vector over the same vocabulary.
func (fv FeatureVector) Dot(other FeatureVector) float64 {
	var sum int
	a, b := 0, 0
	for a < len(fv.Indices) && b < len(other.Indices) {
		switch {
		case fv.Indices[a] == other.Indices[b]:
			sum += fv.Counts[a] * other.Counts[b]
			a++
			b++
		case fv.Indices[a] < other.Indices[b]:
			a++
		default:
			b++
		}
	}
	return float64(sum)
}

// Vectorizer builds a bounded bag-of-words vocabulary.
type Vectorizer struct {
	MaxFeatures int
	StopWords   StopWords
}

// NewVectorizer returns a Vectorizer. maxFeatures <= 0 means DefaultMaxFeatures.
func NewVectorizer(maxFeatures int, stop StopWords) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{MaxFeatures: maxFeatures, StopWords: stop}
}

type termCount struct {
	term  string
	count int
}

// Fit ranks tokens by corpus-wide count (ties by token) and keeps the top
// MaxFeatures. The retained tokens are indexed in lexical order.
func (vz *Vectorizer) Fit(corpus []string) (*Vocabulary, error) {
	counts := make(map[string]int)
	for _, doc := range corpus {
		for _, tok := range strings.Fields(doc) {
			if vz.StopWords[tok] {
				continue
			}
			counts[tok]++
		}
	}
	if len(counts) == 0 {
		return nil, ErrEmptyVocabulary
	}

	ranked := make([]termCount, 0, len(counts))
	for t, c := range counts {
		ranked = append(ranked, termCount{term: t, count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].term < ranked[j].term
	})

	limit := vz.MaxFeatures
	if limit <= 0 {
		limit = DefaultMaxFeatures
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	terms := make([]string, len(ranked))
	for i, tc := range ranked {
		terms[i] = tc.term
	}
	sort.Strings(terms)
	return NewVocabulary(terms)
}

// Transform counts vocabulary tokens in a tag string. Unknown tokens are ignored.
func Transform(vocab *Vocabulary, tags string) FeatureVector {
	counts := make(map[int]int)
	for _, tok := range strings.Fields(tags) {
		if i, ok := vocab.Index(tok); ok {
			counts[i]++
		}
	}

	fv := FeatureVector{
		Dim:     vocab.Len(),
		Indices: make([]int, 0, len(counts)),
		Counts:  make([]int, 0, len(counts)),
	}
	for i := range counts {
		fv.Indices = append(fv.Indices, i)
	}
	sort.Ints(fv.Indices)
	for _, i := range fv.Indices {
		fv.Counts = append(fv.Counts, counts[i])
	}
	return fv
}

// FitTransform fits a vocabulary on the corpus and transforms every
// document with it.
func (vz *Vectorizer) FitTransform(corpus []string) (*Vocabulary, []FeatureVector, error) {
	vocab, err := vz.Fit(corpus)
	if err != nil {
		return nil, nil, err
	}
	vectors := make([]FeatureVector, len(corpus))
	for i, doc := range corpus {
		vectors[i] = Transform(vocab, doc)
	}
	return vocab, vectors, nil
}
