// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	n := Normalized{
		Overview: []string{"Dogs", "RUNNING"},
		Genres:   []string{"Action"},
		Keywords: []string{"spaceship"},
		Cast:     []string{"ZoeSaldana"},
		Crew:     []string{"JamesCameron"},
	}
	assert.Equal(t, "dog run action spaceship zoesaldana jamescameron", Compose(n))
}

func TestCompose_WithoutDirector(t *testing.T) {
	t.Parallel()

	res := Normalize(RawRecord{
		Overview: "cats",
		Crew:     `[{"job": "Producer", "name": "Jon Landau"}]`,
	})
	assert.Empty(t, res.Record.Crew)
	assert.Equal(t, "cat", Compose(res.Record))
}

func TestCompose_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", Compose(Normalized{}))
	assert.Empty(t, Tags(""))
}

func TestLoadStopWords(t *testing.T) {
	t.Parallel()

	english, err := LoadStopWords(StopWordsEnglish)
	require.NoError(t, err)
	for _, w := range []string{"the", "and", "a", "of"} {
		assert.True(t, english[w], "expected %q to be a stop word", w)
	}
	assert.False(t, english["spaceship"])

	none, err := LoadStopWords(StopWordsNone)
	require.NoError(t, err)
	assert.Empty(t, none)

	blank, err := LoadStopWords("")
	require.NoError(t, err)
	assert.Empty(t, blank)

	_, err = LoadStopWords("klingon")
	assert.Error(t, err)
}

func TestVectorizer_FitRanking(t *testing.T) {
	t.Parallel()

	corpus := []string{
		"zeta alpha alpha beta",
		"beta gamma alpha",
		"delta zeta",
	}
	// counts: alpha 3, beta 2, zeta 2, gamma 1, delta 1
	vz := NewVectorizer(3, NewStopWords())
	vocab, err := vz.Fit(corpus)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "zeta"}, vocab.Terms())
	i, ok := vocab.Index("zeta")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = vocab.Index("gamma")
	assert.False(t, ok)
}

func TestVectorizer_FitTieBreakIsLexical(t *testing.T) {
	t.Parallel()

	vz := NewVectorizer(2, NewStopWords())
	vocab, err := vz.Fit([]string{"pear apple fig", "fig apple pear"})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "fig"}, vocab.Terms())
}

func TestVectorizer_StopWords(t *testing.T) {
	t.Parallel()

	vz := NewVectorizer(10, NewStopWords("the", "a"))
	vocab, err := vz.Fit([]string{"the dog", "a cat the"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, vocab.Terms())

	_, err = vz.Fit([]string{"the a", ""})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestVectorizer_Deterministic(t *testing.T) {
	t.Parallel()

	corpus := []string{"b a c d", "e f a b", "c c d e", "x y z a"}
	vz := NewVectorizer(4, NewStopWords())

	first, v1, err := vz.FitTransform(corpus)
	require.NoError(t, err)
	for range 5 {
		again, v2, err := vz.FitTransform(corpus)
		require.NoError(t, err)
		assert.Equal(t, first.Terms(), again.Terms())
		assert.Equal(t, v1, v2)
	}
}

func TestTransform(t *testing.T) {
	t.Parallel()

	vocab, err := NewVocabulary([]string{"a", "cat", "dog", "runs"})
	require.NoError(t, err)

	fv := Transform(vocab, "a dog runs a unknown")
	assert.Equal(t, 4, fv.Len())
	assert.Equal(t, []float64{2, 0, 1, 1}, fv.Dense())
	assert.Equal(t, 2, fv.At(0))
	assert.Equal(t, 0, fv.At(1))
	assert.InDelta(t, 2.449489742783178, fv.Norm(), 1e-12)

	empty := Transform(vocab, "nothing here")
	assert.Equal(t, 4, empty.Len())
	assert.Zero(t, empty.Norm())
}

func TestFeatureVector_Dot(t *testing.T) {
	t.Parallel()

	vocab, err := NewVocabulary([]string{"a", "cat", "dog", "runs"})
	require.NoError(t, err)

	x := Transform(vocab, "a dog runs")
	y := Transform(vocab, "a cat runs runs")
	assert.Equal(t, 3.0, x.Dot(y))
	assert.Equal(t, x.Dot(y), y.Dot(x))
}

func TestNewVocabulary_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := NewVocabulary([]string{"a", "b", "a"})
	assert.Error(t, err)
}
