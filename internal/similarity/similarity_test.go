// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelmatch/internal/features"
)

func vectorize(t *testing.T, corpus []string) []features.FeatureVector {
	t.Helper()
	vz := features.NewVectorizer(100, features.NewStopWords())
	_, vectors, err := vz.FitTransform(corpus)
	require.NoError(t, err)
	return vectors
}

func TestBuild_SmallCorpus(t *testing.T) {
	t.Parallel()

	vectors := vectorize(t, []string{"a dog runs", "a cat runs", "a plane flies"})
	m, err := Build(context.Background(), vectors, 2)
	require.NoError(t, err)
	require.Equal(t, 3, m.Size())

	s01, err := m.Similarity(0, 1)
	require.NoError(t, err)
	s02, err := m.Similarity(0, 2)
	require.NoError(t, err)

	assert.Greater(t, s01, s02)
	assert.InDelta(t, 2.0/3.0, s01, 1e-12)
	assert.InDelta(t, 1.0/3.0, s02, 1e-12)
}

func TestBuild_DiagonalAndSymmetry(t *testing.T) {
	t.Parallel()

	vocab, err := features.NewVocabulary([]string{"a", "b", "c"})
	require.NoError(t, err)
	vectors := []features.FeatureVector{
		features.Transform(vocab, "a a b"),
		features.Transform(vocab, ""),
		features.Transform(vocab, "c b"),
		features.Transform(vocab, "a c c c"),
	}

	m, err := Build(context.Background(), vectors, 0)
	require.NoError(t, err)

	for i := 0; i < m.Size(); i++ {
		d, _ := m.Similarity(i, i)
		if i == 1 {
			assert.Equal(t, 0.0, d, "zero vector self-similarity")
		} else {
			assert.Equal(t, 1.0, d)
		}
		for j := 0; j < m.Size(); j++ {
			a, _ := m.Similarity(i, j)
			b, _ := m.Similarity(j, i)
			assert.Equal(t, a, b)
			assert.GreaterOrEqual(t, a, 0.0)
			assert.LessOrEqual(t, a, 1.0)
		}
	}

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, row)
}

func TestBuild_IndependentOfWorkers(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	words := []string{"alien", "space", "war", "love", "ship", "robot", "city", "king"}
	corpus := make([]string, 40)
	for i := range corpus {
		doc := ""
		for w := 0; w < 6; w++ {
			doc += words[rng.Intn(len(words))] + " "
		}
		corpus[i] = doc
	}
	vectors := vectorize(t, corpus)

	serial, err := Build(context.Background(), vectors, 1)
	require.NoError(t, err)
	parallel, err := Build(context.Background(), vectors, 8)
	require.NoError(t, err)
	assert.Equal(t, serial.Snapshot(), parallel.Snapshot())
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	m, err := Build(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Zero(t, m.Size())

	_, err = m.Neighbors(0, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBuild_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vectors := vectorize(t, []string{"a b", "b c", "c d"})
	_, err := Build(ctx, vectors, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNeighbors(t *testing.T) {
	t.Parallel()

	m, err := FromDense([][]float64{
		{1.0, 0.5, 0.9, 0.5, 0.1},
		{0.5, 1.0, 0.2, 0.3, 0.4},
		{0.9, 0.2, 1.0, 0.6, 0.0},
		{0.5, 0.3, 0.6, 1.0, 0.7},
		{0.1, 0.4, 0.0, 0.7, 1.0},
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		index int
		k     int
		want  []Neighbor
	}{
		{
			name:  "ties broken by ascending index",
			index: 0,
			k:     3,
			want:  []Neighbor{{2, 0.9}, {1, 0.5}, {3, 0.5}},
		},
		{
			name:  "k larger than catalog",
			index: 4,
			k:     10,
			want:  []Neighbor{{3, 0.7}, {1, 0.4}, {0, 0.1}, {2, 0.0}},
		},
		{
			name:  "single neighbor",
			index: 1,
			k:     1,
			want:  []Neighbor{{0, 0.5}},
		},
		{
			name:  "zero k",
			index: 1,
			k:     0,
			want:  []Neighbor{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := m.Neighbors(tt.index, tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNeighbors_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	corpus := make([]string, 60)
	for i := range corpus {
		corpus[i] = fmt.Sprintf("t%d t%d t%d", rng.Intn(12), rng.Intn(12), rng.Intn(12))
	}
	m, err := Build(context.Background(), vectorize(t, corpus), 4)
	require.NoError(t, err)

	for i := 0; i < m.Size(); i++ {
		got, err := m.Neighbors(i, 5)
		require.NoError(t, err)
		require.Len(t, got, 5)
		for p, nb := range got {
			assert.NotEqual(t, i, nb.Index)
			if p > 0 {
				prev := got[p-1]
				assert.True(t, prev.Score > nb.Score || (prev.Score == nb.Score && prev.Index < nb.Index),
					"row %d: %v before %v", i, prev, nb)
			}
		}
	}
}

func TestNeighbors_OutOfRange(t *testing.T) {
	t.Parallel()

	m, err := FromDense([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)

	_, err = m.Neighbors(2, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.Neighbors(-1, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.Similarity(0, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()

	vectors := vectorize(t, []string{"x y z", "y z", "q", "x x q"})
	m, err := Build(context.Background(), vectors, 2)
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Len(t, snap.Upper, 10)

	restored, err := FromSnapshot(snap)
	require.NoError(t, err)
	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			want, _ := m.Similarity(i, j)
			got, _ := restored.Similarity(i, j)
			assert.Equal(t, want, got)
		}
	}

	_, err = FromSnapshot(Snapshot{N: 3, Upper: []float64{1}})
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestFromDense_RejectsAsymmetric(t *testing.T) {
	t.Parallel()

	_, err := FromDense([][]float64{{1, 0.2}, {0.3, 1}})
	assert.Error(t, err)

	_, err = FromDense([][]float64{{1, 0.2}, {0.2}})
	assert.Error(t, err)
}
