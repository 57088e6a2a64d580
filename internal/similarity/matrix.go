// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package similarity computes and queries the dense pairwise cosine
// similarity matrix over movie feature vectors.
//
// The matrix is built once, offline, in O(N²·F) and is read-only afterwards.
// Queries against it need no locking. Neighbors costs O(N log k) per call.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/reelmatch/internal/features"
)

var (
	// ErrIndexOutOfRange is returned for a row index outside the matrix.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrCorruptSnapshot is returned when a Snapshot does not describe a valid matrix.
	ErrCorruptSnapshot = errors.New("corrupt similarity snapshot")
)

// Matrix is a symmetric N×N cosine similarity matrix with values in [0,1].
type Matrix struct {
	sym *mat.SymDense
}

// Size returns N.
func (m *Matrix) Size() int {
	if m == nil || m.sym == nil {
		return 0
	}
	return m.sym.SymmetricDim()
}

// Similarity returns the score between rows i and j.
func (m *Matrix) Similarity(i, j int) (float64, error) {
	n := m.Size()
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrIndexOutOfRange, i, j, n, n)
	}
	return m.sym.At(i, j), nil
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) ([]float64, error) {
	n := m.Size()
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i, n)
	}
	row := make([]float64, n)
	for j := range row {
		row[j] = m.sym.At(i, j)
	}
	return row, nil
}

// newSym allocates an n×n symmetric matrix. gonum rejects n == 0, so an
// empty matrix is represented by nil.
func newSym(n int) *mat.SymDense {
	if n == 0 {
		return nil
	}
	return mat.NewSymDense(n, nil)
}

// cosine returns the clamped cosine similarity. Zero-norm vectors score 0.
func cosine(dot, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	s := dot / (normA * normB)
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}

// Build computes the similarity matrix with at most workers goroutines
// (0 means GOMAXPROCS). Only the upper triangle is computed; the symmetric
// storage mirrors it. A non-zero vector's self-similarity is exactly 1 and
// a zero vector scores 0 against everything, itself included.
func Build(ctx context.Context, vectors []features.FeatureVector, workers int) (*Matrix, error) {
	n := len(vectors)
	if n == 0 {
		return &Matrix{}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	norms := make([]float64, n)
	for i, v := range vectors {
		norms[i] = v.Norm()
	}

	sym := newSym(n)
	rows := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				if norms[i] > 0 {
					sym.SetSym(i, i, 1)
				}
				for j := i + 1; j < n; j++ {
					if norms[i] == 0 || norms[j] == 0 {
						continue
					}
					sym.SetSym(i, j, cosine(vectors[i].Dot(vectors[j]), norms[i], norms[j]))
				}
			}
		}()
	}

	var err error
feed:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case rows <- i:
		}
	}
	close(rows)
	wg.Wait()

	if err != nil {
		return nil, fmt.Errorf("build similarity matrix: %w", err)
	}
	return &Matrix{sym: sym}, nil
}

// FromDense wraps a symmetric matrix given as rows. Used by tests and tools
// that construct small matrices directly.
func FromDense(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	for i := range rows {
		if len(rows[i]) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(rows[i]), n)
		}
	}
	sym := newSym(n)
	for i := range rows {
		for j := i; j < n; j++ {
			if rows[i][j] != rows[j][i] {
				return nil, fmt.Errorf("matrix is not symmetric at (%d, %d)", i, j)
			}
			sym.SetSym(i, j, rows[i][j])
		}
	}
	return &Matrix{sym: sym}, nil
}

// Snapshot is the persisted form of a Matrix: the upper triangle in
// row-major order, N(N+1)/2 values.
type Snapshot struct {
	N     int
	Upper []float64
}

// Snapshot packs the matrix for persistence.
func (m *Matrix) Snapshot() Snapshot {
	n := m.Size()
	upper := make([]float64, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			upper = append(upper, m.sym.At(i, j))
		}
	}
	return Snapshot{N: n, Upper: upper}
}

// FromSnapshot restores a Matrix. Values round-trip exactly.
func FromSnapshot(s Snapshot) (*Matrix, error) {
	if s.N < 0 || len(s.Upper) != s.N*(s.N+1)/2 {
		return nil, fmt.Errorf("%w: n=%d values=%d", ErrCorruptSnapshot, s.N, len(s.Upper))
	}
	sym := newSym(s.N)
	k := 0
	for i := 0; i < s.N; i++ {
		for j := i; j < s.N; j++ {
			sym.SetSym(i, j, s.Upper[k])
			k++
		}
	}
	return &Matrix{sym: sym}, nil
}
