// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"container/heap"
	"fmt"
)

// Neighbor is a row index with its similarity to the query row.
type Neighbor struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// better reports whether a ranks ahead of b: higher score first, then lower index.
func better(a, b Neighbor) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

// worstFirst is a heap whose root is the lowest-ranked retained neighbor.
type worstFirst []Neighbor

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return better(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *worstFirst) Push(x any) { *h = append(*h, x.(Neighbor)) }

func (h *worstFirst) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Neighbors returns up to k rows most similar to index, excluding index
// itself, ordered by descending score with ties broken by ascending index.
func (m *Matrix) Neighbors(index, k int) ([]Neighbor, error) {
	n := m.Size()
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, index, n)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}
	if k > n-1 {
		k = n - 1
	}

	h := make(worstFirst, 0, k+1)
	for j := 0; j < n; j++ {
		if j == index {
			continue
		}
		cand := Neighbor{Index: j, Score: m.sym.At(index, j)}
		if h.Len() < k {
			heap.Push(&h, cand)
			continue
		}
		if better(cand, h[0]) {
			h[0] = cand
			heap.Fix(&h, 0)
		}
	}

	out := make([]Neighbor, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(Neighbor)
	}
	return out, nil
}
