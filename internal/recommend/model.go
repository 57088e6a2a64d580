// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Movie is one catalog row.
type Movie struct {
	ID    int64    `json:"movie_id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// Model is the immutable serving state produced by one build.
// It is safe for concurrent use.
type Model struct {
	movies     []Movie
	titles     map[string]int
	vocabulary []string
	matrix     *similarity.Matrix
	meta       storage.ArtifactMetadata
}

// NewModel indexes movies by title. When titles repeat, the first row wins.
//
//nolint:gocritic // meta is copied into the immutable model
func NewModel(movies []Movie, vocabulary []string, matrix *similarity.Matrix, meta storage.ArtifactMetadata) (*Model, error) {
	if matrix == nil {
		return nil, errors.New("similarity matrix is nil")
	}
	if matrix.Size() != len(movies) {
		return nil, fmt.Errorf("matrix size %d does not match %d catalog rows", matrix.Size(), len(movies))
	}

	titles := make(map[string]int, len(movies))
	for i, m := range movies {
		if _, ok := titles[m.Title]; !ok {
			titles[m.Title] = i
		}
	}

	return &Model{
		movies:     movies,
		titles:     titles,
		vocabulary: vocabulary,
		matrix:     matrix,
		meta:       meta,
	}, nil
}

// ModelFromBundle rebuilds a Model from a persisted bundle.
func ModelFromBundle(b *storage.Bundle, meta *storage.ArtifactMetadata) (*Model, error) {
	matrix, err := similarity.FromSnapshot(b.Matrix)
	if err != nil {
		return nil, fmt.Errorf("restore similarity matrix: %w", err)
	}

	movies := make([]Movie, len(b.Movies))
	for i, row := range b.Movies {
		movies[i] = Movie{ID: row.MovieID, Title: row.Title, Tags: row.Tags}
	}

	var md storage.ArtifactMetadata
	if meta != nil {
		md = *meta
	}
	return NewModel(movies, b.Vocabulary, matrix, md)
}

// Bundle returns the persistable form of the model.
func (m *Model) Bundle() *storage.Bundle {
	rows := make([]storage.MovieRow, len(m.movies))
	for i, mv := range m.movies {
		rows[i] = storage.MovieRow{MovieID: mv.ID, Title: mv.Title, Tags: mv.Tags}
	}
	return &storage.Bundle{
		Movies:     rows,
		Vocabulary: m.vocabulary,
		Matrix:     m.matrix.Snapshot(),
	}
}

// LoadModel loads the newest artifact from store. A missing artifact is a
// build integrity failure: the service cannot start without one.
func LoadModel(ctx context.Context, store *storage.Store) (*Model, error) {
	var bundle storage.Bundle
	meta, err := store.Load(ctx, storage.DefaultArtifactName, 0, &bundle)
	if errors.Is(err, storage.ErrNoArtifact) {
		return nil, &catalog.BuildIntegrityError{
			Path:   store.Dir(),
			Reason: "no build artifact found, run the build first",
			Err:    err,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	return ModelFromBundle(&bundle, meta)
}

// Len returns the number of catalog rows.
func (m *Model) Len() int {
	return len(m.movies)
}

// Movie returns catalog row i.
func (m *Model) Movie(i int) Movie {
	return m.movies[i]
}

// Lookup resolves an exact title to its first catalog row.
func (m *Model) Lookup(title string) (int, bool) {
	i, ok := m.titles[title]
	return i, ok
}

// Titles returns every catalog title in catalog order, duplicates included.
func (m *Model) Titles() []string {
	out := make([]string, len(m.movies))
	for i, mv := range m.movies {
		out[i] = mv.Title
	}
	return out
}

// VocabularySize returns the number of vocabulary terms.
func (m *Model) VocabularySize() int {
	return len(m.vocabulary)
}

// Matrix returns the similarity matrix.
func (m *Model) Matrix() *similarity.Matrix {
	return m.matrix
}

// Metadata returns the artifact metadata the model was loaded with.
func (m *Model) Metadata() storage.ArtifactMetadata {
	return m.meta
}
