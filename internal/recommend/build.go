// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/features"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Build stage names used in logs and metrics.
const (
	StageAcquire    = "acquire"
	StageLoad       = "load"
	StageNormalize  = "normalize"
	StageCompose    = "compose"
	StageVectorize  = "vectorize"
	StageSimilarity = "similarity"
	StageSave       = "save"
)

// BuildOptions tunes the feature pipeline.
type BuildOptions struct {
	MaxFeatures int
	StopWords   string
	Workers     int
}

// BuildReport summarizes a completed build.
type BuildReport struct {
	Version        int            `json:"version"`
	Movies         int            `json:"movies"`
	VocabularySize int            `json:"vocabulary_size"`
	Malformed      map[string]int `json:"malformed_fields"`
	Downloaded     bool           `json:"downloaded"`
	Pruned         int            `json:"pruned"`
	Duration       time.Duration  `json:"duration"`
}

// Builder runs the offline build: dataset files in, versioned artifact out.
type Builder struct {
	cfg      *config.Config
	store    *storage.Store
	acquirer *catalog.Acquirer
	logger   zerolog.Logger
}

// NewBuilder creates a Builder writing artifacts to store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBuilder(cfg *config.Config, store *storage.Store, logger zerolog.Logger) *Builder {
	return &Builder{
		cfg:      cfg,
		store:    store,
		acquirer: catalog.NewAcquirer(cfg.Dataset.DownloadTimeout, logger),
		logger:   logger.With().Str("component", "build").Logger(),
	}
}

// Build runs every stage and persists the result as a new artifact
// version. Any BuildIntegrityError aborts the build before anything is
// written.
func (b *Builder) Build(ctx context.Context) (report *BuildReport, err error) {
	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewCorrelationID(ctx)
	}
	logger := b.logger.With().Str("correlation_id", logging.CorrelationIDFromContext(ctx)).Logger()
	start := time.Now()
	report = &BuildReport{}

	defer func() {
		metrics.RecordBuild(err)
		if err != nil {
			logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Build failed")
		}
	}()

	logger.Info().Str("data_dir", b.cfg.Dataset.Dir).Str("artifact_dir", b.store.Dir()).Msg("Build started")

	err = runStage(logger, StageAcquire, func() error {
		var acqErr error
		report.Downloaded, acqErr = b.acquirer.Ensure(ctx, b.cfg.Dataset.URL, b.cfg.Dataset.Dir)
		return acqErr
	})
	if err != nil {
		return nil, err
	}

	var records []features.RawRecord
	err = runStage(logger, StageLoad, func() error {
		var loadErr error
		records, loadErr = catalog.LoadDir(ctx, b.cfg.Dataset.Dir)
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Int("records", len(records)).Msg("Dataset joined")

	opts := BuildOptions{
		MaxFeatures: b.cfg.Build.MaxFeatures,
		StopWords:   b.cfg.Build.StopWords,
		Workers:     b.cfg.Build.Workers,
	}
	model, malformed, err := buildModel(ctx, logger, records, opts)
	if err != nil {
		return nil, err
	}
	report.Malformed = malformed
	report.Movies = model.Len()
	report.VocabularySize = model.VocabularySize()

	err = runStage(logger, StageSave, func() error {
		report.Version = b.store.NextVersion(storage.DefaultArtifactName)
		meta := storage.ArtifactMetadata{
			BuiltAt:         start,
			MovieCount:      model.Len(),
			VocabularySize:  model.VocabularySize(),
			MaxFeatures:     opts.MaxFeatures,
			StopWords:       opts.StopWords,
			BuildDurationMS: time.Since(start).Milliseconds(),
		}
		if saveErr := b.store.Save(ctx, storage.DefaultArtifactName, report.Version, model.Bundle(), meta); saveErr != nil {
			return fmt.Errorf("save artifact: %w", saveErr)
		}
		pruned, pruneErr := b.store.Prune(ctx, storage.DefaultArtifactName, b.cfg.Storage.KeepVersions)
		if pruneErr != nil {
			logger.Warn().Err(pruneErr).Msg("Pruning old artifacts failed")
		}
		report.Pruned = pruned
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Duration = time.Since(start)
	logger.Info().
		Int("version", report.Version).
		Int("movies", report.Movies).
		Int("vocabulary", report.VocabularySize).
		Int("pruned", report.Pruned).
		Dur("duration", report.Duration).
		Msg("Build complete")
	return report, nil
}

// BuildModel runs the pure part of the pipeline on already-loaded records.
// The same records and options always produce the same model.
func BuildModel(ctx context.Context, records []features.RawRecord, opts BuildOptions) (*Model, error) {
	model, _, err := buildModel(ctx, zerolog.Nop(), records, opts)
	return model, err
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func buildModel(ctx context.Context, logger zerolog.Logger, records []features.RawRecord, opts BuildOptions) (*Model, map[string]int, error) {
	if len(records) == 0 {
		return nil, nil, &catalog.BuildIntegrityError{Reason: "no movies left after joining and dropping incomplete rows"}
	}

	var normalized []features.Result
	err := runStage(logger, StageNormalize, func() error {
		var normErr error
		normalized, normErr = features.NormalizeAll(ctx, records, opts.Workers)
		return normErr
	})
	if err != nil {
		return nil, nil, err
	}

	malformed := make(map[string]int)
	for _, res := range normalized {
		for _, fieldErr := range res.Errors {
			field, ok := features.IsMalformed(fieldErr)
			if !ok {
				continue
			}
			malformed[field]++
			metrics.RecordMalformedField(field)
			logger.Debug().Err(fieldErr).Int64("movie_id", res.Record.MovieID).Str("title", res.Record.Title).Msg("Malformed field treated as empty")
		}
	}
	if len(malformed) > 0 {
		logger.Info().Interface("malformed_fields", malformed).Msg("Some metadata fields could not be parsed")
	}

	movies := make([]Movie, len(normalized))
	corpus := make([]string, len(normalized))
	_ = runStage(logger, StageCompose, func() error {
		for i, res := range normalized {
			corpus[i] = features.Compose(res.Record)
			movies[i] = Movie{ID: res.Record.MovieID, Title: res.Record.Title, Tags: features.Tags(corpus[i])}
		}
		return nil
	})

	var (
		vocab   *features.Vocabulary
		vectors []features.FeatureVector
	)
	err = runStage(logger, StageVectorize, func() error {
		stop, stopErr := features.LoadStopWords(opts.StopWords)
		if stopErr != nil {
			return stopErr
		}
		var fitErr error
		vocab, vectors, fitErr = features.NewVectorizer(opts.MaxFeatures, stop).FitTransform(corpus)
		if errors.Is(fitErr, features.ErrEmptyVocabulary) {
			return &catalog.BuildIntegrityError{Reason: "no usable tokens in the corpus", Err: fitErr}
		}
		return fitErr
	})
	if err != nil {
		return nil, nil, err
	}

	var matrix *similarity.Matrix
	err = runStage(logger, StageSimilarity, func() error {
		var simErr error
		matrix, simErr = similarity.Build(ctx, vectors, opts.Workers)
		return simErr
	})
	if err != nil {
		return nil, nil, err
	}

	model, err := NewModel(movies, vocab.Terms(), matrix, storage.ArtifactMetadata{})
	if err != nil {
		return nil, nil, err
	}
	return model, malformed, nil
}

// runStage times fn and records it under stage.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func runStage(logger zerolog.Logger, stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	metrics.RecordBuildStage(stage, elapsed)

	if err != nil {
		return fmt.Errorf("%s stage: %w", stage, err)
	}
	logger.Info().Str("stage", stage).Dur("duration", elapsed).Msg("Build stage complete")
	return nil
}

// MalformedFields returns the malformed field names of a report in a stable order.
func (r *BuildReport) MalformedFields() []string {
	fields := make([]string, 0, len(r.Malformed))
	for f := range r.Malformed {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
