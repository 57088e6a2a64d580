// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

// loadModel opens the artifact store and loads the latest model. Without
// an artifact it fails with a BuildIntegrityError.
func (a *app) loadModel(ctx context.Context) (*recommend.Model, error) {
	store, err := storage.NewStore(a.cfg.Storage.ArtifactDir)
	if err != nil {
		return nil, err
	}
	model, err := recommend.LoadModel(ctx, store)
	if err != nil {
		return nil, err
	}

	metrics.SetModelInfo(model.Len(), model.VocabularySize(), model.Metadata().Version)
	return model, nil
}

// newService loads the model and wires the poster chain. The caller owns
// the returned chain and must Close it.
func (a *app) newService(ctx context.Context) (*recommend.Service, *poster.Chain, error) {
	model, err := a.loadModel(ctx)
	if err != nil {
		return nil, nil, err
	}

	chain, err := poster.New(&a.cfg.Poster, logging.Logger())
	if err != nil {
		return nil, nil, err
	}

	svc := recommend.NewService(model, chain, recommend.Options{
		K:             a.cfg.Recommend.K,
		PosterTimeout: a.cfg.Poster.Timeout,
	}, logging.Logger())
	return svc, chain, nil
}
