// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// readHeaderTimeout bounds slow clients independently of server.timeout.
const readHeaderTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve recommendations over HTTP",
		Long: `Serve loads the latest model from storage.artifact_dir and answers
recommendation queries under /api/v1. Prometheus metrics are exposed at
/metrics. The server refuses to start without a built model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	logger := logging.Logger()

	svc, chain, err := a.newService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := chain.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing poster cache")
		}
	}()

	meta := svc.Model().Metadata()
	logging.Info().
		Int("movies", svc.Model().Len()).
		Int("vocabulary", svc.Model().VocabularySize()).
		Int("artifact_version", meta.Version).
		Time("built_at", meta.BuiltAt).
		Bool("posters", chain.Enabled()).
		Msg("Model loaded")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	handler := api.NewHandler(svc, version, chain.Enabled())
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security))
	server := newHTTPServer(&cfg.Server, api.NewRouter(handler, mw, logger))

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if chain.Store != nil {
		tree.AddMaintenanceService(services.NewCacheGCService(chain.Store, cfg.Poster.CacheGCInterval, logger))
	}

	logging.Info().Str("addr", server.Addr).Str("version", version).Msg("Starting reelmatch server")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, s := range unstopped {
		logging.Warn().Str("service", s.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
	return nil
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.Timeout,
		WriteTimeout:      cfg.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}
