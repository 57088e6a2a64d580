// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "reelmatch",
		Short: "Content-based movie recommendations",
		Long: `Reelmatch recommends movies whose overview, genres, keywords, top cast
and director resemble a movie you already like.

Run "reelmatch build" once to produce a model, then "reelmatch serve".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")

	root.AddCommand(
		newBuildCmd(a),
		newServeCmd(a),
		newRecommendCmd(a),
		newTitlesCmd(a),
	)
	return root
}

// load reads configuration and initializes logging. Logs go to the
// command's stderr so stdout stays clean for results.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	if a.logLevel != "" {
		logging.SetLevelString(a.logLevel)
	}

	logging.Debug().
		Str("config", a.configPath).
		Str("log_level", logging.GetLevel().String()).
		Str("artifact_dir", cfg.Storage.ArtifactDir).
		Bool("posters", cfg.Poster.Enabled()).
		Msg("Configuration loaded")
	return nil
}
