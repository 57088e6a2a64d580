// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		asJSON     bool
		datasetURL string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build and persist a new model version",
		Long: `Build reads the movies and credits CSV files from dataset.dir,
downloading them from dataset.url when missing, and writes a new
versioned model artifact to storage.artifact_dir. Older versions beyond
storage.keep_versions are pruned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("dataset-url") {
				a.cfg.Dataset.URL = datasetURL
			}

			store, err := storage.NewStore(a.cfg.Storage.ArtifactDir)
			if err != nil {
				return err
			}

			builder := recommend.NewBuilder(a.cfg, store, logging.Logger())
			report, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			fmt.Fprintf(out, "Built model version %d\n", report.Version)
			fmt.Fprintf(out, "  movies:      %d\n", report.Movies)
			fmt.Fprintf(out, "  vocabulary:  %d\n", report.VocabularySize)
			fmt.Fprintf(out, "  downloaded:  %t\n", report.Downloaded)
			fmt.Fprintf(out, "  pruned:      %d\n", report.Pruned)
			fmt.Fprintf(out, "  duration:    %s\n", report.Duration.Round(time.Millisecond))
			if fields := report.MalformedFields(); len(fields) > 0 {
				counts := make([]string, 0, len(fields))
				for _, f := range fields {
					counts = append(counts, fmt.Sprintf("%s=%d", f, report.Malformed[f]))
				}
				fmt.Fprintf(out, "  malformed:   %s\n", strings.Join(counts, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the build report as JSON")
	cmd.Flags().StringVar(&datasetURL, "dataset-url", "", "zip archive to download when the CSV files are missing (overrides dataset.url)")
	return cmd
}
