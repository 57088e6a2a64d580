// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/logging"
)

func newRecommendCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Print recommendations for a movie",
		Long: `Recommend prints the five movies most similar to <title> with their
poster URLs. The title must match a catalog title exactly; an unknown
title exits with status 1.`,
		Example: `  reelmatch recommend "The Dark Knight Rises"
  reelmatch recommend Avatar --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, chain, err := a.newService(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := chain.Close(); err != nil {
					logging.Warn().Err(err).Msg("Error closing poster cache")
				}
			}()

			recs, err := svc.Recommend(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(recs, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			for i, rec := range recs {
				fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, rec.Title, rec.PosterURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print recommendations as JSON")
	return cmd
}
