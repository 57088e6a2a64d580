// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

func newTitlesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "titles",
		Short: "Print every catalog title in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, err := a.loadModel(cmd.Context())
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, title := range model.Titles() {
				if _, err := fmt.Fprintln(w, title); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}
