// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// maxArchiveBytes bounds the downloaded archive and each extracted file.
const maxArchiveBytes = 512 << 20

// Acquirer fetches the dataset archive when the CSV files are absent.
type Acquirer struct {
	Client *http.Client
	Logger zerolog.Logger
}

// NewAcquirer returns an Acquirer with a bounded HTTP timeout.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAcquirer(timeout time.Duration, logger zerolog.Logger) *Acquirer {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Acquirer{
		Client: &http.Client{Timeout: timeout},
		Logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Present reports whether both dataset files exist in dir.
func Present(dir string) bool {
	moviesPath, creditsPath := Paths(dir)
	return checkFile(moviesPath) == nil && checkFile(creditsPath) == nil
}

// Ensure downloads url and extracts the dataset files into dir unless both
// already exist. It returns true when a download happened.
func (a *Acquirer) Ensure(ctx context.Context, url, dir string) (bool, error) {
	if Present(dir) {
		a.Logger.Info().Str("dir", dir).Msg("Dataset files already present, skipping download")
		return false, nil
	}
	if url == "" {
		moviesPath, _ := Paths(dir)
		return false, &BuildIntegrityError{Path: moviesPath, Reason: "dataset missing and no download URL configured"}
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("create data directory: %w", err)
	}

	a.Logger.Info().Str("url", url).Msg("Downloading dataset archive")
	archivePath, err := a.download(ctx, url, dir)
	if err != nil {
		return false, err
	}
	defer func() { _ = os.Remove(archivePath) }() //nolint:errcheck // temp file cleanup

	extracted, err := extract(archivePath, dir)
	if err != nil {
		return false, err
	}
	a.Logger.Info().Strs("files", extracted).Msg("Dataset archive extracted")

	if !Present(dir) {
		moviesPath, _ := Paths(dir)
		return true, &BuildIntegrityError{Path: moviesPath, Reason: "archive did not contain the dataset files"}
	}
	return true, nil
}

func (a *Acquirer) download(ctx context.Context, url, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download dataset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // body fully consumed

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download dataset: unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(dir, ".dataset-*.zip")
	if err != nil {
		return "", fmt.Errorf("create archive file: %w", err)
	}
	n, copyErr := io.Copy(tmp, io.LimitReader(resp.Body, maxArchiveBytes+1))
	closeErr := tmp.Close()
	if copyErr == nil && n > maxArchiveBytes {
		copyErr = fmt.Errorf("archive exceeds %d bytes", maxArchiveBytes)
	}
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(tmp.Name()) //nolint:errcheck // cleanup on failure
		return "", fmt.Errorf("save archive: %w", err)
	}
	return tmp.Name(), nil
}

// extract copies the dataset CSVs out of the archive. Entries are matched by
// base name, so directory prefixes inside the archive are ignored.
func extract(archivePath, dir string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = zr.Close() }() //nolint:errcheck // read-only

	wanted := map[string]bool{MoviesFile: true, CreditsFile: true}
	var extracted []string
	for _, f := range zr.File {
		base := path.Base(f.Name)
		if f.FileInfo().IsDir() || !wanted[base] {
			continue
		}
		if err := extractFile(f, filepath.Join(dir, base)); err != nil {
			return extracted, err
		}
		extracted = append(extracted, base)
		delete(wanted, base)
	}
	return extracted, nil
}

func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s in archive: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }() //nolint:errcheck // read-only

	out, err := os.Create(dest) //nolint:gosec // dest is dir joined with a fixed file name
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	n, copyErr := io.Copy(out, io.LimitReader(rc, maxArchiveBytes+1))
	closeErr := out.Close()
	if copyErr == nil && n > maxArchiveBytes {
		copyErr = fmt.Errorf("%s exceeds %d bytes", f.Name, maxArchiveBytes)
	}
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(dest) //nolint:errcheck // cleanup on failure
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return nil
}
