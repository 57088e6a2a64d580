// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"fmt"
)

// ErrBuildIntegrity is the sentinel matched by every BuildIntegrityError.
var ErrBuildIntegrity = errors.New("build integrity violated")

// BuildIntegrityError reports build input that is missing or unusable.
// It is fatal for the build stage: no artifact is produced.
type BuildIntegrityError struct {
	// Path is the offending input file, if any.
	Path string
	// Reason is a short human-readable description.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *BuildIntegrityError) Error() string {
	msg := "build input: " + e.Reason
	if e.Path != "" {
		msg = fmt.Sprintf("build input %s: %s", e.Path, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *BuildIntegrityError) Unwrap() error {
	return e.Err
}

// Is matches ErrBuildIntegrity.
func (e *BuildIntegrityError) Is(target error) bool {
	return target == ErrBuildIntegrity
}
