// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// Field names used in MalformedFieldError and metrics labels.
const (
	FieldGenres   = "genres"
	FieldKeywords = "keywords"
	FieldCast     = "cast"
	FieldCrew     = "crew"
)

// TopCast is the number of billed cast members kept per movie.
const TopCast = 3

// directorJob is the crew job that contributes a tag.
const directorJob = "Director"

// RawRecord is one joined row of the movies and credits tables.
// List-valued fields hold serialized list-of-object literals.
type RawRecord struct {
	MovieID  int64
	Title    string
	Overview string
	Genres   string
	Keywords string
	Cast     string
	Crew     string
}

// Normalized holds the clean token lists extracted from a RawRecord.
type Normalized struct {
	MovieID  int64
	Title    string
	Overview []string
	Genres   []string
	Keywords []string
	Cast     []string
	Crew     []string
}

// MalformedFieldError reports a field that could not be parsed.
// Normalize absorbs it; it is only surfaced for logging and metrics.
type MalformedFieldError struct {
	Field string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed %s field: %v", e.Field, e.Err)
}

func (e *MalformedFieldError) Unwrap() error {
	return e.Err
}

// FieldResult is the outcome of parsing one field. Tokens is always usable;
// Err is non-nil when the field was malformed and Tokens fell back to empty.
type FieldResult struct {
	Tokens []string
	Err    error
}

// Result is the outcome of normalizing one record. Record is always usable.
type Result struct {
	Record Normalized
	Errors []error
}

// entry is the subset of a TMDB list object that carries tags.
type entry struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// parseEntries decodes a serialized list of objects. Strict JSON is tried
// first, then the Python literal dialect.
func parseEntries(raw string) ([]entry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var entries []entry
	err := json.Unmarshal([]byte(raw), &entries)
	if err == nil {
		return entries, nil
	}

	converted, convErr := pythonLiteralToJSON(raw)
	if convErr != nil {
		return nil, err
	}
	if err2 := json.Unmarshal([]byte(converted), &entries); err2 != nil {
		return nil, err
	}
	return entries, nil
}

// collapse removes all whitespace from a name.
func collapse(name string) string {
	return strings.Join(strings.Fields(name), "")
}

// ParseNames returns every name in a list field, in source order.
func ParseNames(field, raw string) FieldResult {
	return parseLimited(field, raw, -1)
}

// ParseTopNames returns the names of the first n entries.
func ParseTopNames(field, raw string, n int) FieldResult {
	return parseLimited(field, raw, n)
}

func parseLimited(field, raw string, limit int) FieldResult {
	entries, err := parseEntries(raw)
	if err != nil {
		return FieldResult{Tokens: []string{}, Err: &MalformedFieldError{Field: field, Err: err}}
	}

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	tokens := make([]string, 0, len(entries))
	for _, e := range entries {
		if name := collapse(e.Name); name != "" {
			tokens = append(tokens, name)
		}
	}
	return FieldResult{Tokens: tokens}
}

// ParseDirector returns the first crew member whose job is Director.
// At most one token is returned.
func ParseDirector(raw string) FieldResult {
	entries, err := parseEntries(raw)
	if err != nil {
		return FieldResult{Tokens: []string{}, Err: &MalformedFieldError{Field: FieldCrew, Err: err}}
	}

	for _, e := range entries {
		if e.Job != directorJob {
			continue
		}
		if name := collapse(e.Name); name != "" {
			return FieldResult{Tokens: []string{name}}
		}
		break
	}
	return FieldResult{Tokens: []string{}}
}

// Normalize extracts the token lists of a record. It never fails; fields
// that could not be parsed are empty and their errors are returned in Result.
//
//nolint:gocritic // RawRecord is a plain value row
func Normalize(r RawRecord) Result {
	out := Result{Record: Normalized{
		MovieID:  r.MovieID,
		Title:    r.Title,
		Overview: strings.Fields(r.Overview),
	}}

	take := func(res FieldResult) []string {
		if res.Err != nil {
			out.Errors = append(out.Errors, res.Err)
		}
		return res.Tokens
	}

	out.Record.Genres = take(ParseNames(FieldGenres, r.Genres))
	out.Record.Keywords = take(ParseNames(FieldKeywords, r.Keywords))
	out.Record.Cast = take(ParseTopNames(FieldCast, r.Cast, TopCast))
	out.Record.Crew = take(ParseDirector(r.Crew))
	return out
}

// NormalizeAll normalizes records with at most workers goroutines.
// Output order matches input order. The only error is ctx cancellation.
func NormalizeAll(ctx context.Context, records []RawRecord, workers int) ([]Result, error) {
	out := make([]Result, len(records))
	if len(records) == 0 {
		return out, nil
	}
	if workers <= 0 || workers > len(records) {
		workers = len(records)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i := range records {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			out[i] = Normalize(records[i])
		}(i)
	}
	wg.Wait()
	return out, nil
}

// IsMalformed reports whether err is a MalformedFieldError and returns its field.
func IsMalformed(err error) (string, bool) {
	var mfe *MalformedFieldError
	if errors.As(err, &mfe) {
		return mfe.Field, true
	}
	return "", false
}
