// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog reads the raw TMDB datasets the build stage consumes.
//
// The movies and credits CSV files are loaded into an in-memory DuckDB
// database, inner-joined on title, and returned as features.RawRecord rows
// in movies-file order. Rows with a NULL in any selected column are dropped.
// A missing file or required column is a BuildIntegrityError.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// DuckDB driver - reads and joins the CSV inputs in-process
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/reelmatch/internal/features"
)

// Default dataset file names inside the data directory.
const (
	MoviesFile  = "tmdb_5000_movies.csv"
	CreditsFile = "tmdb_5000_credits.csv"
)

var (
	requiredMovieColumns  = []string{"title", "overview", "genres", "keywords"}
	requiredCreditColumns = []string{"title", "cast", "crew"}
)

// Paths returns the movies and credits paths inside dir.
func Paths(dir string) (movies, credits string) {
	return filepath.Join(dir, MoviesFile), filepath.Join(dir, CreditsFile)
}

// Loader joins the two build inputs using DuckDB.
type Loader struct {
	db          *sql.DB
	moviesPath  string
	creditsPath string
}

// NewLoader verifies both input files exist and opens an in-memory DuckDB.
func NewLoader(moviesPath, creditsPath string) (*Loader, error) {
	for _, p := range []string{moviesPath, creditsPath} {
		if err := checkFile(p); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// Temp tables live on a single connection.
	db.SetMaxOpenConns(1)

	return &Loader{db: db, moviesPath: moviesPath, creditsPath: creditsPath}, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &BuildIntegrityError{Path: path, Reason: "required file is missing"}
	case err != nil:
		return &BuildIntegrityError{Path: path, Reason: "cannot stat file", Err: err}
	case info.IsDir():
		return &BuildIntegrityError{Path: path, Reason: "expected a file, found a directory"}
	}
	return nil
}

// Close releases the DuckDB handle.
func (l *Loader) Close() error {
	return l.db.Close()
}

// sqlString quotes s as a SQL string literal.
func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// loadTable materializes a CSV file as a temp table with a row position column.
func (l *Loader) loadTable(ctx context.Context, table, path, posColumn string) error {
	query := fmt.Sprintf(
		`CREATE OR REPLACE TEMP TABLE %s AS
		 SELECT row_number() OVER () AS %s, *
		 FROM read_csv(%s, header = true, all_varchar = true, quote = '"', escape = '"')`,
		table, posColumn, sqlString(path),
	)
	if _, err := l.db.ExecContext(ctx, query); err != nil {
		return &BuildIntegrityError{Path: path, Reason: "cannot read CSV", Err: err}
	}
	return nil
}

func (l *Loader) columns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := l.db.QueryContext(ctx, fmt.Sprintf("SELECT name FROM pragma_table_info(%s)", sqlString(table)))
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		cols[strings.ToLower(name)] = true
	}
	return cols, rows.Err()
}

func requireColumns(path string, have map[string]bool, want []string) error {
	var missing []string
	for _, c := range want {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &BuildIntegrityError{Path: path, Reason: "missing columns " + strings.Join(missing, ", ")}
	}
	return nil
}

// Load returns the joined records in movies-file order, then credits-file
// order for titles that match more than one credits row.
func (l *Loader) Load(ctx context.Context) ([]features.RawRecord, error) {
	if err := l.loadTable(ctx, "movies", l.moviesPath, "movie_pos"); err != nil {
		return nil, err
	}
	if err := l.loadTable(ctx, "credits", l.creditsPath, "credit_pos"); err != nil {
		return nil, err
	}

	movieCols, err := l.columns(ctx, "movies")
	if err != nil {
		return nil, err
	}
	creditCols, err := l.columns(ctx, "credits")
	if err != nil {
		return nil, err
	}
	if err := requireColumns(l.moviesPath, movieCols, requiredMovieColumns); err != nil {
		return nil, err
	}
	if err := requireColumns(l.creditsPath, creditCols, requiredCreditColumns); err != nil {
		return nil, err
	}

	var idExpr string
	switch {
	case creditCols["movie_id"]:
		idExpr = "c.movie_id"
	case movieCols["movie_id"]:
		idExpr = "m.movie_id"
	case movieCols["id"]:
		idExpr = "m.id"
	default:
		return nil, &BuildIntegrityError{Path: l.moviesPath, Reason: "no movie_id or id column"}
	}

	query := fmt.Sprintf(`
		SELECT movie_id, title, overview, genres, keywords, "cast", crew
		FROM (
			SELECT TRY_CAST(%s AS BIGINT) AS movie_id,
			       m.title AS title, m.overview AS overview,
			       m.genres AS genres, m.keywords AS keywords,
			       c."cast" AS "cast", c.crew AS crew,
			       m.movie_pos AS movie_pos, c.credit_pos AS credit_pos
			FROM movies m
			JOIN credits c ON m.title = c.title
		)
		WHERE movie_id IS NOT NULL AND title IS NOT NULL AND overview IS NOT NULL
		  AND genres IS NOT NULL AND keywords IS NOT NULL
		  AND "cast" IS NOT NULL AND crew IS NOT NULL
		ORDER BY movie_pos, credit_pos`, idExpr)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("join inputs: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // read-only

	var records []features.RawRecord
	for rows.Next() {
		var r features.RawRecord
		if err := rows.Scan(&r.MovieID, &r.Title, &r.Overview, &r.Genres, &r.Keywords, &r.Cast, &r.Crew); err != nil {
			return nil, fmt.Errorf("scan joined row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate joined rows: %w", err)
	}
	return records, nil
}

// LoadDir loads the default file names from dir.
func LoadDir(ctx context.Context, dir string) ([]features.RawRecord, error) {
	moviesPath, creditsPath := Paths(dir)
	loader, err := NewLoader(moviesPath, creditsPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = loader.Close() }() //nolint:errcheck // in-memory database

	return loader.Load(ctx)
}
