// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		want      []string
		malformed bool
	}{
		{
			name: "json list in source order",
			raw:  `[{"id": 28, "name": "Action"}, {"id": 12, "name": "Adventure"}, {"id": 14, "name": "Fantasy"}]`,
			want: []string{"Action", "Adventure", "Fantasy"},
		},
		{
			name: "multi-word names collapse",
			raw:  `[{"id": 878, "name": "Science Fiction"}, {"id": 1, "name": " culture  clash "}]`,
			want: []string{"ScienceFiction", "cultureclash"},
		},
		{
			name: "python literal dialect",
			raw:  `[{'id': 1, 'name': 'Action'}, {'id': 2, 'name': "Children's Film"}, {'id': 3, 'name': 'O\'Brien', 'adult': False}]`,
			want: []string{"Action", "Children'sFilm", "O'Brien"},
		},
		{
			name: "empty list",
			raw:  `[]`,
			want: []string{},
		},
		{
			name: "blank input",
			raw:  "   ",
			want: []string{},
		},
		{
			name:      "not a list",
			raw:       `{"name": "Action"}`,
			want:      []string{},
			malformed: true,
		},
		{
			name:      "garbage",
			raw:       `[{"name": "Act`,
			want:      []string{},
			malformed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := ParseNames(FieldGenres, tt.raw)
			assert.Equal(t, tt.want, res.Tokens)
			if tt.malformed {
				require.Error(t, res.Err)
				field, ok := IsMalformed(res.Err)
				assert.True(t, ok)
				assert.Equal(t, FieldGenres, field)
			} else {
				assert.NoError(t, res.Err)
			}
		})
	}
}

func TestParseTopNames(t *testing.T) {
	t.Parallel()

	cast := `[{"name": "Sam Worthington"}, {"name": "Zoe Saldana"}, {"name": "Sigourney Weaver"}, {"name": "Stephen Lang"}]`
	res := ParseTopNames(FieldCast, cast, TopCast)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"SamWorthington", "ZoeSaldana", "SigourneyWeaver"}, res.Tokens)

	short := ParseTopNames(FieldCast, `[{"name": "Solo Actor"}]`, TopCast)
	assert.Equal(t, []string{"SoloActor"}, short.Tokens)
}

func TestParseDirector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "first director wins",
			raw:  `[{"job": "Producer", "name": "Jon Landau"}, {"job": "Director", "name": "James Cameron"}, {"job": "Director", "name": "Someone Else"}]`,
			want: []string{"JamesCameron"},
		},
		{
			name: "no director",
			raw:  `[{"job": "Producer", "name": "Jon Landau"}, {"job": "Editor", "name": "Stephen Rivkin"}]`,
			want: []string{},
		},
		{
			name: "job match is exact",
			raw:  `[{"job": "Assistant Director", "name": "A D"}]`,
			want: []string{},
		},
		{
			name: "malformed",
			raw:  `not a list`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseDirector(tt.raw).Tokens)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	res := Normalize(RawRecord{
		MovieID:  19995,
		Title:    "Avatar",
		Overview: "In the 22nd century,\ta paraplegic Marine",
		Genres:   `[{"id": 28, "name": "Action"}]`,
		Keywords: `broken`,
		Cast:     `[{"name": "Sam Worthington"}]`,
		Crew:     `[{"job": "Director", "name": "James Cameron"}]`,
	})

	rec := res.Record
	assert.Equal(t, int64(19995), rec.MovieID)
	assert.Equal(t, "Avatar", rec.Title)
	assert.Equal(t, []string{"In", "the", "22nd", "century,", "a", "paraplegic", "Marine"}, rec.Overview)
	assert.Equal(t, []string{"Action"}, rec.Genres)
	assert.Empty(t, rec.Keywords)
	assert.Equal(t, []string{"SamWorthington"}, rec.Cast)
	assert.Equal(t, []string{"JamesCameron"}, rec.Crew)

	require.Len(t, res.Errors, 1)
	field, ok := IsMalformed(res.Errors[0])
	assert.True(t, ok)
	assert.Equal(t, FieldKeywords, field)
}

func TestNormalize_EmptyOverview(t *testing.T) {
	t.Parallel()

	res := Normalize(RawRecord{Title: "Blank"})
	assert.Empty(t, res.Record.Overview)
	assert.Empty(t, res.Errors)
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	t.Parallel()

	records := make([]RawRecord, 50)
	for i := range records {
		records[i] = RawRecord{MovieID: int64(i), Title: fmt.Sprintf("Movie %d", i)}
	}

	results, err := NormalizeAll(context.Background(), records, 4)
	require.NoError(t, err)
	require.Len(t, results, len(records))
	for i, r := range results {
		assert.Equal(t, int64(i), r.Record.MovieID)
	}
}

func TestNormalizeAll_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NormalizeAll(ctx, []RawRecord{{Title: "x"}, {Title: "y"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPythonLiteralToJSON(t *testing.T) {
	t.Parallel()

	out, err := pythonLiteralToJSON(`[{'a': None, 'b': True, 'c': 'say "hi"'}]`)
	require.NoError(t, err)
	assert.Equal(t, `[{"a": null, "b": true, "c": "say \"hi\""}]`, out)

	_, err = pythonLiteralToJSON(`[{'a': 'open`)
	assert.Error(t, err)
}
