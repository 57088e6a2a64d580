// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelmatch/internal/features"
)

// names renders a TMDB-style list of {"name": ...} objects.
func names(values ...string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = `{"name": "` + v + `"}`
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func director(name string) string {
	return `[{"job": "Producer", "name": "Jon Landau"}, {"job": "Director", "name": "` + name + `"}]`
}

func testRecords() []features.RawRecord {
	return []features.RawRecord{
		{MovieID: 19995, Title: "Avatar", Overview: "A paraplegic marine is sent to an alien moon",
			Genres: names("Action", "Science Fiction"), Keywords: names("alien", "space marine"),
			Cast: names("Sam Worthington", "Zoe Saldana"), Crew: director("James Cameron")},
		{MovieID: 679, Title: "Aliens", Overview: "A marine squad fights an alien queen",
			Genres: names("Action", "Science Fiction"), Keywords: names("alien", "space marine"),
			Cast: names("Sigourney Weaver"), Crew: director("James Cameron")},
		{MovieID: 597, Title: "Titanic", Overview: "A ship sinks in the cold ocean",
			Genres: names("Drama", "Romance"), Keywords: names("shipwreck"),
			Cast: names("Kate Winslet", "Leonardo DiCaprio"), Crew: director("James Cameron")},
		{MovieID: 11036, Title: "The Notebook", Overview: "A romance told across decades",
			Genres: names("Drama", "Romance"), Keywords: names("love letter"),
			Cast: names("Rachel McAdams"), Crew: director("Nick Cassavetes")},
		{MovieID: 49047, Title: "Gravity", Overview: "An astronaut is stranded in space",
			Genres: names("Science Fiction", "Drama"), Keywords: names("astronaut"),
			Cast: names("Sandra Bullock"), Crew: director("Alfonso Cuaron")},
		{MovieID: 157336, Title: "Interstellar", Overview: "An astronaut travels through a wormhole in space",
			Genres: names("Science Fiction", "Drama"), Keywords: names("astronaut", "wormhole"),
			Cast: names("Matthew McConaughey"), Crew: director("Christopher Nolan")},
		{MovieID: 949, Title: "Heat", Overview: "A detective hunts a crew of thieves",
			Genres: names("Action", "Crime"), Keywords: names("heist"),
			Cast: names("Al Pacino", "Robert De Niro"), Crew: director("Michael Mann")},
		{MovieID: 76600, Title: "Avatar", Overview: "A second catalog row sharing the title",
			Genres: names("Family"), Keywords: "[]", Cast: "[]", Crew: "[]"},
	}
}

func testOptions() BuildOptions {
	return BuildOptions{MaxFeatures: 5000, StopWords: features.StopWordsEnglish, Workers: 2}
}

func testModel(t *testing.T) *Model {
	t.Helper()
	model, err := BuildModel(context.Background(), testRecords(), testOptions())
	require.NoError(t, err)
	return model
}
