// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/tomtom215/reelmatch/docs"
	"github.com/tomtom215/reelmatch/internal/features"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func movie(id int64, title, overview, genre string) features.RawRecord {
	return features.RawRecord{
		MovieID:  id,
		Title:    title,
		Overview: overview,
		Genres:   `[{"name": "` + genre + `"}]`,
		Keywords: "[]",
		Cast:     "[]",
		Crew:     "[]",
	}
}

func testService(t *testing.T, posters poster.Lookup) *recommend.Service {
	t.Helper()
	records := []features.RawRecord{
		movie(1, "Avatar", "marine on an alien moon", "Action"),
		movie(2, "Aliens", "marine squad fights alien queen", "Action"),
		movie(3, "Titanic", "ship sinks in the ocean", "Drama"),
		movie(4, "Gravity", "astronaut stranded in space", "Drama"),
		movie(5, "Interstellar", "astronaut crosses space", "Drama"),
		movie(6, "Heat", "detective hunts thieves", "Crime"),
		movie(7, "Alien", "crew meets an alien", "Horror"),
	}
	model, err := recommend.BuildModel(context.Background(), records, recommend.BuildOptions{
		MaxFeatures: 5000,
		StopWords:   features.StopWordsEnglish,
	})
	require.NoError(t, err)
	return recommend.NewService(model, posters, recommend.Options{}, zerolog.Nop())
}

func testRouter(t *testing.T, mwCfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	posters := poster.LookupFunc(func(_ context.Context, title string) (string, error) {
		if title == "Heat" {
			return "", poster.ErrNotAvailable
		}
		return "https://img.example/" + url.PathEscape(title) + ".jpg", nil
	})
	h := NewHandler(testService(t, posters), "test", true)
	return NewRouter(h, NewChiMiddleware(mwCfg), zerolog.Nop())
}

func do(t *testing.T, router http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, http.NoBody))

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHandler_Movies(t *testing.T) {
	t.Parallel()

	rec, env := do(t, testRouter(t, nil), http.MethodGet, "/api/v1/movies")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusSuccess, env.Status)
	assert.Equal(t, 7, env.Metadata.Count)
	assert.NotEmpty(t, env.Metadata.RequestID)
	assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), env.Metadata.RequestID)

	var titles []string
	require.NoError(t, json.Unmarshal(env.Data, &titles))
	assert.Equal(t, []string{"Avatar", "Aliens", "Titanic", "Gravity", "Interstellar", "Heat", "Alien"}, titles)
}

func TestHandler_Recommend(t *testing.T) {
	t.Parallel()

	rec, env := do(t, testRouter(t, nil), http.MethodGet, "/api/v1/recommend?movie=Avatar")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	var recs []recommend.Recommendation
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	require.Len(t, recs, 5)
	assert.Equal(t, 5, env.Metadata.Count)
	for _, r := range recs {
		assert.NotEqual(t, "Avatar", r.Title)
		if r.Title == "Heat" {
			assert.Equal(t, poster.Placeholder, r.PosterURL)
			continue
		}
		assert.Equal(t, "https://img.example/"+url.PathEscape(r.Title)+".jpg", r.PosterURL)
	}
}

func TestHandler_RecommendErrors(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{name: "missing movie", target: "/api/v1/recommend", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "empty movie", target: "/api/v1/recommend?movie=", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "unknown movie", target: "/api/v1/recommend?movie=" + url.QueryEscape("Unknown Title 123"), wantStatus: http.StatusNotFound, wantCode: ErrCodeMovieNotFound},
		{name: "case sensitive", target: "/api/v1/recommend?movie=avatar", wantStatus: http.StatusNotFound, wantCode: ErrCodeMovieNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := do(t, router, http.MethodGet, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, models.StatusError, env.Status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, "null", string(env.Data))
		})
	}
}

func TestHandler_RecommendValidationNamesQueryField(t *testing.T) {
	t.Parallel()

	_, env := do(t, testRouter(t, nil), http.MethodGet, "/api/v1/recommend")
	require.NotNil(t, env.Error)
	assert.Equal(t, "movie", env.Error.Details["field"])
	assert.Equal(t, "required", env.Error.Details["tag"])
}

func TestHandler_Similar(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)

	rec, env := do(t, router, http.MethodGet, "/api/v1/similar?movie=Aliens&k=3")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got []recommend.SimilarMovie
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Avatar", got[0].Title)
	assert.Equal(t, int64(1), got[0].MovieID)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}

	rec, env = do(t, router, http.MethodGet, "/api/v1/similar?movie=Aliens")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 6, "default k is capped by the catalog size")
}

func TestHandler_SimilarValidation(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)

	tests := []struct {
		name     string
		query    string
		wantCode string
		status   int
	}{
		{name: "k zero", query: "movie=Aliens&k=0", wantCode: ErrCodeValidation, status: http.StatusBadRequest},
		{name: "k too large", query: "movie=Aliens&k=51", wantCode: ErrCodeValidation, status: http.StatusBadRequest},
		{name: "k not a number", query: "movie=Aliens&k=ten", wantCode: ErrCodeValidation, status: http.StatusBadRequest},
		{name: "missing movie", query: "k=3", wantCode: ErrCodeValidation, status: http.StatusBadRequest},
		{name: "unknown movie", query: "movie=Nope&k=3", wantCode: ErrCodeMovieNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := do(t, router, http.MethodGet, "/api/v1/similar?"+tt.query)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)

	rec, env := do(t, router, http.MethodGet, "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var health models.HealthStatus
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, 7, health.Movies)
	assert.Positive(t, health.VocabularySize)
	assert.Equal(t, "omdb", health.PosterLookups)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)

	rec, env := do(t, router, http.MethodGet, "/api/v1/nothing-here")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeNotFound, env.Error.Code)

	rec, env = do(t, router, http.MethodPost, "/api/v1/movies")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeMethodNotAllowed, env.Error.Code)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	router := testRouter(t, cfg)

	for i := 0; i < 2; i++ {
		rec, _ := do(t, router, http.MethodGet, "/api/v1/movies")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := do(t, router, http.MethodGet, "/api/v1/movies")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeRateLimited, env.Error.Code)

	// Health has its own budget.
	rec, _ = do(t, router, http.MethodGet, "/api/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitDisabled = true
	router := testRouter(t, cfg)

	for i := 0; i < 5; i++ {
		rec, _ := do(t, router, http.MethodGet, "/api/v1/movies")
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommend", http.NoBody)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)
	_, _ = do(t, router, http.MethodGet, "/api/v1/movies")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api_requests_total")
}

func TestRouter_SwaggerDocument(t *testing.T) {
	t.Parallel()

	router := testRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		BasePath string                     `json:"basePath"`
		Info     struct{ Title string }     `json:"info"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc), rec.Body.String())
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Equal(t, "Reelmatch API", doc.Info.Title)
	for _, path := range []string{"/health", "/health/live", "/movies", "/recommend", "/similar"} {
		assert.Contains(t, doc.Paths, path)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger-ui")
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `a\x0ab\x0d`, sanitizeLogValue("a\nb\r"))
	assert.Equal(t, "plain title", sanitizeLogValue("plain title"))
}
