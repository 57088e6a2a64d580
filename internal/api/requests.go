// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Bounds for the similar endpoint's k parameter.
const (
	DefaultSimilarK = 10
	MaxSimilarK     = 50
)

// RecommendRequest holds the query of GET /api/v1/recommend.
type RecommendRequest struct {
	Movie string `query:"movie" validate:"required"`
}

// SimilarRequest holds the query of GET /api/v1/similar.
type SimilarRequest struct {
	Movie string `query:"movie" validate:"required"`
	K     int    `query:"k" validate:"min=1,max=50"`
}

func parseRecommendRequest(r *http.Request) (RecommendRequest, *models.APIError) {
	req := RecommendRequest{Movie: r.URL.Query().Get("movie")}
	return req, validateRequest(&req)
}

func parseSimilarRequest(r *http.Request) (SimilarRequest, *models.APIError) {
	q := r.URL.Query()
	req := SimilarRequest{Movie: q.Get("movie"), K: DefaultSimilarK}

	if raw := strings.TrimSpace(q.Get("k")); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return req, &models.APIError{
				Code:    ErrCodeValidation,
				Message: "k must be an integer",
				Details: map[string]interface{}{"field": "k", "tag": "integer"},
			}
		}
		req.K = k
	}
	return req, validateRequest(&req)
}
