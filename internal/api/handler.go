// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// requestTimeout bounds a single recommendation request, poster lookups
// included.
const requestTimeout = 10 * time.Second

// Handler serves the recommendation endpoints.
type Handler struct {
	svc           *recommend.Service
	version       string
	postersActive bool
	startTime     time.Time
}

// NewHandler creates a Handler. postersActive only affects the health
// report.
func NewHandler(svc *recommend.Service, version string, postersActive bool) *Handler {
	return &Handler{
		svc:           svc,
		version:       version,
		postersActive: postersActive,
		startTime:     time.Now(),
	}
}

// Movies handles GET /api/v1/movies.
//
// @Summary List catalog titles
// @Description Returns every title in the loaded model in catalog order
// @Tags movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]string} "Catalog titles"
// @Failure 429 {object} models.APIResponse "Rate limit exceeded"
// @Router /movies [get]
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	titles := h.svc.ListTitles()
	respondSuccess(w, r, titles, models.Metadata{Count: len(titles)})
}

// Recommend handles GET /api/v1/recommend?movie=<title>.
//
// @Summary Recommend movies
// @Description Returns the five most similar titles with poster URLs
// @Tags recommendations
// @Produce json
// @Param movie query string true "Exact catalog title"
// @Success 200 {object} models.APIResponse{data=[]recommend.Recommendation} "Recommendations"
// @Failure 400 {object} models.APIResponse "Missing movie parameter"
// @Failure 404 {object} models.APIResponse "Title not in catalog"
// @Failure 429 {object} models.APIResponse "Rate limit exceeded"
// @Router /recommend [get]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseRecommendRequest(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	start := time.Now()
	recs, err := h.svc.Recommend(ctx, req.Movie)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, recs, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Count:       len(recs),
	})
}

// Similar handles GET /api/v1/similar?movie=<title>&k=<n>.
//
// @Summary Nearest neighbours
// @Description Returns up to k neighbours with their cosine similarity scores
// @Tags recommendations
// @Produce json
// @Param movie query string true "Exact catalog title"
// @Param k query int false "Neighbour count (1-50)" default(10)
// @Success 200 {object} models.APIResponse{data=[]recommend.SimilarMovie} "Neighbours"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 404 {object} models.APIResponse "Title not in catalog"
// @Failure 429 {object} models.APIResponse "Rate limit exceeded"
// @Router /similar [get]
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseSimilarRequest(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	start := time.Now()
	neighbors, err := h.svc.Similar(req.Movie, req.K)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, neighbors, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Count:       len(neighbors),
	})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, recommend.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, ErrCodeMovieNotFound, err.Error(), err)
		return
	}
	respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to compute recommendations", err)
}

// NotFound handles unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
}

// MethodNotAllowed handles known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
}
