// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Health handles GET /api/v1/health. The service only starts with a loaded
// model, so a reachable handler is always healthy.
//
// @Summary Health check
// @Description Reports the loaded model and poster lookup mode
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Service is healthy"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	model := h.svc.Model()
	meta := model.Metadata()

	posters := "disabled"
	if h.postersActive {
		posters = "omdb"
	}

	respondSuccess(w, r, models.HealthStatus{
		Status:          "healthy",
		Version:         h.version,
		Movies:          model.Len(),
		VocabularySize:  model.VocabularySize(),
		ArtifactVersion: meta.Version,
		ArtifactBuiltAt: meta.BuiltAt,
		PosterLookups:   posters,
		Uptime:          time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthLive handles GET /api/v1/health/live.
//
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse "Process is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}
