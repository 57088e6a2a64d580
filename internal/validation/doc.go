// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the API request parsers and the
// configuration loader. Field names in messages come from the field's
// query, koanf or json tag, so an API client sees "movie is required" and an
// operator sees "poster.timeout must be at least 100ms".
//
// Example usage:
//
//	type SimilarRequest struct {
//	    Movie string `query:"movie" validate:"required"`
//	    K     int    `query:"k" validate:"min=1,max=50"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
