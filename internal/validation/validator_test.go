// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type similarRequest struct {
	Movie string `query:"movie" validate:"required"`
	K     int    `query:"k" validate:"min=1,max=50"`
}

type section struct {
	Timeout time.Duration `koanf:"timeout" validate:"min=100ms"`
	Mode    string        `koanf:"mode" validate:"oneof=json console"`
}

type settings struct {
	Poster section `koanf:"poster"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	require.NotNil(t, v1)
	assert.Same(t, v1, v2)
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   similarRequest
		wantErr bool
		field   string
		tag     string
		message string
	}{
		{name: "valid", input: similarRequest{Movie: "Avatar", K: 5}},
		{name: "bounds inclusive", input: similarRequest{Movie: "Avatar", K: 50}},
		{name: "missing movie", input: similarRequest{K: 5}, wantErr: true, field: "movie", tag: "required", message: "movie is required"},
		{name: "k too small", input: similarRequest{Movie: "Avatar", K: 0}, wantErr: true, field: "k", tag: "min", message: "k must be at least 1"},
		{name: "k too large", input: similarRequest{Movie: "Avatar", K: 51}, wantErr: true, field: "k", tag: "max", message: "k must be at most 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if !tt.wantErr {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			require.Len(t, verr.Errors(), 1)
			fe := verr.Errors()[0]
			assert.Equal(t, tt.field, fe.Field())
			assert.Equal(t, tt.tag, fe.Tag())
			assert.Equal(t, tt.message, fe.Error())
		})
	}
}

func TestValidateStruct_NestedNames(t *testing.T) {
	verr := ValidateStruct(&settings{Poster: section{Timeout: time.Millisecond, Mode: "xml"}})
	require.NotNil(t, verr)
	require.Len(t, verr.Errors(), 2)

	msg := verr.Error()
	assert.Contains(t, msg, "poster.timeout must be at least 100ms")
	assert.Contains(t, msg, "poster.mode must be one of: json console")
}

func TestToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		verr := ValidateStruct(&similarRequest{K: 1})
		require.NotNil(t, verr)
		apiErr := verr.ToAPIError()
		assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
		assert.Equal(t, "movie is required", apiErr.Message)
		assert.Equal(t, "movie", apiErr.Details["field"])
	})

	t.Run("multiple errors", func(t *testing.T) {
		verr := ValidateStruct(&similarRequest{K: 0})
		require.NotNil(t, verr)
		apiErr := verr.ToAPIError()
		assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
		assert.Equal(t, 2, strings.Count(apiErr.Message, ";")+1)
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		require.True(t, ok)
		assert.Len(t, fields, 2)
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		assert.Equal(t, "Validation failed", apiErr.Message)
	})
}
