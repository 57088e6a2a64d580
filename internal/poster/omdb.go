// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/config"
)

// maxResponseBytes bounds an OMDb response body.
const maxResponseBytes = 1 << 20

// omdbResponse holds the fields of an OMDb title response we use.
type omdbResponse struct {
	Response string `json:"Response"`
	Poster   string `json:"Poster"`
	Error    string `json:"Error"`
}

// OMDbClient queries the OMDb API by exact title.
type OMDbClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewOMDbClient creates a client from poster configuration. The HTTP
// timeout matches the per-lookup timeout.
func NewOMDbClient(cfg *config.PosterConfig) (*OMDbClient, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse OMDb base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("OMDb base URL scheme must be http or https, got %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &OMDbClient{
		baseURL: base,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}, nil
}

// requestURL builds {base}?t=<title>&apikey=<key>.
func (c *OMDbClient) requestURL(title string) string {
	u := *c.baseURL
	q := u.Query()
	q.Set("t", title)
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String()
}

// Poster returns the poster URL for title. A well-formed response without
// a usable poster yields ErrNotAvailable; transport failures, non-200
// statuses and undecodable bodies are returned as errors.
func (c *OMDbClient) Poster(ctx context.Context, title string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(title), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build OMDb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OMDb request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // body fully consumed

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read OMDb response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OMDb returned status %d", resp.StatusCode)
	}

	var data omdbResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("decode OMDb response: %w", err)
	}

	if data.Response != "True" || data.Poster == "" || data.Poster == "N/A" {
		return "", ErrNotAvailable
	}
	return data.Poster, nil
}
