// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package mpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/specialistvlad/relaxflow/internal/ctxlog"
	"github.com/specialistvlad/relaxflow/internal/structure"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBaseURL is the public Materials Project API endpoint.
const DefaultBaseURL = "https://api.materialsproject.org"

// Environment variables consulted, in order, when no key is configured.
var apiKeyEnvVars = []string{"MP_API_KEY", "PMG_MAPI_KEY"}

var (
	// ErrMissingAPIKey is returned when neither the config nor the
	// environment provides an API key.
	ErrMissingAPIKey = errors.New("materials project API key not set")
	// ErrNotFound is returned when a requested material id is absent from
	// the response.
	ErrNotFound = errors.New("material not found")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("materials project API: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("materials project API: HTTP %d: %s", e.StatusCode, e.Detail)
}

// Config configures a Client. Zero values pick the defaults.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches structures from the Materials Project.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ structure.Provider = (*Client)(nil)

// New builds a Client. The API key falls back to MP_API_KEY and then
// PMG_MAPI_KEY.
func New(cfg Config) (*Client, error) {
	key := cfg.APIKey
	for _, name := range apiKeyEnvVars {
		if key != "" {
			break
		}
		key = os.Getenv(name)
	}
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = newHTTPClient(cfg.Timeout)
	}
	return &Client{baseURL: strings.TrimRight(base, "/"), apiKey: key, http: hc}, nil
}

type summaryResponse struct {
	Data []struct {
		MaterialID string              `json:"material_id"`
		Structure  *structure.Document `json:"structure"`
	} `json:"data"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Structures returns one structure per id, in the order requested.
func (c *Client) Structures(ctx context.Context, ids []string) ([]*structure.Structure, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	logger := ctxlog.FromContext(ctx)

	q := url.Values{}
	q.Set("material_ids", strings.Join(ids, ","))
	q.Set("_fields", "material_id,structure")
	endpoint := c.baseURL + "/materials/summary/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	logger.Debug("Querying Materials Project.", "ids", ids)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	logger.Debug("Received Materials Project response.", "status", resp.Status, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(body, &er) == nil {
			apiErr.Detail = er.Detail
		}
		return nil, apiErr
	}

	var sr summaryResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	byID := make(map[string]*structure.Structure, len(sr.Data))
	for _, d := range sr.Data {
		if d.Structure == nil {
			continue
		}
		s, err := structure.FromDocument(*d.Structure)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", d.MaterialID, err)
		}
		byID[d.MaterialID] = s
	}

	out := make([]*structure.Structure, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		out = append(out, s)
	}
	return out, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
