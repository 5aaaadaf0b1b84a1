// Package moderation wraps the external content-moderation classifier as a
// single synchronous capability: classify(text) -> flagged. The classifier
// is consumed at its interface only; thresholds, categories, and model
// choice are the provider's concern.
//
// Error semantics: any transport failure, timeout, non-2xx status, or
// malformed response is returned as an error. The exchange engine resolves
// classifier errors to flagged=true (fail closed); this package never makes
// that call itself.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Classifier is the capability the exchange engine consumes. Implementations
// must be safe for concurrent use.
type Classifier interface {
	// Classify reports whether text is inadmissible. An error means the
	// classification could not be performed, not that the text passed.
	Classify(ctx context.Context, text string) (flagged bool, err error)
}

// Client calls an HTTP moderation endpoint. Constructed once at process
// start and held for the process lifetime.
type Client struct {
	// Endpoint is the full URL of the moderation API.
	Endpoint string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// HTTPClient performs the requests; it carries the per-call timeout.
	HTTPClient *http.Client
}

// NewClient constructs a moderation Client with the given endpoint, API key,
// and per-call timeout.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// classifyRequest is the wire payload sent to the moderation endpoint.
type classifyRequest struct {
	Input string `json:"input"`
}

// classifyResponse is the subset of the provider response this service reads.
type classifyResponse struct {
	Results []struct {
		Flagged bool `json:"flagged"`
	} `json:"results"`
}

// Classify posts text to the moderation endpoint and returns the provider's
// flagged verdict. A response without results is treated as malformed.
func (c *Client) Classify(ctx context.Context, text string) (bool, error) {
	raw, err := json.Marshal(classifyRequest{Input: text})
	if err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(raw))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("moderation: endpoint returned %d: %s", resp.StatusCode, snippet)
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("moderation: decode response: %w", err)
	}
	if len(out.Results) == 0 {
		return false, fmt.Errorf("moderation: response contained no results")
	}
	return out.Results[0].Flagged, nil
}
