// Package submit posts assembled registration records to the backend and
// resolves the post-submit redirect destination.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrRejected marks a non-2xx backend response. The orchestrator returns the
// session to Ready so the user can retry without re-entering data.
var ErrRejected = errors.New("submit: backend rejected submission")

// Response carries the backend's optional redirect override.
type Response struct {
	URL string `json:"url"`
}

// Gateway posts records as JSON. The zero client carries no timeout: a
// submission can hang until the caller's context is cancelled.
type Gateway struct {
	http *http.Client
}

// Option customises the gateway.
type Option func(*Gateway)

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if client != nil {
			g.http = client
		}
	}
}

// NewGateway constructs a Gateway.
func NewGateway(options ...Option) *Gateway {
	g := &Gateway{http: &http.Client{}}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Submit posts the record to endpoint and returns the parsed response. A
// network failure or non-2xx status is an error; a 2xx with an unparsable or
// empty body is a success with an empty Response, so redirect resolution can
// fall back to the config default silently.
func (g *Gateway) Submit(ctx context.Context, endpoint string, record map[string]string) (Response, error) {
	if endpoint == "" {
		return Response{}, errors.New("submit: endpoint is required")
	}

	body, err := json.Marshal(record)
	if err != nil {
		return Response{}, fmt.Errorf("submit: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("submit: post record: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, fmt.Errorf("%w: status %s", ErrRejected, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, nil
	}

	var parsed Response
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Response{}, nil
	}
	return parsed, nil
}

// RedirectDestination picks the backend-provided URL when present, otherwise
// the config's default.
func RedirectDestination(resp Response, defaultURL string) string {
	if resp.URL != "" {
		return resp.URL
	}
	return defaultURL
}
