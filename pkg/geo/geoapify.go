package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	geoapifyEndpoint = "https://api.geoapify.com/v1/geocode/reverse"

	// ReverseGeocodeTimeout bounds the postal lookup. The resolver downgrades
	// to the PincodeUnavailable sentinel when it elapses.
	ReverseGeocodeTimeout = 10 * time.Second
)

// ReverseGeocoder turns coordinates into a postal code.
type ReverseGeocoder interface {
	Pincode(ctx context.Context, coords Coordinates) (string, error)
}

// GeoapifyClient resolves postal codes through the Geoapify reverse geocoding
// API.
type GeoapifyClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// GeoapifyOption customises the client.
type GeoapifyOption func(*GeoapifyClient)

// WithGeoapifyHTTPClient injects a custom HTTP client.
func WithGeoapifyHTTPClient(client *http.Client) GeoapifyOption {
	return func(c *GeoapifyClient) {
		if client != nil {
			c.http = client
		}
	}
}

// WithGeoapifyEndpoint overrides the API base URL, mainly for tests.
func WithGeoapifyEndpoint(endpoint string) GeoapifyOption {
	return func(c *GeoapifyClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// NewGeoapifyClient constructs a client. An empty API key is allowed; lookups
// then fail and the resolver substitutes the sentinel, so a missing credential
// never blocks the form.
func NewGeoapifyClient(apiKey string, options ...GeoapifyOption) *GeoapifyClient {
	c := &GeoapifyClient{
		apiKey:   apiKey,
		endpoint: geoapifyEndpoint,
		http:     &http.Client{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type geoapifyResponse struct {
	Features []struct {
		Properties struct {
			Postcode string `json:"postcode"`
		} `json:"properties"`
	} `json:"features"`
}

// Pincode fetches the postal code for the supplied coordinates. The postcode
// is read from the first feature's properties.
func (c *GeoapifyClient) Pincode(ctx context.Context, coords Coordinates) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("geo: geoapify api key is missing")
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	query.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("geo: build reverse geocode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geo: reverse geocode request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("geo: reverse geocode status %s", resp.Status)
	}

	var payload geoapifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("geo: decode reverse geocode response: %w", err)
	}

	if len(payload.Features) == 0 || payload.Features[0].Properties.Postcode == "" {
		return "", errors.New("geo: postcode not present in response")
	}
	return payload.Features[0].Properties.Postcode, nil
}
