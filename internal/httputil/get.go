// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helpers shared by the lookup clients.
package httputil

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError reports a response whose status was not 200 OK.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Service, e.StatusCode)
}

// Get issues a single GET request for rawURL and hands the body of a 200
// response to decode. Any other status is returned as a *StatusError after
// the body is drained. There is no retry: one call, one request.
func Get(ctx context.Context, client *http.Client, rawURL, userAgent, service string, decode func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Service: service, StatusCode: resp.StatusCode}
	}

	if err := decode(resp.Body); err != nil {
		return fmt.Errorf("parsing %s response: %w", service, err)
	}
	return nil
}

// GetJSON is Get with a JSON decoder writing into v.
func GetJSON(ctx context.Context, client *http.Client, rawURL, userAgent, service string, v any) error {
	return Get(ctx, client, rawURL, userAgent, service, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(v)
	})
}

// GetXML is Get with an XML decoder writing into v.
func GetXML(ctx context.Context, client *http.Client, rawURL, userAgent, service string, v any) error {
	return Get(ctx, client, rawURL, userAgent, service, func(r io.Reader) error {
		return xml.NewDecoder(r).Decode(v)
	})
}

// NewClient returns an HTTP client with the given timeout. A zero timeout
// keeps the transport default.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
