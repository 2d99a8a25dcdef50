// Package client talks to a running co2d server. It is what the predict and
// labels commands use, and what a form-style front end would use to fill its
// choices and submit a vehicle.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"co2d/internal/httpapi"
	"co2d/internal/predictor"
	"co2d/pkg/types"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	// Field is the wire name of the offending input, if any.
	Field string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("server returned %d (%s): %s", e.Status, e.Field, e.Message)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (e *APIError) StatusCode() int { return e.Status }

// IsAPIError reports whether err is an *APIError with the given status (any
// status when status is 0).
func IsAPIError(err error, status int) bool {
	var ae *APIError
	if !errors.As(err, &ae) {
		return false
	}
	return status == 0 || ae.Status == status
}

// Client is safe for concurrent use.
type Client struct {
	base string
	hc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc = &http.Client{Timeout: d} }
}

// New returns a client for the server at baseURL, e.g. "http://127.0.0.1:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url must be http or https: %q", baseURL)
	}
	c := &Client{base: strings.TrimRight(baseURL, "/"), hc: &http.Client{Timeout: defaultTimeout}}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Predict submits r and returns the prediction and the artifact version
// that produced it.
func (c *Client) Predict(ctx context.Context, r predictor.Record) (types.PredictResponse, error) {
	var out types.PredictResponse
	body, err := json.Marshal(httpapi.RequestFromRecord(r))
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodPost, "/predict", body, &out)
	return out, err
}

// Labels returns the valid labels of every categorical field, keyed by wire
// field name.
func (c *Client) Labels(ctx context.Context) (types.LabelsResponse, error) {
	var out types.LabelsResponse
	err := c.do(ctx, http.MethodGet, "/labels", nil, &out)
	return out, err
}

// LabelsFor returns the valid labels of one field (schema or wire name).
func (c *Client) LabelsFor(ctx context.Context, field string) (types.FieldLabelsResponse, error) {
	var out types.FieldLabelsResponse
	err := c.do(ctx, http.MethodGet, "/labels/"+url.PathEscape(field), nil, &out)
	return out, err
}

// Schema returns the server's feature layout.
func (c *Client) Schema(ctx context.Context) (types.SchemaResponse, error) {
	var out types.SchemaResponse
	err := c.do(ctx, http.MethodGet, "/schema", nil, &out)
	return out, err
}

// Status returns the server's serving status.
func (c *Client) Status(ctx context.Context) (types.StatusResponse, error) {
	var out types.StatusResponse
	err := c.do(ctx, http.MethodGet, "/status", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload types.ErrorResponse
	if err := json.Unmarshal(b, &payload); err != nil || payload.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(b))}
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Error, Field: payload.Field}
}
