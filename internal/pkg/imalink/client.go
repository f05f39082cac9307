// Package imalink is the HTTP client for the remote ImaLink
// photo-management API. Every durable mutation in this application goes
// through it; the client keeps no state beyond the base URL and the
// bearer token. Timeouts and retries are left to the underlying
// http.Client on purpose.
package imalink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/trollfjell/imalink-web/internal/pkg/env"
)

// Client talks to the ImaLink API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given API base URL. The token is
// attached as a bearer credential on every request, including media
// fetches.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
	}
}

// NewClientFromEnv builds a client from IMALINK_API_URL and
// IMALINK_API_TOKEN.
func NewClientFromEnv() *Client {
	return NewClient(
		env.GetEnv("IMALINK_API_URL", "https://imalink.trollfjell.com"),
		env.GetEnv("IMALINK_API_TOKEN", ""),
	)
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RemoteError is any failed remote call: auth failure, not-found, server
// error. It is always surfaced to the user as a message and never
// retried automatically.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("imalink: %s failed (status %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("imalink: %s failed: %s", e.Op, e.Message)
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do executes a JSON request against the API. body and out may be nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Op: op, Message: fmt.Sprintf("encoding request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RemoteError{Op: op, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := resp.Status
		var ae apiError
		if derr := json.NewDecoder(resp.Body).Decode(&ae); derr == nil {
			if ae.Error != "" {
				msg = ae.Error
			} else if ae.Message != "" {
				msg = ae.Message
			}
		}
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: fmt.Sprintf("decoding response: %v", err)}
		}
	}
	return nil
}
