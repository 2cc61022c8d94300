package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mark3labs/attachr/internal/config"
	"github.com/mark3labs/attachr/internal/logger"
)

// PublishableKeyHeader carries the storefront/vendor publishable API key.
const PublishableKeyHeader = "x-publishable-api-key"

// IdempotencyKeyHeader lets the backend de-duplicate retried writes.
const IdempotencyKeyHeader = "Idempotency-Key"

// Client issues JSON requests against the backend through a Transport.
type Client struct {
	transport      Transport
	httpClient     *http.Client
	publishableKey string
	token          string
}

// NewClient creates a client for the given transport.
func NewClient(transport Transport, publishableKey, token string, timeout time.Duration) *Client {
	return &Client{
		transport:      transport,
		httpClient:     &http.Client{Timeout: timeout},
		publishableKey: publishableKey,
		token:          token,
	}
}

// NewClientFromConfig builds the transport and client described by cfg.
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	transport, err := NewTransport(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using %s transport", transport.Name())
	return NewClient(transport, cfg.PublishableKey, cfg.Token, cfg.RequestTimeout), nil
}

// Request describes one backend call.
type Request struct {
	Method         string
	Path           string
	Query          url.Values
	Body           any
	IdempotencyKey string
}

// Do performs the request and decodes a 2xx JSON response into out (if non-nil).
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	target, err := c.transport.URL(r.Path, r.Query)
	if err != nil {
		return err
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.publishableKey != "" {
		req.Header.Set(PublishableKeyHeader, c.publishableKey)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if r.IdempotencyKey != "" {
		req.Header.Set(IdempotencyKeyHeader, r.IdempotencyKey)
	}

	logger.Debug("%s %s", r.Method, target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Request %s %s failed: %v", r.Method, r.Path, err)
		return fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		fe := &FetchError{Status: resp.StatusCode, Message: eb.text()}
		logger.Warn("Request %s %s returned %d: %s", r.Method, r.Path, resp.StatusCode, fe.Message)
		return fe
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", r.Path, err)
	}
	return nil
}
