// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Client talks to the dashboard backend REST API. All state it holds is
// connection configuration; dashboard state lives in the store.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	metrics *metrics.Registry
	log     *zap.Logger
}

// Options configures a Client. Only BaseURL is required.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Metrics *metrics.Registry
	Logger  *zap.Logger
}

// New creates a backend client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	var transport http.RoundTripper
	if opts.Metrics != nil {
		transport = metrics.NewTransport(opts.Metrics, nil)
	}

	return &Client{
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		metrics: opts.Metrics,
		log:     opts.Logger,
	}
}

// do performs one JSON request. A nil out skips response decoding.
// Transport errors and non-2xx statuses map to ErrNetwork, undecodable
// bodies to ErrBadPayload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return core.WrapError(core.ErrBadPayload, fmt.Errorf("encoding request: %w", err))
		}
		buf = bytes.NewBuffer(data)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return core.WrapError(core.ErrNetwork, fmt.Errorf("building request: %w", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return core.WrapError(core.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("backend returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
		)
		return core.WrapError(core.ErrNetwork, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return core.WrapError(core.ErrBadPayload, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// recordPatternTest is nil-safe around the optional registry.
func (c *Client) recordPatternTest(status string) {
	if c.metrics != nil {
		c.metrics.RecordPatternTest(status)
	}
}
