// internal/client/diagnostics.go
package client

import (
	"context"
	"net/http"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
)

type loadRequest struct {
	Ticker string `json:"ticker,omitempty"`
	Days   int    `json:"days"`
}

type statusResponse struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

func (s statusResponse) err() error {
	if s.Success != nil && !*s.Success {
		return core.Reject(core.ErrBackendRejected, s.Error)
	}
	return nil
}

// CheckCoverage asks the backend how complete its candle history is for
// a ticker. The report shape is backend-defined and passed through.
func (c *Client) CheckCoverage(ctx context.Context, ticker string, days int) (map[string]any, error) {
	var report map[string]any
	err := c.do(ctx, http.MethodGet, "/api/candles/coverage", marketQuery(ticker, days), nil, &report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ForceReload tells the backend to re-fetch candles from its source.
func (c *Client) ForceReload(ctx context.Context, ticker string, days int) error {
	var resp statusResponse
	err := c.do(ctx, http.MethodPost, "/api/candles/reload", nil,
		loadRequest{Ticker: ticker, Days: days}, &resp)
	if err != nil {
		return err
	}
	return resp.err()
}

// ManualLoad triggers a one-off candle load for a ticker.
func (c *Client) ManualLoad(ctx context.Context, ticker string, days int) error {
	var resp statusResponse
	err := c.do(ctx, http.MethodPost, "/api/candles/load", nil,
		loadRequest{Ticker: ticker, Days: days}, &resp)
	if err != nil {
		return err
	}
	return resp.err()
}

// BulkLoad triggers a candle load across every known ticker.
func (c *Client) BulkLoad(ctx context.Context, days int) error {
	var resp statusResponse
	err := c.do(ctx, http.MethodPost, "/api/candles/bulk_load", nil,
		loadRequest{Days: days}, &resp)
	if err != nil {
		return err
	}
	return resp.err()
}
