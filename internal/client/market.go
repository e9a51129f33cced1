// internal/client/market.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/normalize"
)

func marketQuery(ticker string, days int) url.Values {
	return url.Values{
		"ticker": {ticker},
		"days":   {strconv.Itoa(days)},
	}
}

// FetchCandles fetches raw candle records for a ticker. The records are
// returned unnormalized so the caller can derive the current price from
// the raw batch before filtering. The backend serves either
// {candles: [...]} or a bare array; anything else is a payload error.
func (c *Client) FetchCandles(ctx context.Context, ticker string, days int) ([]normalize.RawCandle, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/candles", marketQuery(ticker, days), nil, &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		Candles []normalize.RawCandle `json:"candles"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Candles != nil {
		return envelope.Candles, nil
	}

	var bare []normalize.RawCandle
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	return nil, core.WrapError(core.ErrBadPayload,
		fmt.Errorf("candles response is neither an envelope nor an array"))
}

// FetchSignals fetches signals for a ticker. Records stay opaque; only
// array-ness of the response is enforced.
func (c *Client) FetchSignals(ctx context.Context, ticker string, days int) ([]core.Signal, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/signals", marketQuery(ticker, days), nil, &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		Signals []core.Signal `json:"signals"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Signals != nil {
		return envelope.Signals, nil
	}

	var bare []core.Signal
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	return nil, core.WrapError(core.ErrBadPayload,
		fmt.Errorf("signals response is neither an envelope nor an array"))
}

// FetchTickers fetches the list of available tickers (bare array).
func (c *Client) FetchTickers(ctx context.Context) ([]string, error) {
	var tickers []string
	if err := c.do(ctx, http.MethodGet, "/api/tickers", nil, nil, &tickers); err != nil {
		return nil, err
	}
	return tickers, nil
}
