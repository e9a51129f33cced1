// internal/client/patterns.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
)

// PatternDraft carries the editable pattern fields, everything but the
// backend-assigned ID.
type PatternDraft struct {
	Name        string        `json:"name"`
	Category    core.Category `json:"category"`
	Pattern     string        `json:"pattern"`
	Priority    int           `json:"priority"`
	Description string        `json:"description,omitempty"`
	IsActive    bool          `json:"is_active"`
}

type testRequest struct {
	Pattern string `json:"pattern"`
	Text    string `json:"text"`
}

type testResponse struct {
	Success      bool             `json:"success"`
	MatchesCount int              `json:"matches_count"`
	Matches      []core.MatchSpan `json:"matches"`
	Error        string           `json:"error"`
}

// TestPattern runs a pattern against sample text on the backend's match
// engine. A success:false reply becomes ErrBackendRejected carrying the
// backend's message verbatim.
func (c *Client) TestPattern(ctx context.Context, pattern, text string) (*core.TestResult, error) {
	var resp testResponse
	err := c.do(ctx, http.MethodPost, "/api/patterns/test", nil,
		testRequest{Pattern: pattern, Text: text}, &resp)
	if err != nil {
		c.recordPatternTest("error")
		return nil, err
	}
	if !resp.Success {
		c.recordPatternTest("rejected")
		return nil, core.Reject(core.ErrBackendRejected, resp.Error)
	}

	c.recordPatternTest("ok")
	return &core.TestResult{
		MatchesCount: resp.MatchesCount,
		Matches:      resp.Matches,
	}, nil
}

// CreatePattern creates a new pattern and returns the persisted copy.
func (c *Client) CreatePattern(ctx context.Context, draft PatternDraft) (*core.Pattern, error) {
	var created core.Pattern
	if err := c.do(ctx, http.MethodPost, "/api/patterns", nil, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePattern updates an existing pattern by ID.
func (c *Client) UpdatePattern(ctx context.Context, id int64, draft PatternDraft) (*core.Pattern, error) {
	var updated core.Pattern
	path := fmt.Sprintf("/api/patterns/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, draft, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListPatterns fetches all patterns. The backend serves either
// {patterns: [...]} or a bare array.
func (c *Client) ListPatterns(ctx context.Context) ([]core.Pattern, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/patterns", nil, nil, &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		Patterns []core.Pattern `json:"patterns"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Patterns != nil {
		return envelope.Patterns, nil
	}

	var bare []core.Pattern
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	return nil, core.WrapError(core.ErrBadPayload,
		fmt.Errorf("patterns response is neither an envelope nor an array"))
}

// DeletePattern deletes a pattern by ID.
func (c *Client) DeletePattern(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/patterns/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
