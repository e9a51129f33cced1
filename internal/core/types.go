package core

import (
	"strconv"
	"time"
)

// Category classifies what a pattern extracts from signal text.
type Category string

const (
	CategoryTicker         Category = "ticker"
	CategoryDirectionLong  Category = "direction_long"
	CategoryDirectionShort Category = "direction_short"
	CategoryOperationExit  Category = "operation_exit"
	CategoryTradingKeyword Category = "trading_keyword"
	CategoryAuthor         Category = "author"
	CategoryPriceTarget    Category = "price_target"
	CategoryPriceStop      Category = "price_stop"
	CategoryPriceTake      Category = "price_take"
	CategoryGarbage        Category = "garbage"
)

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryTicker,
		CategoryDirectionLong,
		CategoryDirectionShort,
		CategoryOperationExit,
		CategoryTradingKeyword,
		CategoryAuthor,
		CategoryPriceTarget,
		CategoryPriceStop,
		CategoryPriceTake,
		CategoryGarbage,
	}
}

// IsValid reports whether the category is one of the known set.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Pattern is a named regex rule used by the backend to classify
// trading-signal text. The client only holds transient copies: the
// backend owns identity and persistence.
type Pattern struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Pattern     string   `json:"pattern"`
	Priority    int      `json:"priority"` // 0-1000, higher evaluated first
	Description string   `json:"description,omitempty"`
	IsActive    bool     `json:"is_active"`
}

// MatchSpan is one match reported by the backend's test endpoint.
// Start and End are rune offsets into the subject text (End exclusive):
// the match engine reports character positions and subjects are routinely
// Cyrillic, so byte offsets would be wrong.
type MatchSpan struct {
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Match  string   `json:"match"`
	Groups []string `json:"groups,omitempty"`
}

// InBounds reports whether the span lies within a subject of n runes.
func (m MatchSpan) InBounds(n int) bool {
	return m.Start >= 0 && m.Start <= m.End && m.End <= n
}

// TestResult is the outcome of testing a pattern against sample text.
// Matches keep the engine's order (left to right, non-overlapping per
// engine semantics); nothing here assumes disjointness.
type TestResult struct {
	MatchesCount int         `json:"matches_count"`
	Matches      []MatchSpan `json:"matches"`
}

// Candle is one canonical OHLCV bar. Time is unix seconds: the backend
// serves several time encodings and everything is reduced to this one.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// IsValid reports whether the candle satisfies the canonical invariant.
func (c Candle) IsValid() bool {
	return c.Open > 0 && c.High > 0 && c.Low > 0 && c.Close > 0
}

// At returns the candle time as time.Time.
func (c Candle) At() time.Time {
	return time.Unix(c.Time, 0)
}

// Signal is an opaque record from the signals feed. The backend schema is
// not enforced beyond array-ness of the response, so the record is kept
// as-is; accessors cover the fields every signal carries.
type Signal map[string]any

// Str renders one signal field for display, "" when absent.
func (s Signal) Str(key string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func (s Signal) ID() string        { return s.Str("id") }
func (s Signal) Direction() string { return s.Str("direction") }
func (s Signal) Author() string    { return s.Str("author") }
func (s Signal) Ticker() string    { return s.Str("ticker") }
func (s Signal) Timestamp() string { return s.Str("timestamp") }
