// internal/normalize/normalize.go
package normalize

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
)

// RawCandle is one candle record exactly as decoded from the backend.
// The backend serves several shapes over time, so nothing about field
// names or value types is trusted until normalization.
type RawCandle map[string]any

// Candidate keys per canonical field, checked in order. The first key
// present in the record wins. Keeping the aliases in one table is the
// whole point: every caller resolves fields the same way.
var (
	timeKeys   = []string{"time", "timestamp", "datetime", "date"}
	openKeys   = []string{"open", "o"}
	highKeys   = []string{"high", "h"}
	lowKeys    = []string{"low", "l"}
	closeKeys  = []string{"close", "c"}
	volumeKeys = []string{"volume", "v"}
)

// Accepted textual time layouts, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Candles reduces a raw batch to canonical candles: aliases resolved,
// values coerced, invalid records dropped, result sorted ascending by
// time. A record missing every time key gets the current time rather
// than failing the batch; a record with any non-positive OHLC value is
// dropped silently. The output may therefore be shorter than the input.
func Candles(raw []RawCandle) []core.Candle {
	out := make([]core.Candle, 0, len(raw))

	for _, rec := range raw {
		ts := float64(time.Now().Unix())
		if v, ok := rec.resolve(timeKeys); ok {
			ts = timeSeconds(v)
		}

		c := core.Candle{
			Open:   rec.number(openKeys),
			High:   rec.number(highKeys),
			Low:    rec.number(lowKeys),
			Close:  rec.number(closeKeys),
			Volume: rec.number(volumeKeys),
		}
		if !c.IsValid() || math.IsNaN(ts) || math.IsInf(ts, 0) {
			continue
		}
		c.Time = int64(ts)
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// LastClose returns the close of the chronologically last raw record,
// before any validity filtering: a half-broken final candle still
// carries the freshest price. The raw batch is sorted on an independent
// copy so callers never observe reordering. Empty input yields 0.
func LastClose(raw []RawCandle) float64 {
	if len(raw) == 0 {
		return 0
	}

	sorted := make([]RawCandle, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessTime(sorted[i].rawTime(), sorted[j].rawTime())
	})

	return sorted[len(sorted)-1].number(closeKeys)
}

// resolve returns the first present value among the candidate keys.
func (r RawCandle) resolve(keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// number resolves a field and coerces it to float64, 0 when absent.
func (r RawCandle) number(keys []string) float64 {
	v, ok := r.resolve(keys)
	if !ok {
		return 0
	}
	return toFloat(v)
}

// rawTime resolves the time field without coercion, substituting the
// current time when every alias is absent.
func (r RawCandle) rawTime() any {
	if v, ok := r.resolve(timeKeys); ok {
		return v
	}
	return float64(time.Now().Unix())
}

// lessTime orders two raw time values: date parsing when both are
// textual, numeric comparison otherwise.
func lessTime(a, b any) bool {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return parseDate(as) < parseDate(bs)
	}
	return timeSeconds(a) < timeSeconds(b)
}

// timeSeconds converts a raw time value to unix seconds. Textual values
// go through date parsing; numeric values are assumed to already be
// unix seconds. Unconvertible values come back NaN so validation drops
// the record.
func timeSeconds(v any) float64 {
	if s, ok := v.(string); ok {
		return parseDate(s)
	}
	return coerce(v)
}

// parseDate parses a textual date-time to unix seconds, NaN on failure.
func parseDate(s string) float64 {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.Unix())
		}
	}
	return math.NaN()
}

// toFloat coerces a decoded JSON value to float64; anything that is not
// a number, numeric string, or json.Number becomes 0.
func toFloat(v any) float64 {
	f := coerce(v)
	if math.IsNaN(f) {
		return 0
	}
	return f
}

func coerce(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
