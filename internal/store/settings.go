// internal/store/settings.go
package store

import "context"

// Preset is a named chart/signals period pair.
type Preset string

const (
	PresetDay     Preset = "day"
	PresetWeek    Preset = "week"
	PresetMonth   Preset = "month"
	PresetQuarter Preset = "quarter"
)

// presetPeriods maps presets onto (chartDays, signalsDays).
var presetPeriods = map[Preset][2]int{
	PresetDay:     {1, 1},
	PresetWeek:    {7, 7},
	PresetMonth:   {30, 30},
	PresetQuarter: {90, 90},
}

// SetSelectedTicker switches the dashboard to another ticker. Unchanged
// ticker is a no-op. Otherwise all displayed data and errors are
// cleared synchronously, before any network round trip, so the old
// ticker's data can never show against the new one; with auto-load on,
// a full reload starts for the new ticker.
func (s *Store) SetSelectedTicker(ctx context.Context, ticker string) {
	s.mu.Lock()
	if ticker == s.selectedTicker {
		s.mu.Unlock()
		return
	}
	s.selectedTicker = ticker
	s.clearDataLocked()
	auto := s.autoLoad
	s.mu.Unlock()

	if auto {
		s.LoadAll(ctx, true)
	}
}

// SetChartDays updates the candle period and reloads candles when
// auto-load is on.
func (s *Store) SetChartDays(ctx context.Context, days int) {
	s.mu.Lock()
	if days == s.chartDays {
		s.mu.Unlock()
		return
	}
	s.chartDays = days
	auto := s.autoLoad
	s.mu.Unlock()

	if auto {
		s.LoadCandles(ctx, false)
	}
}

// SetSignalsDays updates the signals period and reloads signals when
// auto-load is on.
func (s *Store) SetSignalsDays(ctx context.Context, days int) {
	s.mu.Lock()
	if days == s.signalsDays {
		s.mu.Unlock()
		return
	}
	s.signalsDays = days
	auto := s.autoLoad
	s.mu.Unlock()

	if auto {
		s.LoadSignals(ctx, false)
	}
}

// SetPeriod updates both periods at once (custom period) and reloads
// both resources when auto-load is on.
func (s *Store) SetPeriod(ctx context.Context, chartDays, signalsDays int) {
	s.mu.Lock()
	s.chartDays = chartDays
	s.signalsDays = signalsDays
	auto := s.autoLoad
	s.mu.Unlock()

	if auto {
		s.LoadAll(ctx, false)
	}
}

// ApplyPreset maps a named preset onto SetPeriod. Unknown presets are
// ignored.
func (s *Store) ApplyPreset(ctx context.Context, preset Preset) {
	periods, ok := presetPeriods[preset]
	if !ok {
		return
	}
	s.SetPeriod(ctx, periods[0], periods[1])
}

// SetAutoLoad toggles automatic reloads on setting changes.
func (s *Store) SetAutoLoad(enabled bool) {
	s.mu.Lock()
	s.autoLoad = enabled
	s.mu.Unlock()
}

// Clear resets all displayed data and errors.
func (s *Store) Clear() {
	s.mu.Lock()
	s.clearDataLocked()
	s.tickers = nil
	s.tickersError = ""
	s.mu.Unlock()
}

// clearDataLocked wipes the ticker-dependent state: candles, signals,
// current price and their error slots. The available-ticker list does
// not depend on the selection and is kept.
func (s *Store) clearDataLocked() {
	s.candles = nil
	s.signals = nil
	s.currentPrice = 0
	s.candlesError = ""
	s.signalsError = ""
}
