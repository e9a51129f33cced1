// internal/store/diagnostics.go
package store

import (
	"context"

	"go.uber.org/zap"
)

// OpResult reports a diagnostic operation. The backend call and the
// follow-up refresh are one two-step operation: the refresh always
// runs, and UsedFallback marks that it ran to cover a failed backend
// call rather than to pick up its effect.
type OpResult struct {
	OK           bool
	UsedFallback bool
	Err          error
}

// Coverage asks the backend how complete its candle history is for the
// selected ticker, then refreshes displayed data either way.
func (s *Store) Coverage(ctx context.Context) (map[string]any, OpResult) {
	s.mu.Lock()
	ticker, days := s.selectedTicker, s.chartDays
	s.mu.Unlock()

	report, err := s.backend.CheckCoverage(ctx, ticker, days)
	return report, s.settle(ctx, "coverage", err)
}

// ForceReload tells the backend to re-fetch candles from its source.
func (s *Store) ForceReload(ctx context.Context) OpResult {
	s.mu.Lock()
	ticker, days := s.selectedTicker, s.chartDays
	s.mu.Unlock()

	err := s.backend.ForceReload(ctx, ticker, days)
	return s.settle(ctx, "force_reload", err)
}

// ManualLoad triggers a one-off backend candle load for the selected
// ticker.
func (s *Store) ManualLoad(ctx context.Context) OpResult {
	s.mu.Lock()
	ticker, days := s.selectedTicker, s.chartDays
	s.mu.Unlock()

	err := s.backend.ManualLoad(ctx, ticker, days)
	return s.settle(ctx, "manual_load", err)
}

// BulkLoad triggers a backend candle load across every known ticker.
func (s *Store) BulkLoad(ctx context.Context) OpResult {
	s.mu.Lock()
	days := s.chartDays
	s.mu.Unlock()

	err := s.backend.BulkLoad(ctx, days)
	return s.settle(ctx, "bulk_load", err)
}

// settle finishes a diagnostic: refresh displayed data regardless of
// the outcome and fold the backend error into an OpResult instead of
// propagating it.
func (s *Store) settle(ctx context.Context, op string, err error) OpResult {
	s.RefreshData(ctx)

	if err != nil {
		s.recordDiagnostic(op, "error")
		s.log.Warn("diagnostic failed, refreshed instead",
			zap.String("op", op), zap.Error(err))
		return OpResult{OK: false, UsedFallback: true, Err: err}
	}

	s.recordDiagnostic(op, "ok")
	return OpResult{OK: true}
}

func (s *Store) recordDiagnostic(op, status string) {
	if s.metrics != nil {
		s.metrics.RecordDiagnostic(op, status)
	}
}
