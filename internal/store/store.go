// internal/store/store.go
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/metrics"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/normalize"
	"go.uber.org/zap"
)

// Backend is the client surface the store drives.
type Backend interface {
	FetchCandles(ctx context.Context, ticker string, days int) ([]normalize.RawCandle, error)
	FetchSignals(ctx context.Context, ticker string, days int) ([]core.Signal, error)
	FetchTickers(ctx context.Context) ([]string, error)
	CheckCoverage(ctx context.Context, ticker string, days int) (map[string]any, error)
	ForceReload(ctx context.Context, ticker string, days int) error
	ManualLoad(ctx context.Context, ticker string, days int) error
	BulkLoad(ctx context.Context, days int) error
}

// Settings seeds the user-controlled knobs at session start.
type Settings struct {
	Ticker      string
	ChartDays   int
	SignalsDays int
	AutoLoad    bool
}

// Snapshot is a copy of the whole dashboard state for rendering.
type Snapshot struct {
	SelectedTicker string
	ChartDays      int
	SignalsDays    int
	AutoLoad       bool

	Candles      []core.Candle
	Signals      []core.Signal
	Tickers      []string
	CurrentPrice float64

	CandlesLoading bool
	SignalsLoading bool
	TickersLoading bool
	AutoLoading    bool

	CandlesError string
	SignalsError string
	TickersError string
}

// Store holds the dashboard session state. Every load follows the same
// per-resource cycle: mark loading and clear the error, fetch outside
// the lock, then either replace the data wholesale or record the error
// and reset the data to empty. A resource already loading ignores new
// load calls unless forced; force never cancels the outstanding
// request, it only starts another one.
type Store struct {
	backend Backend
	metrics *metrics.Registry
	log     *zap.Logger

	mu             sync.Mutex
	selectedTicker string
	chartDays      int
	signalsDays    int
	autoLoad       bool

	candles      []core.Candle
	signals      []core.Signal
	tickers      []string
	currentPrice float64

	candlesLoading bool
	signalsLoading bool
	tickersLoading bool
	autoLoading    bool

	candlesError string
	signalsError string
	tickersError string
}

// New creates a store. reg may be nil to skip metrics.
func New(backend Backend, settings Settings, reg *metrics.Registry, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		backend:        backend,
		metrics:        reg,
		log:            log,
		selectedTicker: settings.Ticker,
		chartDays:      settings.ChartDays,
		signalsDays:    settings.SignalsDays,
		autoLoad:       settings.AutoLoad,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SelectedTicker: s.selectedTicker,
		ChartDays:      s.chartDays,
		SignalsDays:    s.signalsDays,
		AutoLoad:       s.autoLoad,
		CurrentPrice:   s.currentPrice,
		CandlesLoading: s.candlesLoading,
		SignalsLoading: s.signalsLoading,
		TickersLoading: s.tickersLoading,
		AutoLoading:    s.autoLoading,
		CandlesError:   s.candlesError,
		SignalsError:   s.signalsError,
		TickersError:   s.tickersError,
	}
	snap.Candles = append([]core.Candle(nil), s.candles...)
	snap.Signals = append([]core.Signal(nil), s.signals...)
	snap.Tickers = append([]string(nil), s.tickers...)
	return snap
}

// LoadCandles fetches and normalizes candles for the selected ticker.
// Failures become the candles error slot, never a returned error.
func (s *Store) LoadCandles(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.candlesLoading && !force {
		s.mu.Unlock()
		return
	}
	s.candlesLoading = true
	s.candlesError = ""
	ticker, days := s.selectedTicker, s.chartDays
	s.mu.Unlock()

	raw, err := s.backend.FetchCandles(ctx, ticker, days)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.candlesLoading = false
	if err != nil {
		s.candlesError = humanize(err)
		s.candles = nil
		s.recordLoad("candles", "error")
		s.log.Warn("candles load failed", zap.String("ticker", ticker), zap.Error(err))
		return
	}

	s.candles = normalize.Candles(raw)
	s.currentPrice = normalize.LastClose(raw)
	s.recordLoad("candles", "ok")
	s.log.Debug("candles loaded",
		zap.String("ticker", ticker),
		zap.Int("raw", len(raw)),
		zap.Int("kept", len(s.candles)),
	)
}

// LoadSignals fetches signals for the selected ticker.
func (s *Store) LoadSignals(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.signalsLoading && !force {
		s.mu.Unlock()
		return
	}
	s.signalsLoading = true
	s.signalsError = ""
	ticker, days := s.selectedTicker, s.signalsDays
	s.mu.Unlock()

	signals, err := s.backend.FetchSignals(ctx, ticker, days)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.signalsLoading = false
	if err != nil {
		s.signalsError = humanize(err)
		s.signals = nil
		s.recordLoad("signals", "error")
		s.log.Warn("signals load failed", zap.String("ticker", ticker), zap.Error(err))
		return
	}

	s.signals = signals
	s.recordLoad("signals", "ok")
}

// LoadTickers fetches the list of available tickers.
func (s *Store) LoadTickers(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.tickersLoading && !force {
		s.mu.Unlock()
		return
	}
	s.tickersLoading = true
	s.tickersError = ""
	s.mu.Unlock()

	tickers, err := s.backend.FetchTickers(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickersLoading = false
	if err != nil {
		s.tickersError = humanize(err)
		s.tickers = nil
		s.recordLoad("tickers", "error")
		s.log.Warn("tickers load failed", zap.Error(err))
		return
	}

	s.tickers = tickers
	s.recordLoad("tickers", "ok")
}

// LoadAll fans out candle and signal loads concurrently and waits for
// both to settle; one failing never stops the other. The aggregate
// auto-loading flag spans the whole fan-out.
func (s *Store) LoadAll(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.autoLoading && !force {
		s.mu.Unlock()
		return
	}
	s.autoLoading = true
	s.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.LoadCandles(ctx, force)
	}()
	go func() {
		defer wg.Done()
		s.LoadSignals(ctx, force)
	}()
	wg.Wait()

	s.mu.Lock()
	s.autoLoading = false
	s.mu.Unlock()
}

// RefreshData is a plain, non-forced LoadAll.
func (s *Store) RefreshData(ctx context.Context) {
	s.LoadAll(ctx, false)
}

// humanize extracts the display message from an error.
func humanize(err error) string {
	var ce *core.Error
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}

// recordLoad is nil-safe around the optional registry.
func (s *Store) recordLoad(resource, status string) {
	if s.metrics != nil {
		s.metrics.RecordStoreLoad(resource, status)
	}
}
