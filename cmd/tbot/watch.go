package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/logger"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/metrics"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchTicker      string
	watchChartDays   int
	watchSignalsDays int
	watchInterval    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch dashboard data for a ticker",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchTicker, "ticker", "t", "", "ticker to watch (default from config)")
	watchCmd.Flags().IntVar(&watchChartDays, "chart-days", 0, "candle period in days (default from config)")
	watchCmd.Flags().IntVar(&watchSignalsDays, "signals-days", 0, "signals period in days (default from config)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "refresh interval (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := logger.Must("", debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	// Flags override config
	if watchTicker != "" {
		cfg.Dashboard.Ticker = watchTicker
	}
	if watchChartDays > 0 {
		cfg.Dashboard.ChartDays = watchChartDays
	}
	if watchSignalsDays > 0 {
		cfg.Dashboard.SignalsDays = watchSignalsDays
	}
	if watchInterval > 0 {
		cfg.Dashboard.RefreshInterval = watchInterval
	}

	reg := metrics.NewRegistry()
	cli := newClient(cfg, reg, log)
	st := store.New(cli, store.Settings{
		Ticker:      cfg.Dashboard.Ticker,
		ChartDays:   cfg.Dashboard.ChartDays,
		SignalsDays: cfg.Dashboard.SignalsDays,
		AutoLoad:    cfg.Dashboard.AutoLoad,
	}, reg, log)

	log.Info("starting watch",
		zap.String("ticker", cfg.Dashboard.Ticker),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Duration("interval", cfg.Dashboard.RefreshInterval),
	)

	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st.LoadTickers(ctx, false)
	st.LoadAll(ctx, true)
	render(st.Snapshot())

	ticker := time.NewTicker(cfg.Dashboard.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.RefreshData(ctx)
			render(st.Snapshot())
		case <-ctx.Done():
			log.Info("shutting down watch")
			return nil
		}
	}
}

// render prints one dashboard frame to stdout.
func render(snap store.Snapshot) {
	fmt.Printf("\n=== %s  (%s) ===\n", snap.SelectedTicker, time.Now().Format("15:04:05"))

	if snap.CandlesError != "" {
		fmt.Printf("candles: ERROR %s\n", snap.CandlesError)
	} else {
		fmt.Printf("candles: %d bars over %dd, current price %.2f\n",
			len(snap.Candles), snap.ChartDays, snap.CurrentPrice)
		if n := len(snap.Candles); n > 0 {
			last := snap.Candles[n-1]
			fmt.Printf("  last bar %s  O %.2f H %.2f L %.2f C %.2f V %.0f\n",
				last.At().Format("2006-01-02 15:04"),
				last.Open, last.High, last.Low, last.Close, last.Volume)
		}
	}

	if snap.SignalsError != "" {
		fmt.Printf("signals: ERROR %s\n", snap.SignalsError)
	} else {
		fmt.Printf("signals: %d over %dd\n", len(snap.Signals), snap.SignalsDays)
		for i, sig := range snap.Signals {
			if i == 5 {
				fmt.Printf("  ... %d more\n", len(snap.Signals)-i)
				break
			}
			fmt.Printf("  [%s] %s %s by %s\n",
				sig.Timestamp(), sig.Ticker(), sig.Direction(), sig.Author())
		}
	}

	if snap.TickersError != "" {
		fmt.Printf("tickers: ERROR %s\n", snap.TickersError)
	} else if len(snap.Tickers) > 0 {
		fmt.Printf("tickers: %d available\n", len(snap.Tickers))
	}
}
