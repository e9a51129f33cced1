package main

import (
	"fmt"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/config"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/logger"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/normalize"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	marketTicker string
	marketDays   int
)

var candlesCmd = &cobra.Command{
	Use:   "candles",
	Short: "Fetch and print normalized candles",
	RunE:  runCandles,
}

var candlesCoverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Check backend candle coverage",
	RunE:  runDiagnostic,
}

var candlesReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Force the backend to re-fetch candles",
	RunE:  runDiagnostic,
}

var candlesLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Trigger a one-off backend candle load",
	RunE:  runDiagnostic,
}

var candlesBulkLoadCmd = &cobra.Command{
	Use:   "bulk-load",
	Short: "Trigger a backend candle load for every ticker",
	RunE:  runDiagnostic,
}

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Fetch and print signals",
	RunE:  runSignals,
}

var tickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "List available tickers",
	RunE:  runTickers,
}

func init() {
	for _, cmd := range []*cobra.Command{candlesCmd, signalsCmd} {
		cmd.PersistentFlags().StringVarP(&marketTicker, "ticker", "t", "", "ticker (default from config)")
		cmd.PersistentFlags().IntVar(&marketDays, "days", 0, "period in days (default from config)")
	}

	candlesCmd.AddCommand(candlesCoverageCmd)
	candlesCmd.AddCommand(candlesReloadCmd)
	candlesCmd.AddCommand(candlesLoadCmd)
	candlesCmd.AddCommand(candlesBulkLoadCmd)

	rootCmd.AddCommand(candlesCmd)
	rootCmd.AddCommand(signalsCmd)
	rootCmd.AddCommand(tickersCmd)
}

// marketSettings resolves ticker/period from flags over config.
func marketSettings(cfg *config.Config) store.Settings {
	s := store.Settings{
		Ticker:      cfg.Dashboard.Ticker,
		ChartDays:   cfg.Dashboard.ChartDays,
		SignalsDays: cfg.Dashboard.SignalsDays,
	}
	if marketTicker != "" {
		s.Ticker = marketTicker
	}
	if marketDays > 0 {
		s.ChartDays = marketDays
		s.SignalsDays = marketDays
	}
	return s
}

func runCandles(cmd *cobra.Command, args []string) error {
	log := logger.Must("", debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	cli := newClient(cfg, nil, log)
	settings := marketSettings(cfg)

	raw, err := cli.FetchCandles(cmd.Context(), settings.Ticker, settings.ChartDays)
	if err != nil {
		return err
	}

	candles := normalize.Candles(raw)
	fmt.Printf("%s: %d of %d records valid, current price %.2f\n",
		settings.Ticker, len(candles), len(raw), normalize.LastClose(raw))
	for _, c := range candles {
		fmt.Printf("%s  O %.2f H %.2f L %.2f C %.2f V %.0f\n",
			c.At().Format("2006-01-02 15:04"), c.Open, c.High, c.Low, c.Close, c.Volume)
	}
	return nil
}

func runSignals(cmd *cobra.Command, args []string) error {
	log := logger.Must("", debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	cli := newClient(cfg, nil, log)
	settings := marketSettings(cfg)

	signals, err := cli.FetchSignals(cmd.Context(), settings.Ticker, settings.SignalsDays)
	if err != nil {
		return err
	}

	for _, sig := range signals {
		fmt.Printf("[%s] %s %s by %s\n", sig.Timestamp(), sig.Ticker(), sig.Direction(), sig.Author())
	}
	fmt.Printf("%d signals\n", len(signals))
	return nil
}

func runTickers(cmd *cobra.Command, args []string) error {
	log := logger.Must("", debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	cli := newClient(cfg, nil, log)

	tickers, err := cli.FetchTickers(cmd.Context())
	if err != nil {
		return err
	}
	for _, t := range tickers {
		fmt.Println(t)
	}
	return nil
}

// runDiagnostic routes the candles subcommands through the store so the
// displayed state is refreshed no matter how the backend call ends.
func runDiagnostic(cmd *cobra.Command, args []string) error {
	log := logger.Must("", debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	cli := newClient(cfg, nil, log)
	settings := marketSettings(cfg)
	st := store.New(cli, settings, nil, log)

	ctx := cmd.Context()
	var res store.OpResult

	switch cmd.Name() {
	case "coverage":
		var report map[string]any
		report, res = st.Coverage(ctx)
		for k, v := range report {
			fmt.Printf("%s: %v\n", k, v)
		}
	case "reload":
		res = st.ForceReload(ctx)
	case "load":
		res = st.ManualLoad(ctx)
	case "bulk-load":
		res = st.BulkLoad(ctx)
	}

	if !res.OK {
		log.Warn("diagnostic fell back to refresh", zap.Error(res.Err))
		fmt.Printf("operation failed (%v); displayed data refreshed instead\n", res.Err)
		return nil
	}

	snap := st.Snapshot()
	fmt.Printf("ok; %d candles, %d signals after refresh\n", len(snap.Candles), len(snap.Signals))
	return nil
}
