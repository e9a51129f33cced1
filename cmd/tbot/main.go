package main

import (
	"fmt"
	"os"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/client"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/config"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "tbot",
	Short: "tbot - trading-signal dashboard client",
	Long: `tbot is a terminal client for the trading-signal dashboard backend.
It watches candles and signals for a selected ticker and manages the
regex patterns used to parse signal text.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// loadConfig loads the config file or falls back to defaults, then
// validates either way.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// newClient builds the backend client shared by all commands.
func newClient(cfg *config.Config, reg *metrics.Registry, log *zap.Logger) *client.Client {
	return client.New(client.Options{
		BaseURL: cfg.Backend.BaseURL,
		APIKey:  cfg.Backend.APIKey,
		Timeout: cfg.Backend.Timeout,
		Metrics: reg,
		Logger:  log,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
