package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Backend   BackendConfig   `mapstructure:"backend"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// BackendConfig holds the dashboard backend connection settings.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DashboardConfig holds the session defaults for the watch view.
type DashboardConfig struct {
	Ticker          string        `mapstructure:"ticker"`
	ChartDays       int           `mapstructure:"chart_days"`
	SignalsDays     int           `mapstructure:"signals_days"`
	AutoLoad        bool          `mapstructure:"auto_load"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 15 * time.Second,
		},
		Dashboard: DashboardConfig{
			Ticker:          "SBER",
			ChartDays:       30,
			SignalsDays:     7,
			AutoLoad:        true,
			RefreshInterval: 30 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Backend validation
	if c.Backend.BaseURL == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("backend base_url is required"))
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backend base_url must be an absolute URL, got %q", c.Backend.BaseURL))
	}
	if c.Backend.Timeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backend timeout cannot be negative, got %s", c.Backend.Timeout))
	}

	// Dashboard validation
	if c.Dashboard.ChartDays < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("chart_days must be at least 1, got %d", c.Dashboard.ChartDays))
	}
	if c.Dashboard.SignalsDays < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("signals_days must be at least 1, got %d", c.Dashboard.SignalsDays))
	}
	if c.Dashboard.RefreshInterval < time.Second {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("refresh_interval must be at least 1s, got %s", c.Dashboard.RefreshInterval))
	}

	// Metrics validation
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("metrics addr required when metrics are enabled"))
	}

	return nil
}
