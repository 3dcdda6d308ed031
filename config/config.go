// Package config loads the journal's settings from a YAML or JSON file and
// lets TRADEJOURNAL_* environment variables override them.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradejournal/records"
	"github.com/rustyeddy/tradejournal/risk"
)

// EnvPrefix prefixes every environment override, e.g. TRADEJOURNAL_JOURNAL_DB_PATH.
const EnvPrefix = "TRADEJOURNAL"

// Config represents the complete tradejournal configuration
type Config struct {
	Journal   JournalConfig   `json:"journal" yaml:"journal" envconfig:"JOURNAL"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics" envconfig:"ANALYTICS"`
	Log       LogConfig       `json:"log" yaml:"log" envconfig:"LOG"`
}

// JournalConfig locates the trade store.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path" envconfig:"DB_PATH"`
}

// AnalyticsConfig holds the defaults used when computing records and risk figures
type AnalyticsConfig struct {
	RiskFreeRate       float64          `json:"risk_free_rate" yaml:"risk_free_rate" envconfig:"RISK_FREE_RATE"`
	DefaultRecordCount int              `json:"default_record_count" yaml:"default_record_count" envconfig:"DEFAULT_RECORD_COUNT"`
	Interval           records.Interval `json:"interval" yaml:"interval" envconfig:"INTERVAL"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level" envconfig:"LEVEL"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format" envconfig:"FORMAT"` // json or console
}

// LoadFromFile loads configuration from a file (YAML, or JSON), starting
// from the defaults so omitted keys keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", errors.Join(err, jerr))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file, YAML for .yaml/.yml and JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads envFile into the process environment when it exists and
// then overrides any field whose TRADEJOURNAL_* variable is set. An empty
// envFile means ".env".
func (c *Config) ApplyEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return c.Validate()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Analytics.RiskFreeRate < 0 || c.Analytics.RiskFreeRate >= 100 {
		return fmt.Errorf("analytics.risk_free_rate must be a percentage between 0 and 100")
	}
	if c.Analytics.DefaultRecordCount < records.Unbounded {
		return fmt.Errorf("analytics.default_record_count must be %d (unbounded) or more", records.Unbounded)
	}
	if _, err := c.Analytics.Interval.MarshalText(); err != nil {
		return fmt.Errorf("analytics.interval: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DBPath: "./tradejournal.db",
		},
		Analytics: AnalyticsConfig{
			RiskFreeRate:       risk.DefaultRiskFreeRate,
			DefaultRecordCount: records.DefaultRecordCount,
			Interval:           records.Daily,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
