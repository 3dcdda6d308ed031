package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/records"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "./tradejournal.db", cfg.Journal.DBPath)
	assert.Equal(t, 3.26, cfg.Analytics.RiskFreeRate)
	assert.Equal(t, 10, cfg.Analytics.DefaultRecordCount)
	assert.Equal(t, records.Daily, cfg.Analytics.Interval)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	with := func(edit func(*Config)) *Config {
		c := Default()
		edit(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name:    "unbounded record count",
			config:  with(func(c *Config) { c.Analytics.DefaultRecordCount = records.Unbounded }),
			wantErr: false,
		},
		{
			name:    "missing db path",
			config:  with(func(c *Config) { c.Journal.DBPath = "" }),
			wantErr: true,
			errMsg:  "journal.db_path is required",
		},
		{
			name:    "negative risk free rate",
			config:  with(func(c *Config) { c.Analytics.RiskFreeRate = -1 }),
			wantErr: true,
			errMsg:  "analytics.risk_free_rate",
		},
		{
			name:    "record count below unbounded",
			config:  with(func(c *Config) { c.Analytics.DefaultRecordCount = -2 }),
			wantErr: true,
			errMsg:  "analytics.default_record_count",
		},
		{
			name:    "no interval",
			config:  with(func(c *Config) { c.Analytics.Interval = 0 }),
			wantErr: true,
			errMsg:  "analytics.interval",
		},
		{
			name:    "bad log level",
			config:  with(func(c *Config) { c.Log.Level = "verbose" }),
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "bad log format",
			config:  with(func(c *Config) { c.Log.Format = "xml" }),
			wantErr: true,
			errMsg:  "log.format must be 'json' or 'console'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"yml format", ".yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Journal.DBPath = "/var/lib/journal.db"
			cfg.Analytics.Interval = records.Weekly
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestSaveWritesIntervalName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, Default().SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "interval: daily")
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  db_path: other.db\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Journal.DBPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, records.Daily, cfg.Analytics.Interval)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analytics:\n  interval: hourly\n"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TRADEJOURNAL_JOURNAL_DB_PATH", "/tmp/env.db")
	t.Setenv("TRADEJOURNAL_ANALYTICS_INTERVAL", "monthly")
	t.Setenv("TRADEJOURNAL_ANALYTICS_RISK_FREE_RATE", "4.5")
	t.Setenv("TRADEJOURNAL_LOG_LEVEL", "debug")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))

	assert.Equal(t, "/tmp/env.db", cfg.Journal.DBPath)
	assert.Equal(t, records.Monthly, cfg.Analytics.Interval)
	assert.Equal(t, 4.5, cfg.Analytics.RiskFreeRate)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestApplyEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("TRADEJOURNAL_LOG_FORMAT=json\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("TRADEJOURNAL_LOG_FORMAT") })

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("TRADEJOURNAL_LOG_FORMAT", "xml")

	cfg := Default()
	assert.Error(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))
}
