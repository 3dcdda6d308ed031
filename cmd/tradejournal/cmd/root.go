package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logging"
	"github.com/rustyeddy/tradejournal/journal"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A trading journal with per-period records and risk analytics",
	Long: `Tradejournal keeps accounts and trades in a SQLite journal and reports on them.

It provides tools for:
  - Daily, weekly, monthly and yearly trade records
  - Equity curves and drawdown
  - Sharpe ratio, profit factor and risk to reward
  - A combined trade log across accounts
  - Org-mode and CSV exports

Settings come from --config (YAML or JSON), then TRADEJOURNAL_* environment
variables, then flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg    = config.Default()
	logger = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

// setup resolves the configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
		c = loaded
	}
	if err := c.ApplyEnv(""); err != nil {
		return err
	}
	if dbPath != "" {
		c.Journal.DBPath = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l, err := logging.New(c.Log.Level, c.Log.Format)
	if err != nil {
		return err
	}

	cfg, logger = c, l
	logger.Debug("configured",
		zap.String("db", cfg.Journal.DBPath),
		zap.Stringer("interval", cfg.Analytics.Interval),
		zap.Float64("risk_free_rate", cfg.Analytics.RiskFreeRate),
	)
	return nil
}

func openStore() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j.WithLogger(logger), nil
}
