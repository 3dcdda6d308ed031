package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/equity"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/records"
	"github.com/rustyeddy/tradejournal/risk"
)

var statsCmd = &cobra.Command{
	Use:   "stats <account-id>",
	Short: "Show an account's statistics and insights",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var equityCmd = &cobra.Command{
	Use:   "equity <account-id>",
	Short: "Print an account's equity curve",
	Args:  cobra.ExactArgs(1),
	RunE:  runEquity,
}

var controlsCmd = &cobra.Command{
	Use:   "controls <account-id>",
	Short: "Count an account's closed trades per year and month",
	Args:  cobra.ExactArgs(1),
	RunE:  runControls,
}

var balanceCmd = &cobra.Command{
	Use:   "balance <account-id>",
	Short: "Print an account's balance at the end of every interval since it opened",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalance,
}

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Merge the monthly balances of every account",
	Args:  cobra.NoArgs,
	RunE:  runPortfolio,
}

var (
	statsFormat  string
	equityFormat string

	balanceInterval string
	balanceFormat   string
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(equityCmd)
	rootCmd.AddCommand(controlsCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(portfolioCmd)

	statsCmd.Flags().StringVar(&statsFormat, "format", "org", "output format: org or json")
	equityCmd.Flags().StringVar(&equityFormat, "format", "csv", "output format: csv or json")
	balanceCmd.Flags().StringVarP(&balanceInterval, "interval", "i", "", "daily, weekly, monthly or yearly (default from config)")
	balanceCmd.Flags().StringVar(&balanceFormat, "format", "csv", "output format: csv or json")
}

type statsOutput struct {
	Statistics  risk.Statistics `json:"statistics"`
	Insights    risk.Insights   `json:"insights"`
	Consistency int             `json:"consistencyScore"`
}

func runStats(cmd *cobra.Command, args []string) error {
	acct, err := loadAccount(args[0])
	if err != nil {
		return err
	}

	calc := risk.New(cfg.Analytics.RiskFreeRate)
	stats, err := calc.Statistics(acct)
	if err != nil {
		return err
	}
	ins, err := calc.Insights(acct)
	if err != nil {
		return err
	}
	score, err := risk.ConsistencyScore(acct)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch statsFormat {
	case "json":
		return writeJSON(out, statsOutput{Statistics: stats, Insights: ins, Consistency: score})
	case "org":
		return journal.WriteAccountOrg(out, journal.AccountOrg{
			Account:     acct,
			Stats:       stats,
			Insights:    ins,
			Consistency: score,
			Created:     time.Now(),
		})
	}
	return fmt.Errorf("unknown format %q", statsFormat)
}

func runEquity(cmd *cobra.Command, args []string) error {
	acct, err := loadAccount(args[0])
	if err != nil {
		return err
	}

	pts, err := equity.ForAccount(acct)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch equityFormat {
	case "json":
		return writeJSON(out, pts)
	case "csv":
		return journal.WriteEquityCSV(out, pts)
	}
	return fmt.Errorf("unknown format %q", equityFormat)
}

func runControls(cmd *cobra.Command, args []string) error {
	acct, err := loadAccount(args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), records.Index(acct.Trades))
}

func runBalance(cmd *cobra.Command, args []string) error {
	iv := cfg.Analytics.Interval
	if balanceInterval != "" {
		parsed, err := records.ParseInterval(balanceInterval)
		if err != nil {
			return err
		}
		iv = parsed
	}

	acct, err := loadAccount(args[0])
	if err != nil {
		return err
	}

	pts, err := records.BalanceHistory(acct, iv, time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch balanceFormat {
	case "json":
		return writeJSON(out, pts)
	case "csv":
		return journal.WriteBalanceCSV(out, pts)
	}
	return fmt.Errorf("unknown format %q", balanceFormat)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	accts, err := j.ListAccounts()
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	pts, err := records.PortfolioHistory(accts, time.Now())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), pts)
}
