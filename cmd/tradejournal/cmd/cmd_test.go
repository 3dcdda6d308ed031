package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/records"
)

// resetFlags puts every flag in the tree back to its default so one Execute
// does not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func seed(t *testing.T) string {
	t.Helper()

	db := filepath.Join(t.TempDir(), "journal.db")

	out, err := run(t, "--db", db, "account", "add", "--id", "acc-1", "--name", "Main", "--number", "1001", "--balance", "1000", "--opened", "2022-08-01")
	require.NoError(t, err)
	assert.Equal(t, "acc-1\n", out)

	_, err = run(t, "--db", db, "trade", "add", "--id", "A", "-a", "acc-1", "--instrument", "NAS100",
		"--open", "2022-08-24T09:15:00Z", "--close", "2022-08-24T10:02:00Z",
		"--open-price", "13083.41", "--close-price", "13098.67", "--lots", "1", "--profit", "14.85",
		"--sl", "13070", "--tp", "13110")
	require.NoError(t, err)

	_, err = run(t, "--db", db, "trade", "add", "--id", "B", "-a", "acc-1", "--instrument", "NAS100",
		"--open", "2022-08-25T13:40:00Z", "--close", "2022-08-25T14:11:00Z",
		"--open-price", "13160.09", "--close-price", "13156.12", "--lots", "2", "--profit", "-4.5",
		"--sl", "13175", "--tp", "13130")
	require.NoError(t, err)

	return db
}

func TestTradeCommands(t *testing.T) {
	db := seed(t)

	out, err := run(t, "--db", db, "trade", "show", "A")
	require.NoError(t, err)
	assert.Contains(t, out, "** Trade: NAS100 (A)")
	assert.Contains(t, out, ":NET_PROFIT: 14.85")

	out, err = run(t, "--db", db, "trade", "day", "acc-1", "2022-08-25")
	require.NoError(t, err)
	assert.Contains(t, out, ":TRADE_ID: B")
	assert.NotContains(t, out, ":TRADE_ID: A")

	_, err = run(t, "--db", db, "trade", "show", "missing")
	assert.True(t, errors.Is(err, journal.ErrNotFound))

	out, err = run(t, "--db", db, "account", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "acc-1")
	assert.Contains(t, out, "1010.35")
}

func TestRecordsCommand(t *testing.T) {
	db := seed(t)

	out, err := run(t, "--db", db, "records", "acc-1", "--interval", "weekly",
		"--from", "2022-08-20T00:00:00Z", "--to", "2022-08-25T00:00:00Z", "--format", "json")
	require.NoError(t, err)

	var rep records.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Records, 1)
	assert.Equal(t, 2, rep.Records[0].Trades)
	assert.Equal(t, 10.35, rep.Records[0].LowestPoint)
	assert.Equal(t, 11.29, rep.Records[0].Points)
	assert.Equal(t, records.Weekly, rep.Records[0].Interval)

	out, err = run(t, "--db", db, "records", "acc-1", "--from", "2022-08-20T00:00:00Z", "--to", "2022-08-25T00:00:00Z")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "* Main daily records\n"))

	_, err = run(t, "--db", db, "records", "acc-1", "--interval", "hourly")
	assert.Error(t, err)
}

func TestRecentCommand(t *testing.T) {
	db := seed(t)

	out, err := run(t, "--db", db, "recent", "acc-1", "--limit=-1", "--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2022-08-25T00:00:00Z", rows[1][0])
	assert.Equal(t, "2022-08-24T00:00:00Z", rows[2][0])
}

func TestLogCommand(t *testing.T) {
	db := seed(t)

	out, err := run(t, "--db", db, "log", "--from", "2022-08-01T00:00:00Z", "--to", "2022-09-01T00:00:00Z", "-i", "monthly", "--format", "json")
	require.NoError(t, err)

	var tl records.TradeLog
	require.NoError(t, json.Unmarshal([]byte(out), &tl))
	require.Len(t, tl.Entries, 1)
	assert.Equal(t, 2, tl.Entries[0].Totals.Trades)
	assert.Equal(t, 1, tl.Entries[0].Totals.AccountsTraded)
	assert.Equal(t, 10.35, tl.Entries[0].Totals.NetProfit)
}

func TestAnalyticsCommands(t *testing.T) {
	db := seed(t)

	out, err := run(t, "--db", db, "stats", "acc-1", "--format", "json")
	require.NoError(t, err)

	var so statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &so))
	assert.Equal(t, 2, so.Statistics.NumberOfTrades)
	assert.Equal(t, 3.3, so.Statistics.ProfitFactor)
	assert.InDelta(t, 1010.35, so.Statistics.Balance, 1e-9)
	assert.Equal(t, 49, so.Consistency)
	assert.Equal(t, 2, so.Insights.TradingDays)

	out, err = run(t, "--db", db, "stats", "acc-1")
	require.NoError(t, err)
	assert.Contains(t, out, "* ACCOUNT: Main (1001)")

	out, err = run(t, "--db", db, "equity", "acc-1")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "1000.00", rows[1][3])
	assert.Equal(t, "1014.85", rows[2][3])
	assert.Equal(t, "1010.35", rows[3][3])

	out, err = run(t, "--db", db, "controls", "acc-1")
	require.NoError(t, err)
	assert.Contains(t, out, `"AUGUST"`)
}

func TestBalanceCommands(t *testing.T) {
	db := seed(t)

	out, err := run(t, "--db", db, "balance", "acc-1", "-i", "monthly")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, "start", rows[0][0])
	var august []string
	for _, r := range rows[1:] {
		if r[3] != "0.00" {
			august = r
			break
		}
	}
	require.NotNil(t, august)
	assert.Equal(t, []string{"1010.35", "10.35", "1.04"}, august[2:])
	assert.Equal(t, "1010.35", rows[len(rows)-1][2])

	out, err = run(t, "--db", db, "portfolio")
	require.NoError(t, err)
	var pts []records.PortfolioPoint
	require.NoError(t, json.Unmarshal([]byte(out), &pts))
	require.NotEmpty(t, pts)
	last := pts[len(pts)-1]
	assert.InDelta(t, 1010.35, last.Portfolio, 1e-9)
	require.Len(t, last.Accounts, 1)
	assert.Equal(t, "acc-1", last.Accounts[0].AccountID)
	assert.Equal(t, 100, last.Accounts[0].Normalized)

	_, err = run(t, "--db", db, "balance", "acc-1", "--format", "xml")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tj.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "daily")

	out, err = run(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Equal(t, "tradejournal version 1.0.0\n", out)

	_, err = run(t, "--log-level", "loud", "version")
	assert.Error(t, err)
}
