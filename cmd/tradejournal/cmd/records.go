package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/records"
	"github.com/rustyeddy/tradejournal/trade"
)

var recordsCmd = &cobra.Command{
	Use:   "records <account-id>",
	Short: "Summarise an account's trades per day, week, month or year",
	Long: `Split an account's closed trades into time buckets and summarise each one,
latest first.

Examples:
  tradejournal records <account-id> --interval weekly --from 2022-08-01
  tradejournal records <account-id> -i monthly -n -1 --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: runRecords,
}

var recentCmd = &cobra.Command{
	Use:   "recent <account-id>",
	Short: "Show the account's most recent trade records",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecent,
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Combine the records of every account into one trade log",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

var (
	recordsQuery queryFlags
	recentQuery  queryFlags
	logQuery     queryFlags

	recordsFrom, recordsTo string
	logFrom, logTo         string
)

func init() {
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(logCmd)

	recordsQuery.register(recordsCmd, "org, json or csv")
	recordsCmd.Flags().StringVar(&recordsFrom, "from", "", "window start (default account open)")
	recordsCmd.Flags().StringVar(&recordsTo, "to", "", "window end (default now)")

	recentQuery.register(recentCmd, "org, json or csv")

	logQuery.register(logCmd, "org or json")
	logCmd.Flags().StringVar(&logFrom, "from", "", "window start (default earliest account open)")
	logCmd.Flags().StringVar(&logTo, "to", "", "window end (default now)")
}

func loadAccount(accountID string) (*trade.Account, error) {
	j, err := openStore()
	if err != nil {
		return nil, err
	}
	defer j.Close()

	acct, err := j.GetAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return acct, nil
}

// window resolves --from/--to, defaulting to [def, now].
func window(from, to string, def time.Time) (time.Time, time.Time, error) {
	start, err := parseTime(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseTime(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.IsZero() {
		start = def
	}
	if end.IsZero() {
		end = time.Now()
	}
	return start, end, nil
}

func writeReport(w io.Writer, format, title string, rep records.Report) error {
	switch format {
	case "json":
		return writeJSON(w, rep)
	case "csv":
		return journal.WriteRecordsCSV(w, rep.Records)
	case "org":
		_, err := fmt.Fprint(w, journal.FormatReportOrg(title, rep))
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

func runRecords(cmd *cobra.Command, args []string) error {
	iv, limit, err := recordsQuery.resolve(cmd)
	if err != nil {
		return err
	}
	acct, err := loadAccount(args[0])
	if err != nil {
		return err
	}
	start, end, err := window(recordsFrom, recordsTo, acct.OpenTime.Local())
	if err != nil {
		return err
	}

	rep, err := records.ForAccount(start, end, acct, iv, limit)
	if err != nil {
		return err
	}

	logger.Debug("records built",
		zap.String("account", acct.ID),
		zap.Stringer("interval", iv),
		zap.Int("records", len(rep.Records)),
	)
	title := fmt.Sprintf("%s %s records", acct.Name, iv)
	return writeReport(cmd.OutOrStdout(), recordsQuery.format, title, rep)
}

func runRecent(cmd *cobra.Command, args []string) error {
	iv, limit, err := recentQuery.resolve(cmd)
	if err != nil {
		return err
	}
	acct, err := loadAccount(args[0])
	if err != nil {
		return err
	}

	rep, err := records.Recent(acct, iv, limit)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s recent %s records", acct.Name, iv)
	return writeReport(cmd.OutOrStdout(), recentQuery.format, title, rep)
}

func runLog(cmd *cobra.Command, args []string) error {
	iv, limit, err := logQuery.resolve(cmd)
	if err != nil {
		return err
	}

	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	accts, err := j.ListAccounts()
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	earliest := time.Now()
	for _, a := range accts {
		if a.OpenTime.Before(earliest) {
			earliest = a.OpenTime.Local()
		}
	}
	start, end, err := window(logFrom, logTo, earliest)
	if err != nil {
		return err
	}

	tl, err := records.BuildLog(accts, start, end, iv, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch logQuery.format {
	case "json":
		return writeJSON(out, tl)
	case "org":
		if len(tl.Entries) == 0 {
			fmt.Fprintln(out, "No trades in this period.")
			return nil
		}
		for _, e := range tl.Entries {
			fmt.Fprintf(out, "* Trade log %s to %s\n", e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly))
			fmt.Fprintf(out, "- Accounts traded: %d\n- Trades: %d\n- Win rate: %d%%\n- Net P/L: %.2f\n- Net points: %.2f\n\n",
				e.Totals.AccountsTraded, e.Totals.Trades, e.Totals.WinPercentage, e.Totals.NetProfit, e.Totals.NetPoints)
			for _, ar := range e.Records {
				fmt.Fprint(out, "*"+journal.FormatReportOrg(ar.AccountName, ar.Report))
				fmt.Fprintln(out)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", logQuery.format)
}
