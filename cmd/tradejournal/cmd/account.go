package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/trade"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Add and list trading accounts",
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an account to the journal",
	Args:  cobra.NoArgs,
	RunE:  runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the accounts in the journal",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountFlags struct {
	id      string
	name    string
	number  string
	balance float64
	opened  string
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)

	f := accountAddCmd.Flags()
	f.StringVar(&accountFlags.id, "id", "", "account ID (generated when empty)")
	f.StringVar(&accountFlags.name, "name", "", "account name (required)")
	f.StringVar(&accountFlags.number, "number", "", "broker account number")
	f.Float64Var(&accountFlags.balance, "balance", 0, "starting balance")
	f.StringVar(&accountFlags.opened, "opened", "", "date the account opened (default today)")
	_ = accountAddCmd.MarkFlagRequired("name")
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	opened, err := parseTime(accountFlags.opened)
	if err != nil {
		return err
	}
	if opened.IsZero() {
		now := time.Now()
		opened = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	}

	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	id, err := j.RecordAccount(trade.Account{
		ID:             accountFlags.id,
		Name:           accountFlags.name,
		Number:         accountFlags.number,
		Balance:        accountFlags.balance,
		InitialBalance: accountFlags.balance,
		OpenTime:       opened,
	})
	if err != nil {
		return fmt.Errorf("add account: %w", err)
	}

	logger.Info("account added", zap.String("account", id))
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	accts, err := j.ListAccounts()
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tNUMBER\tBALANCE\tTRADES\tLAST TRADED")
	for _, a := range accts {
		last := "-"
		if a.HasTraded() {
			last = a.LastTraded.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%d\t%s\n", a.ID, a.Name, a.Number, a.Balance, len(a.Trades), last)
	}
	return tw.Flush()
}
