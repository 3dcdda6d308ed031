package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record and query trades",
	Long: `Record trades in the journal and print them as Org-mode blocks.

Subcommands:
  add   - Record a new trade, or replace one by --id
  show  - Get details of a specific trade by ID
  day   - List an account's trades closed on a specific day

Examples:
  tradejournal trade add --account <id> --instrument NAS100 --open "2022-08-24 09:15" ...
  tradejournal trade show <trade-id>
  tradejournal trade day <account-id> 2022-08-24`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeDayCmd = &cobra.Command{
	Use:   "day <account-id> [YYYY-MM-DD]",
	Short: "List trades closed on a specific day (default today)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTradeDay,
}

var tradeFlags struct {
	id         string
	account    string
	instrument string
	open       string
	close      string
	openPrice  float64
	closePrice float64
	lots       float64
	profit     float64
	stopLoss   float64
	takeProfit float64
}

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeShowCmd)
	tradeCmd.AddCommand(tradeDayCmd)

	f := tradeAddCmd.Flags()
	f.StringVar(&tradeFlags.id, "id", "", "trade ID (generated when empty)")
	f.StringVarP(&tradeFlags.account, "account", "a", "", "account ID (required)")
	f.StringVar(&tradeFlags.instrument, "instrument", "", "instrument traded")
	f.StringVar(&tradeFlags.open, "open", "", "open time (required)")
	f.StringVar(&tradeFlags.close, "close", "", "close time, empty while the trade is open")
	f.Float64Var(&tradeFlags.openPrice, "open-price", 0, "open price")
	f.Float64Var(&tradeFlags.closePrice, "close-price", 0, "close price")
	f.Float64Var(&tradeFlags.lots, "lots", 0, "lot size")
	f.Float64Var(&tradeFlags.profit, "profit", 0, "net profit")
	f.Float64Var(&tradeFlags.stopLoss, "sl", 0, "stop loss price")
	f.Float64Var(&tradeFlags.takeProfit, "tp", 0, "take profit price")
	_ = tradeAddCmd.MarkFlagRequired("account")
	_ = tradeAddCmd.MarkFlagRequired("open")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	open, err := parseTime(tradeFlags.open)
	if err != nil {
		return err
	}
	closeT, err := parseTime(tradeFlags.close)
	if err != nil {
		return err
	}

	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	id, err := j.RecordTrade(trade.Trade{
		ID:         tradeFlags.id,
		AccountID:  tradeFlags.account,
		Instrument: tradeFlags.instrument,
		OpenTime:   open,
		CloseTime:  closeT,
		OpenPrice:  tradeFlags.openPrice,
		ClosePrice: tradeFlags.closePrice,
		LotSize:    tradeFlags.lots,
		NetProfit:  tradeFlags.profit,
		StopLoss:   tradeFlags.stopLoss,
		TakeProfit: tradeFlags.takeProfit,
	})
	if err != nil {
		return fmt.Errorf("record trade: %w", err)
	}

	logger.Info("trade recorded", zap.String("trade", id), zap.String("account", tradeFlags.account))
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runTradeDay(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	loc := time.Local
	day := time.Now().In(loc).Format(time.DateOnly)
	if len(args) == 2 {
		day = args[1]
	}
	start, end, err := dayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListTradesClosedBetween(args[0], start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}
