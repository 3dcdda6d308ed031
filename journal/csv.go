package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/tradejournal/equity"
	"github.com/rustyeddy/tradejournal/records"
)

var recordHeader = []string{
	"start", "end", "interval", "trades", "wins", "losses", "win_pct",
	"net_profit", "points", "lowest_point", "largest_win", "largest_loss",
	"profitability", "retention",
}

var equityHeader = []string{"date", "amount", "points", "cum_amount", "cum_points"}

var balanceHeader = []string{"start", "end", "balance", "delta", "normalized"}

// WriteRecordsCSV writes one row per record after a header row.
func WriteRecordsCSV(w io.Writer, recs []records.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return err
	}

	for _, r := range recs {
		err := cw.Write([]string{
			r.Start.Format(time.RFC3339),
			r.End.Format(time.RFC3339),
			r.Interval.String(),
			strconv.Itoa(r.Trades),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			strconv.Itoa(r.WinPercentage),
			f(r.NetProfit),
			f(r.Points),
			f(r.LowestPoint),
			f(r.LargestWin),
			f(r.LargestLoss),
			f(r.Profitability),
			strconv.Itoa(r.Retention),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteEquityCSV writes an account equity curve, point 0 included.
func WriteEquityCSV(w io.Writer, pts []equity.AccountPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(equityHeader); err != nil {
		return err
	}

	for _, p := range pts {
		err := cw.Write([]string{
			p.Date.Format(time.RFC3339),
			f(p.Amount),
			f(p.Points),
			f(p.CumAmount),
			f(p.CumPoints),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBalanceCSV writes an account balance history, one row per interval.
func WriteBalanceCSV(w io.Writer, pts []records.BalancePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(balanceHeader); err != nil {
		return err
	}

	for _, p := range pts {
		err := cw.Write([]string{
			p.Start.Format(time.RFC3339),
			p.End.Format(time.RFC3339),
			f(p.Balance),
			f(p.Delta),
			f(p.Normalized),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
