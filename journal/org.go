package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/records"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/rustyeddy/tradejournal/trade"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer; the narrative headings are left
// for the trader to fill in. IDs issued by the journal also show when they
// were issued.
func FormatTradeOrg(t trade.Trade) string {
	heading := fmt.Sprintf("** Trade: %s (%s)", t.Instrument, shortID(t.ID))
	open := t.OpenTime.UTC().Format(time.RFC3339)
	close := "open"
	if t.IsClosed() {
		close = t.CloseTime.UTC().Format(time.RFC3339)
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	if issued, err := id.Time(t.ID); err == nil {
		b.WriteString(fmt.Sprintf(":ID_ISSUED: %s\n", issued.Format(time.RFC3339)))
	}
	b.WriteString(fmt.Sprintf(":ACCOUNT_ID: %s\n", t.AccountID))
	b.WriteString(fmt.Sprintf(":INSTRUMENT: %s\n", t.Instrument))
	b.WriteString(fmt.Sprintf(":LOT_SIZE: %.2f\n", t.LotSize))
	b.WriteString(fmt.Sprintf(":OPEN_PRICE: %.5f\n", t.OpenPrice))
	b.WriteString(fmt.Sprintf(":CLOSE_PRICE: %.5f\n", t.ClosePrice))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %.5f\n", t.StopLoss))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.5f\n", t.TakeProfit))
	b.WriteString(fmt.Sprintf(":OPEN_TIME: %s\n", open))
	b.WriteString(fmt.Sprintf(":CLOSE_TIME: %s\n", close))
	b.WriteString(fmt.Sprintf(":NET_PROFIT: %.2f\n", t.NetProfit))
	b.WriteString(fmt.Sprintf(":POINTS: %.2f\n", t.SignedPoints()))
	b.WriteString(fmt.Sprintf(":PLANNED_RISK: %.2f\n", risk.PlannedRisk(t)))
	b.WriteString(fmt.Sprintf(":PLANNED_RR: %.2f\n", risk.PlannedRR(t)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []trade.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// FormatReportOrg renders a report as an Org table, one row per record,
// followed by a totals row when the report has totals.
func FormatReportOrg(title string, rep records.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("* %s\n", title))
	b.WriteString("| Start | End | Trades | Won | Lost | Win % | Net P/L | Points | Lowest | Retention |\n")
	b.WriteString("|-------+-----+--------+-----+------+-------+---------+--------+--------+-----------|\n")
	for _, r := range rep.Records {
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d | %d | %.2f | %.2f | %.2f | %d |\n",
			r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly),
			r.Trades, r.Wins, r.Losses, r.WinPercentage,
			r.NetProfit, r.Points, r.LowestPoint, r.Retention))
	}
	if tot := rep.Totals; tot != nil {
		b.WriteString("|-------+-----+--------+-----+------+-------+---------+--------+--------+-----------|\n")
		b.WriteString(fmt.Sprintf("| Total (%d) | | %d | %d | %d | %d | %.2f | %.2f | | |\n",
			tot.Count, tot.Trades, tot.Wins, tot.Losses, tot.WinPercentage, tot.NetProfit, tot.NetPoints))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
