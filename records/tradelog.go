package records

import (
	"time"

	"github.com/rustyeddy/tradejournal/calc"
	"github.com/rustyeddy/tradejournal/trade"
)

// AccountReport is one account's share of a trade log entry.
type AccountReport struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	Report        Report `json:"report"`
}

type LogTotals struct {
	AccountsTraded int     `json:"accountsTraded"`
	Trades         int     `json:"trades"`
	WinPercentage  int     `json:"winPercentage"`
	NetProfit      float64 `json:"netProfit"`
	NetPoints      float64 `json:"netPoints"`
}

// LogEntry rolls the reports of several accounts into one period.
type LogEntry struct {
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Records []AccountReport `json:"records"`
	Totals  LogTotals       `json:"totals"`
}

type TradeLog struct {
	Entries []LogEntry `json:"entries"`
}

// BuildLog aggregates every account over the same period and folds the
// results into a single entry. When none of the accounts traded in the
// period the log has no entries.
func BuildLog(accounts []*trade.Account, start, end time.Time, iv Interval, limit int) (TradeLog, error) {
	if err := validateRange(start, end); err != nil {
		return TradeLog{}, err
	}
	if err := validateQuery(iv, limit); err != nil {
		return TradeLog{}, err
	}

	log := TradeLog{Entries: []LogEntry{}}
	if len(accounts) == 0 {
		return log, nil
	}

	reports := make([]AccountReport, 0, len(accounts))
	for _, acct := range accounts {
		rep, err := ForAccount(start, end, acct, iv, limit)
		if err != nil {
			return TradeLog{}, err
		}
		reports = append(reports, AccountReport{
			AccountID:     acct.ID,
			AccountNumber: acct.Number,
			AccountName:   acct.Name,
			Report:        rep,
		})
	}

	var trades, wins int
	profits := make([]float64, 0, len(reports))
	points := make([]float64, 0, len(reports))
	for _, r := range reports {
		trades += r.Report.Totals.Trades
		wins += r.Report.Totals.Wins
		profits = append(profits, r.Report.Totals.NetProfit)
		points = append(points, r.Report.Totals.NetPoints)
	}
	if trades == 0 {
		return log, nil
	}

	entry := LogEntry{
		Records: reports,
		Totals: LogTotals{
			AccountsTraded: len(accounts),
			Trades:         trades,
			WinPercentage:  calc.WholePercentage(float64(wins), float64(trades)),
			NetProfit:      calc.Sum(profits...),
			NetPoints:      calc.Sum(points...),
		},
	}
	entry.Start, entry.End = span(reports)

	log.Entries = append(log.Entries, entry)
	return log, nil
}

// span is the earliest bucket start and latest bucket end over all reports.
func span(reports []AccountReport) (start, end time.Time) {
	for _, r := range reports {
		for _, rec := range r.Report.Records {
			if start.IsZero() || rec.Start.Before(start) {
				start = rec.Start
			}
			if end.IsZero() || rec.End.After(end) {
				end = rec.End
			}
		}
	}
	return start, end
}
