package records

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/tradejournal/calc"
	"github.com/rustyeddy/tradejournal/trade"
)

// BalancePoint is the account balance at the end of one interval.
type BalancePoint struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Balance    float64   `json:"balance"`
	Delta      float64   `json:"delta"`      // net profit booked in the interval
	Normalized float64   `json:"normalized"` // delta as a percentage of the balance before it
}

// AccountShare is one account's part of a portfolio point.
type AccountShare struct {
	AccountID  string  `json:"accountId"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Delta      float64 `json:"delta"`
	Normalized int     `json:"normalized"` // share of the portfolio, whole percent
}

// PortfolioPoint sums the balances of every account on one date.
type PortfolioPoint struct {
	Date      time.Time      `json:"date"`
	Portfolio float64        `json:"portfolio"`
	Accounts  []AccountShare `json:"accounts"`
}

// BalanceHistory walks acct interval by interval from the day it opened
// through the day after now, starting from the initial balance and adding
// each interval's net profit. Monthly walks start on the first of the month.
func BalanceHistory(acct *trade.Account, iv Interval, now time.Time) ([]BalancePoint, error) {
	if acct == nil {
		return nil, fmt.Errorf("%w: account cannot be nil", trade.ErrValidation)
	}
	if acct.OpenTime.IsZero() {
		return nil, fmt.Errorf("%w: account %s has no open time", trade.ErrValidation, acct.ID)
	}
	if err := validateQuery(iv, Unbounded); err != nil {
		return nil, err
	}

	cursor := startOfDay(acct.OpenTime)
	if iv == Monthly {
		cursor = firstOfMonth(cursor)
	}
	stop := startOfDay(now.In(cursor.Location())).AddDate(0, 0, 1)

	running := acct.InitialBalance
	pts := []BalancePoint{}
	for cursor.Before(stop) {
		// start == end aggregates exactly the bucket at cursor
		rep, err := Aggregate(cursor, cursor, acct.Trades, iv, Unbounded)
		if err != nil {
			return nil, err
		}

		profit := rep.Totals.NetProfit
		pct := calc.Delta(profit, running)
		running = calc.Add(running, profit)

		next := iv.Add(cursor, 1)
		pts = append(pts, BalancePoint{
			Start:      cursor,
			End:        next,
			Balance:    running,
			Delta:      profit,
			Normalized: pct,
		})
		cursor = next
	}
	return pts, nil
}

// PortfolioHistory merges the monthly balance histories of accounts by date.
// Each account's share is its balance as a whole percentage of the portfolio
// on that date. Points are returned oldest first.
func PortfolioHistory(accounts []*trade.Account, now time.Time) ([]PortfolioPoint, error) {
	byDate := map[int64]*PortfolioPoint{}
	for _, acct := range accounts {
		hist, err := BalanceHistory(acct, Monthly, now)
		if err != nil {
			return nil, err
		}
		for _, h := range hist {
			key := h.Start.Unix()
			p, ok := byDate[key]
			if !ok {
				p = &PortfolioPoint{Date: h.Start, Accounts: []AccountShare{}}
				byDate[key] = p
			}
			p.Portfolio = calc.Add(p.Portfolio, h.Balance)
			p.Accounts = append(p.Accounts, AccountShare{
				AccountID: acct.ID,
				Name:      acct.Name,
				Value:     h.Balance,
				Delta:     h.Delta,
			})
		}
	}

	pts := make([]PortfolioPoint, 0, len(byDate))
	for _, p := range byDate {
		for i := range p.Accounts {
			p.Accounts[i].Normalized = calc.WholePercentage(p.Accounts[i].Value, p.Portfolio)
		}
		pts = append(pts, *p)
	}
	sort.Slice(pts, func(i, j int) bool {
		return pts[i].Date.Before(pts[j].Date)
	})
	return pts, nil
}
