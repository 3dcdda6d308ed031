// Package equity builds cumulative profit and points curves from a trade list.
//
// Every curve starts with a synthetic point 0 that carries zero deltas and the
// baseline cumulative values, so a chart always has an origin to draw from.
package equity

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradejournal/calc"
	"github.com/rustyeddy/tradejournal/trade"
)

// Point is one step of a trade record's curve, keyed by ordinal.
type Point struct {
	Count     int     `json:"count"`
	Amount    float64 `json:"amount"`
	Points    float64 `json:"points"`
	CumAmount float64 `json:"cumAmount"`
	CumPoints float64 `json:"cumPoints"`
}

// AccountPoint is one step of an account's equity curve, keyed by close time.
type AccountPoint struct {
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	Points    float64   `json:"points"`
	CumAmount float64   `json:"cumAmount"`
	CumPoints float64   `json:"cumPoints"`
}

// CumulativeTrade is the running profit after each closed trade. It is the
// input to drawdown detection.
type CumulativeTrade struct {
	CloseTime    time.Time `json:"closeTime"`
	Count        int       `json:"count"`
	SingleProfit float64   `json:"singleProfit"`
	SinglePoints float64   `json:"singlePoints"`
	NetProfit    float64   `json:"netProfit"`
	NetPoints    float64   `json:"netPoints"`
}

// ForRecord builds the curve for the trades of one time bucket, in the order
// given. The baseline is zero. No trades means no points.
func ForRecord(trades []trade.Trade) []Point {
	if len(trades) == 0 {
		return []Point{}
	}

	points := make([]Point, 0, len(trades)+1)
	points = append(points, Point{})

	var cumAmount, cumPoints float64
	for i, t := range trades {
		p := t.SignedPoints()
		cumAmount = calc.Add(cumAmount, t.NetProfit)
		cumPoints = calc.Add(cumPoints, p)

		points = append(points, Point{
			Count:     i + 1,
			Amount:    t.NetProfit,
			Points:    p,
			CumAmount: cumAmount,
			CumPoints: cumPoints,
		})
	}
	return points
}

// ForAccount builds the account's equity curve over its closed trades. The
// baseline is the balance before any of the account's trades; an account
// with nothing closed yields a single point holding its balance.
func ForAccount(acct *trade.Account) ([]AccountPoint, error) {
	if acct == nil {
		return nil, fmt.Errorf("%w: account cannot be nil", trade.ErrValidation)
	}

	closed := trade.Closed(acct.Trades)
	if len(closed) == 0 {
		return []AccountPoint{{
			Date:      acct.OpenTime,
			Amount:    acct.Balance,
			CumAmount: acct.Balance,
		}}, nil
	}

	baseline := calc.Subtract(acct.Balance, acct.TotalProfit())

	points := make([]AccountPoint, 0, len(closed)+1)
	points = append(points, AccountPoint{
		Date:      closed[0].CloseTime.AddDate(0, 0, -1),
		CumAmount: baseline,
	})

	cumAmount, cumPoints := baseline, 0.0
	for _, t := range closed {
		p := t.SignedPoints()
		cumAmount = calc.Add(cumAmount, t.NetProfit)
		cumPoints = calc.Add(cumPoints, p)

		points = append(points, AccountPoint{
			Date:      t.CloseTime,
			Amount:    t.NetProfit,
			Points:    p,
			CumAmount: cumAmount,
			CumPoints: cumPoints,
		})
	}
	return points, nil
}

// Cumulative returns the running totals of the account's closed trades,
// preceded by a zero point dated at the account's opening.
func Cumulative(acct *trade.Account) []CumulativeTrade {
	if acct == nil {
		return nil
	}

	closed := trade.Closed(acct.Trades)
	out := make([]CumulativeTrade, 0, len(closed)+1)
	out = append(out, CumulativeTrade{CloseTime: acct.OpenTime})

	var profit, points float64
	for i, t := range closed {
		p := t.SignedPoints()
		profit = calc.Add(profit, t.NetProfit)
		points = calc.Add(points, p)

		out = append(out, CumulativeTrade{
			CloseTime:    t.CloseTime,
			Count:        i + 1,
			SingleProfit: t.NetProfit,
			SinglePoints: p,
			NetProfit:    profit,
			NetPoints:    points,
		})
	}
	return out
}
