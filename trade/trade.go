// Package trade holds the ledger values the analytics packages read: closed
// trades and the account they belong to. Nothing in this module mutates a
// Trade once it has been handed to an analytics function.
package trade

import (
	"math"
	"sort"
	"time"

	"github.com/rustyeddy/tradejournal/calc"
)

type Trade struct {
	ID         string    `json:"id" yaml:"id"`
	AccountID  string    `json:"accountId" yaml:"account_id"`
	Instrument string    `json:"instrument" yaml:"instrument"`
	OpenTime   time.Time `json:"openTime" yaml:"open_time"`
	CloseTime  time.Time `json:"closeTime,omitempty" yaml:"close_time,omitempty"` // zero until closed
	OpenPrice  float64   `json:"openPrice" yaml:"open_price"`
	ClosePrice float64   `json:"closePrice" yaml:"close_price"`
	LotSize    float64   `json:"lotSize" yaml:"lot_size"`
	NetProfit  float64   `json:"netProfit" yaml:"net_profit"`
	StopLoss   float64   `json:"stopLoss" yaml:"stop_loss"`     // 0 = unset
	TakeProfit float64   `json:"takeProfit" yaml:"take_profit"` // 0 = unset
}

func (t Trade) IsClosed() bool {
	return !t.CloseTime.IsZero()
}

// Points is the unsigned price distance travelled by the trade, rounded like
// every other amount.
func (t Trade) Points() float64 {
	return math.Abs(calc.Subtract(t.ClosePrice, t.OpenPrice))
}

// SignedPoints is Points carrying the sign of the trade's profit.
func (t Trade) SignedPoints() float64 {
	if t.NetProfit < 0 {
		return -t.Points()
	}
	return t.Points()
}

// Duration is how long the trade was held, 0 while it is still open.
func (t Trade) Duration() time.Duration {
	if !t.IsClosed() {
		return 0
	}
	d := t.CloseTime.Sub(t.OpenTime)
	if d < 0 {
		return -d
	}
	return d
}

// Closed returns a copy of the closed trades sorted by close time, then open
// time. The input slice is left untouched.
func Closed(trades []Trade) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			out = append(out, t)
		}
	}
	SortByClose(out)
	return out
}

// SortByClose orders trades in place by close time, then open time. Equal
// trades keep their relative order.
func SortByClose(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		a, b := trades[i], trades[j]
		if !a.CloseTime.Equal(b.CloseTime) {
			return a.CloseTime.Before(b.CloseTime)
		}
		return a.OpenTime.Before(b.OpenTime)
	})
}
