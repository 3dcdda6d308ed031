package risk

import (
	"math"

	"github.com/rustyeddy/tradejournal/calc"
	"github.com/rustyeddy/tradejournal/equity"
)

// Drawdown returns the largest retracement of cumulative profit from a swing
// high to a later swing low, as a value <= 0.
//
// Swing highs and lows are both measured from zero, so only a new overall
// low can open a drawdown, and it is measured from the latest overall high
// seen before it.
func Drawdown(cum []equity.CumulativeTrade) float64 {
	if len(cum) == 0 {
		return 0
	}

	var drawdown, swingLow, swingHigh float64
	highIdx := 0

	for i, c := range cum {
		switch {
		case c.NetProfit < swingLow:
			swingLow = c.NetProfit
			local := math.Abs(calc.Subtract(cum[highIdx].NetProfit, cum[i].NetProfit))
			if local > drawdown {
				drawdown = local
			}
		case c.NetProfit > swingHigh:
			swingHigh = c.NetProfit
			highIdx = i
		}
	}

	return calc.Multiply(drawdown, -1)
}
