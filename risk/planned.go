package risk

import (
	"math"

	"github.com/rustyeddy/tradejournal/calc"
	"github.com/rustyeddy/tradejournal/trade"
)

// PlannedRisk is the amount lost if the trade had hit its stop loss: the price
// distance to the stop times the lot size. Trades without a stop give 0.
func PlannedRisk(t trade.Trade) float64 {
	if t.StopLoss <= 0 {
		return 0
	}
	return calc.Multiply(math.Abs(calc.Subtract(t.OpenPrice, t.StopLoss)), t.LotSize)
}

// PlannedRR is the reward to risk ratio the trade was placed with.
func PlannedRR(t trade.Trade) float64 {
	if t.StopLoss <= 0 || t.TakeProfit <= 0 {
		return 0
	}
	reward := math.Abs(calc.Subtract(t.TakeProfit, t.OpenPrice))
	risk := math.Abs(calc.Subtract(t.OpenPrice, t.StopLoss))
	return calc.Divide(reward, risk)
}
