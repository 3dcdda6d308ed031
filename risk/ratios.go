package risk

import (
	"math"

	"github.com/rustyeddy/tradejournal/calc"
	"github.com/rustyeddy/tradejournal/trade"
)

// ProfitFactor is gross profit over gross loss, 0 when nothing was lost.
func ProfitFactor(trades []trade.Trade) float64 {
	gains, losses := grossOf(trades)
	return calc.Divide(gains, math.Abs(losses))
}

// RiskRewardRatio compares the average planned reward to the average planned
// risk of the trades that had both a stop loss and a take profit set. It is 0
// when no trade qualifies.
func RiskRewardRatio(trades []trade.Trade) float64 {
	var rewards, risks []float64
	for _, t := range trades {
		if t.StopLoss <= 0 || t.TakeProfit <= 0 {
			continue
		}
		rewards = append(rewards, math.Abs(calc.Subtract(t.TakeProfit, t.OpenPrice)))
		risks = append(risks, math.Abs(calc.Subtract(t.StopLoss, t.OpenPrice)))
	}
	return calc.Divide(calc.Mean(rewards...), calc.Mean(risks...))
}

// grossOf sums winning and losing profit separately. Losses are negative.
func grossOf(trades []trade.Trade) (gains, losses float64) {
	var won, lost []float64
	for _, t := range trades {
		switch {
		case t.NetProfit > 0:
			won = append(won, t.NetProfit)
		case t.NetProfit < 0:
			lost = append(lost, t.NetProfit)
		}
	}
	return calc.Sum(won...), calc.Sum(lost...)
}

// stdDev is the population standard deviation of xs.
func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)))
}
