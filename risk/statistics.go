// Package risk computes an account's risk and return figures: drawdown,
// Sharpe ratio, profit factor, risk to reward and the derived statistics and
// insights shown for an account.
package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/tradejournal/calc"
	"github.com/rustyeddy/tradejournal/equity"
	"github.com/rustyeddy/tradejournal/records"
	"github.com/rustyeddy/tradejournal/trade"
)

// DefaultRiskFreeRate is the annual risk free rate, in percent, subtracted
// from the average monthly return in the Sharpe ratio.
const DefaultRiskFreeRate = 3.26

// consistencyPlaceholder is what ConsistencyScore reports for every account.
const consistencyPlaceholder = 49

type Statistics struct {
	Balance         float64 `json:"balance"`
	AverageProfit   float64 `json:"averageProfit"`
	AverageLoss     float64 `json:"averageLoss"`
	NumberOfTrades  int     `json:"numberOfTrades"`
	RRR             float64 `json:"rrr"`
	Lots            float64 `json:"lots"`
	Expectancy      float64 `json:"expectancy"`
	WinPercentage   int     `json:"winPercentage"`
	ProfitFactor    float64 `json:"profitFactor"`
	Retention       int     `json:"retention"`
	SharpeRatio     float64 `json:"sharpeRatio"`
	TradeDuration   int64   `json:"tradeDuration"` // seconds
	WinDuration     int64   `json:"winDuration"`   // seconds
	LossDuration    int64   `json:"lossDuration"`  // seconds
	AssumedDrawdown float64 `json:"assumedDrawdown"`
}

// Insights are headline figures for an account, each also given as a
// percentage of the initial balance.
type Insights struct {
	TradingDays      int     `json:"tradingDays"`
	CurrentPL        float64 `json:"currentPL"`
	BiggestLoss      float64 `json:"biggestLoss"`
	LargestGain      float64 `json:"largestGain"`
	Drawdown         float64 `json:"drawdown"`
	MaxProfit        float64 `json:"maxProfit"`
	CurrentPLDelta   float64 `json:"currentPLDelta"`
	BiggestLossDelta float64 `json:"biggestLossDelta"`
	LargestGainDelta float64 `json:"largestGainDelta"`
	DrawdownDelta    float64 `json:"drawdownDelta"`
	MaxProfitDelta   float64 `json:"maxProfitDelta"`
}

// Calculator holds the two inputs that are not part of an account: the risk
// free rate and the clock used to bound the Sharpe ratio window.
type Calculator struct {
	RiskFreeRate float64
	Now          func() time.Time
}

func New(riskFreeRate float64) *Calculator {
	return &Calculator{RiskFreeRate: riskFreeRate, Now: time.Now}
}

func (c *Calculator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func requireAccount(acct *trade.Account) error {
	if acct == nil {
		return fmt.Errorf("%w: account cannot be nil", trade.ErrValidation)
	}
	if acct.OpenTime.IsZero() {
		return fmt.Errorf("%w: account %s has no open time", trade.ErrValidation, acct.ID)
	}
	return nil
}

// SharpeRatio divides the average monthly return in excess of the risk free
// rate by the standard deviation of monthly profit. Months run from a year
// before the account opened to a year from now. Fewer than two traded months
// give 0.
func (c *Calculator) SharpeRatio(acct *trade.Account) (float64, error) {
	if err := requireAccount(acct); err != nil {
		return 0, err
	}

	rep, err := records.ForAccount(acct.OpenTime.AddDate(-1, 0, 0), c.now().AddDate(1, 0, 0), acct, records.Monthly, records.Unbounded)
	if err != nil {
		return 0, err
	}
	if len(rep.Records) < 2 {
		return 0, nil
	}

	var returns float64
	profits := make([]float64, 0, len(rep.Records))
	for _, r := range rep.Records {
		returns += float64(calc.WholePercentage(r.NetProfit, acct.Balance))
		profits = append(profits, r.NetProfit)
	}
	avg := returns / float64(len(rep.Records))

	std := stdDev(profits)
	if math.IsNaN(std) {
		return 0, nil
	}
	return calc.Divide(calc.Subtract(avg, c.RiskFreeRate), std), nil
}

// Statistics summarises the account's closed trades.
func (c *Calculator) Statistics(acct *trade.Account) (Statistics, error) {
	if err := requireAccount(acct); err != nil {
		return Statistics{}, err
	}

	trades := trade.Closed(acct.Trades)
	gains, losses := grossOf(trades)

	var won, lost, all, lots []float64
	var held, heldWin, heldLoss []time.Duration
	for _, t := range trades {
		all = append(all, t.NetProfit)
		lots = append(lots, t.LotSize)
		held = append(held, t.Duration())
		switch {
		case t.NetProfit > 0:
			won = append(won, t.NetProfit)
			heldWin = append(heldWin, t.Duration())
		case t.NetProfit < 0:
			lost = append(lost, t.NetProfit)
			heldLoss = append(heldLoss, t.Duration())
		}
	}

	sharpe, err := c.SharpeRatio(acct)
	if err != nil {
		return Statistics{}, err
	}

	drawdown := Drawdown(equity.Cumulative(acct))
	averageLoss := calc.Mean(lost...)

	return Statistics{
		Balance:         acct.Balance,
		AverageProfit:   calc.Mean(won...),
		AverageLoss:     averageLoss,
		NumberOfTrades:  len(trades),
		RRR:             RiskRewardRatio(trades),
		Lots:            calc.Sum(lots...),
		Expectancy:      calc.Mean(all...),
		WinPercentage:   calc.WholePercentage(float64(len(won)), float64(len(trades))),
		ProfitFactor:    calc.Divide(gains, math.Abs(losses)),
		Retention:       calc.WholePercentage(gains, calc.Add(gains, math.Abs(losses))),
		SharpeRatio:     sharpe,
		TradeDuration:   meanSeconds(held),
		WinDuration:     meanSeconds(heldWin),
		LossDuration:    meanSeconds(heldLoss),
		AssumedDrawdown: calc.Multiply(calc.Add(math.Abs(drawdown), math.Abs(averageLoss)), -1),
	}, nil
}

// Insights reports the account's current, best and worst figures.
func (c *Calculator) Insights(acct *trade.Account) (Insights, error) {
	if err := requireAccount(acct); err != nil {
		return Insights{}, err
	}

	cum := equity.Cumulative(acct)

	in := Insights{
		TradingDays: tradingDays(acct.Trades),
		CurrentPL:   cum[len(cum)-1].NetProfit,
		Drawdown:    Drawdown(cum),
	}
	in.BiggestLoss, in.LargestGain = cum[0].SingleProfit, cum[0].SingleProfit
	in.MaxProfit = cum[0].NetProfit
	for _, ct := range cum[1:] {
		in.BiggestLoss = math.Min(in.BiggestLoss, ct.SingleProfit)
		in.LargestGain = math.Max(in.LargestGain, ct.SingleProfit)
		in.MaxProfit = math.Max(in.MaxProfit, ct.NetProfit)
	}

	base := acct.InitialBalance
	in.CurrentPLDelta = calc.PercentOf(in.CurrentPL, base)
	in.BiggestLossDelta = calc.PercentOf(in.BiggestLoss, base)
	in.LargestGainDelta = calc.PercentOf(in.LargestGain, base)
	in.DrawdownDelta = calc.PercentOf(in.Drawdown, base)
	in.MaxProfitDelta = calc.PercentOf(in.MaxProfit, base)
	return in, nil
}

// ConsistencyScore rates how evenly profit is spread over trading days, 0 to
// 100. Currently a fixed placeholder.
func ConsistencyScore(acct *trade.Account) (int, error) {
	if acct == nil {
		return 0, fmt.Errorf("%w: account cannot be nil", trade.ErrValidation)
	}
	return consistencyPlaceholder, nil
}

// tradingDays counts the distinct calendar days on which trades were opened.
func tradingDays(trades []trade.Trade) int {
	days := map[string]struct{}{}
	for _, t := range trades {
		days[t.OpenTime.Format(time.DateOnly)] = struct{}{}
	}
	return len(days)
}

func meanSeconds(ds []time.Duration) int64 {
	if len(ds) == 0 {
		return 0
	}
	var total float64
	for _, d := range ds {
		total += d.Seconds()
	}
	return int64(math.Round(total / float64(len(ds))))
}
