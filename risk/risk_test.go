package risk

import (
	"errors"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/equity"
	"github.com/rustyeddy/tradejournal/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func tradeA() trade.Trade {
	return trade.Trade{
		ID:         "A",
		OpenTime:   at(2022, 8, 24, 9, 15),
		CloseTime:  at(2022, 8, 24, 10, 2),
		OpenPrice:  13083.41,
		ClosePrice: 13098.67,
		LotSize:    1,
		StopLoss:   13070.00,
		TakeProfit: 13110.00,
		NetProfit:  14.85,
	}
}

func tradeB() trade.Trade {
	return trade.Trade{
		ID:         "B",
		OpenTime:   at(2022, 8, 25, 13, 40),
		CloseTime:  at(2022, 8, 25, 14, 11),
		OpenPrice:  13160.09,
		ClosePrice: 13156.12,
		LotSize:    2,
		StopLoss:   13175.00,
		TakeProfit: 13130.00,
		NetProfit:  -4.50,
	}
}

func account(trades ...trade.Trade) *trade.Account {
	return &trade.Account{
		ID:             "acc-1",
		Name:           "Main",
		Balance:        1010.35,
		InitialBalance: 1000,
		OpenTime:       at(2022, 8, 1, 0, 0),
		LastTraded:     trades[len(trades)-1].CloseTime,
		Trades:         trades,
	}
}

func fixedClock() *Calculator {
	c := New(DefaultRiskFreeRate)
	c.Now = func() time.Time { return at(2023, 1, 1, 0, 0) }
	return c
}

func curve(profits ...float64) []equity.CumulativeTrade {
	out := make([]equity.CumulativeTrade, len(profits))
	for i, p := range profits {
		out[i] = equity.CumulativeTrade{Count: i, NetProfit: p}
	}
	return out
}

func TestDrawdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cum  []equity.CumulativeTrade
		want float64
	}{
		{"empty", nil, 0},
		{"rising", curve(0, 1, 2, 3), 0},
		{"retrace above zero", curve(0, 14.85, 10.35), 0},
		{"swing low", curve(0, 5, -3, 2, -6), -11},
		{"straight down", curve(0, -2.5, -4), -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Drawdown(tt.cum)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, 0.0)
		})
	}
}

func TestProfitFactor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3.3, ProfitFactor([]trade.Trade{tradeA(), tradeB()}))
	assert.Equal(t, 0.0, ProfitFactor([]trade.Trade{tradeA()}))
	assert.Equal(t, 0.0, ProfitFactor(nil))
}

func TestRiskRewardRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.0, RiskRewardRatio([]trade.Trade{tradeA(), tradeB()}))

	noStops := tradeA()
	noStops.StopLoss = 0
	assert.Equal(t, 0.0, RiskRewardRatio([]trade.Trade{noStops}))
}

func TestPlanned(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 13.41, PlannedRisk(tradeA()))
	assert.Equal(t, 29.82, PlannedRisk(tradeB()))
	assert.Equal(t, 1.98, PlannedRR(tradeA()))

	bare := tradeA()
	bare.StopLoss, bare.TakeProfit = 0, 0
	assert.Equal(t, 0.0, PlannedRisk(bare))
	assert.Equal(t, 0.0, PlannedRR(bare))
}

func TestSharpeRatio(t *testing.T) {
	t.Parallel()

	c := fixedClock()

	got, err := c.SharpeRatio(account(tradeA(), tradeB()))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got, "a single traded month has no spread")

	september := trade.Trade{
		ID:         "C",
		OpenTime:   at(2022, 9, 2, 8, 0),
		CloseTime:  at(2022, 9, 2, 9, 30),
		OpenPrice:  13200,
		ClosePrice: 13220,
		NetProfit:  20,
	}
	acct := account(tradeA(), tradeB(), september)
	acct.Balance = 1000

	got, err = c.SharpeRatio(acct)
	require.NoError(t, err)
	assert.Equal(t, -0.36, got)
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	open := tradeB()
	open.ID = "open"
	open.CloseTime = time.Time{}

	stats, err := fixedClock().Statistics(account(tradeA(), tradeB(), open))
	require.NoError(t, err)

	assert.Equal(t, Statistics{
		Balance:         1010.35,
		AverageProfit:   14.85,
		AverageLoss:     -4.50,
		NumberOfTrades:  2,
		RRR:             2.0,
		Lots:            3,
		Expectancy:      5.18,
		WinPercentage:   50,
		ProfitFactor:    3.3,
		Retention:       77,
		SharpeRatio:     0,
		TradeDuration:   2340,
		WinDuration:     2820,
		LossDuration:    1860,
		AssumedDrawdown: -4.50,
	}, stats)
}

func TestInsights(t *testing.T) {
	t.Parallel()

	in, err := fixedClock().Insights(account(tradeA(), tradeB()))
	require.NoError(t, err)

	assert.Equal(t, 2, in.TradingDays)
	assert.Equal(t, 10.35, in.CurrentPL)
	assert.Equal(t, -4.50, in.BiggestLoss)
	assert.Equal(t, 14.85, in.LargestGain)
	assert.Equal(t, 14.85, in.MaxProfit)
	assert.Equal(t, 0.0, in.Drawdown)

	assert.Equal(t, 1.04, in.CurrentPLDelta)
	assert.Equal(t, 0.45, in.BiggestLossDelta)
	assert.Equal(t, 1.48, in.LargestGainDelta)
	assert.Equal(t, 1.48, in.MaxProfitDelta)
	assert.Equal(t, 0.0, in.DrawdownDelta)
}

func TestInsightsNoTrades(t *testing.T) {
	t.Parallel()

	acct := &trade.Account{ID: "fresh", Balance: 500, InitialBalance: 500, OpenTime: at(2022, 1, 1, 0, 0)}
	in, err := fixedClock().Insights(acct)
	require.NoError(t, err)
	assert.Equal(t, Insights{}, in)
}

func TestConsistencyScore(t *testing.T) {
	t.Parallel()

	score, err := ConsistencyScore(account(tradeA()))
	require.NoError(t, err)
	assert.Equal(t, 49, score)

	_, err = ConsistencyScore(nil)
	assert.True(t, errors.Is(err, trade.ErrValidation))
}

func TestCalculatorValidation(t *testing.T) {
	t.Parallel()

	c := fixedClock()
	unopened := &trade.Account{ID: "x"}

	for name, acct := range map[string]*trade.Account{"nil": nil, "no open time": unopened} {
		t.Run(name, func(t *testing.T) {
			_, err := c.SharpeRatio(acct)
			assert.True(t, errors.Is(err, trade.ErrValidation))
			_, err = c.Statistics(acct)
			assert.True(t, errors.Is(err, trade.ErrValidation))
			_, err = c.Insights(acct)
			assert.True(t, errors.Is(err, trade.ErrValidation))
		})
	}
}
