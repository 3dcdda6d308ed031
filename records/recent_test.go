package records

import (
	"errors"
	"testing"

	"github.com/rustyeddy/tradejournal/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradeC() trade.Trade {
	return trade.Trade{
		ID:         "C",
		OpenTime:   at(2022, 10, 3, 8, 0),
		CloseTime:  at(2022, 10, 3, 9, 30),
		OpenPrice:  100,
		ClosePrice: 120,
		NetProfit:  20,
	}
}

func tradedAccount() *trade.Account {
	return &trade.Account{
		ID:         "acc-1",
		Name:       "Primary",
		Balance:    1030.35,
		OpenTime:   day(2022, 8, 1),
		LastTraded: tradeC().CloseTime,
		Trades:     []trade.Trade{tradeA(), tradeB(), tradeC()},
	}
}

func TestRecentNeverTraded(t *testing.T) {
	t.Parallel()

	rep, err := Recent(&trade.Account{ID: "fresh"}, Daily, DefaultRecordCount)
	require.NoError(t, err)
	assert.Empty(t, rep.Records)
	assert.Nil(t, rep.Totals)
}

func TestRecentComputationErrors(t *testing.T) {
	t.Parallel()

	noTrades := &trade.Account{ID: "acc-2", LastTraded: at(2022, 8, 24, 0, 0)}
	_, err := Recent(noTrades, Daily, Unbounded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, trade.ErrComputation))

	stillOpen := &trade.Account{
		ID:         "acc-3",
		Name:       "Open",
		LastTraded: at(2022, 8, 25, 0, 0),
		Trades:     []trade.Trade{{ID: "open", OpenTime: at(2022, 8, 25, 9, 0)}, tradeB()},
	}
	_, err = Recent(stillOpen, Monthly, Unbounded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, trade.ErrComputation))
	assert.Contains(t, err.Error(), "closed trades")
}

func TestRecentValidation(t *testing.T) {
	t.Parallel()

	_, err := Recent(nil, Daily, Unbounded)
	assert.True(t, errors.Is(err, trade.ErrValidation))

	_, err = Recent(tradedAccount(), Interval(42), Unbounded)
	assert.True(t, errors.Is(err, trade.ErrValidation))
}

func TestRecentDaily(t *testing.T) {
	t.Parallel()

	rep, err := Recent(tradedAccount(), Daily, Unbounded)
	require.NoError(t, err)
	require.Len(t, rep.Records, 3)

	assert.True(t, rep.Records[0].Start.Equal(day(2022, 10, 3)))
	assert.True(t, rep.Records[1].Start.Equal(day(2022, 8, 25)))
	assert.True(t, rep.Records[2].Start.Equal(day(2022, 8, 24)))

	require.NotNil(t, rep.Totals)
	assert.Equal(t, 3, rep.Totals.Count)
	assert.Equal(t, 3, rep.Totals.Trades)
	assert.Equal(t, 30.35, rep.Totals.NetProfit)
}

func TestRecentMonthly(t *testing.T) {
	t.Parallel()

	rep, err := Recent(tradedAccount(), Monthly, Unbounded)
	require.NoError(t, err)
	require.Len(t, rep.Records, 2)

	assert.True(t, rep.Records[0].Start.Equal(day(2022, 10, 1)))
	assert.Equal(t, 1, rep.Records[0].Trades)
	assert.True(t, rep.Records[1].Start.Equal(day(2022, 8, 1)))
	assert.Equal(t, 2, rep.Records[1].Trades)
	assert.Equal(t, 10.35, rep.Records[1].LowestPoint)
}

func TestRecentLimit(t *testing.T) {
	t.Parallel()

	rep, err := Recent(tradedAccount(), Daily, 1)
	require.NoError(t, err)
	require.Len(t, rep.Records, 1)
	assert.True(t, rep.Records[0].Start.Equal(day(2022, 10, 3)))
	assert.Equal(t, 1, rep.Totals.Count)
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	a := Record{Start: day(2022, 8, 24), End: day(2022, 8, 25), Interval: Daily, Trades: 1}
	b := Record{Start: day(2022, 8, 25), End: day(2022, 8, 26), Interval: Daily, Trades: 1}

	out := dedupe([]Record{a, b, a, b, b})
	require.Len(t, out, 2)
	assert.True(t, out[0].Start.Equal(b.Start))
	assert.True(t, out[1].Start.Equal(a.Start))
}
