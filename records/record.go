// Package records slices a trade ledger into time buckets and summarises each
// bucket as a Record. It also rolls several accounts into a trade log and
// indexes trade counts by year and month.
//
// Every function here is a pure function of its arguments.
package records

import (
	"math"
	"sort"
	"time"

	"github.com/rustyeddy/tradejournal/calc"
	"github.com/rustyeddy/tradejournal/equity"
	"github.com/rustyeddy/tradejournal/trade"
)

// Record summarises the trades that closed within [Start, End).
type Record struct {
	Start         time.Time      `json:"start"`
	End           time.Time      `json:"end"`
	NetProfit     float64        `json:"netProfit"`
	LowestPoint   float64        `json:"lowestPoint"`
	PointsGained  float64        `json:"pointsGained"`
	PointsLost    float64        `json:"pointsLost"`
	Points        float64        `json:"points"`
	LargestWin    float64        `json:"largestWin"`
	WinAverage    float64        `json:"winAverage"`
	LargestLoss   float64        `json:"largestLoss"`
	LossAverage   float64        `json:"lossAverage"`
	WinPercentage int            `json:"winPercentage"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Trades        int            `json:"trades"`
	Profitability float64        `json:"profitability"`
	Retention     int            `json:"retention"`
	Interval      Interval       `json:"interval"`
	EquityPoints  []equity.Point `json:"equityPoints"`
}

// sameBucket reports whether two records cover the same bucket.
func (r Record) sameBucket(o Record) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End) && r.Interval == o.Interval
}

// Totals aggregates a list of records. Trades counts only won and lost
// trades.
type Totals struct {
	Count         int     `json:"count"`
	Trades        int     `json:"trades"`
	Wins          int     `json:"tradesWon"`
	Losses        int     `json:"tradesLost"`
	WinPercentage int     `json:"winPercentage"`
	NetProfit     float64 `json:"netProfit"`
	NetPoints     float64 `json:"netPoints"`
}

// Report is what the aggregators return. Totals is nil only for an account
// that has never traded.
type Report struct {
	Records []Record `json:"tradeRecords"`
	Totals  *Totals  `json:"tradeRecordTotals"`
}

// newRecord summarises trades, which must already be in close order.
func newRecord(start, end time.Time, trades []trade.Trade, iv Interval) Record {
	if len(trades) == 0 {
		return Record{
			Start:        start,
			End:          end,
			Interval:     iv,
			EquityPoints: []equity.Point{},
		}
	}

	var won, lost []trade.Trade
	profits := make([]float64, 0, len(trades))
	for _, t := range trades {
		profits = append(profits, t.NetProfit)
		switch {
		case t.NetProfit > 0:
			won = append(won, t)
		case t.NetProfit < 0:
			lost = append(lost, t)
		}
	}
	sort.SliceStable(won, func(i, j int) bool { return won[i].NetProfit > won[j].NetProfit })
	sort.SliceStable(lost, func(i, j int) bool { return lost[i].NetProfit < lost[j].NetProfit })

	gained := calc.Sum(pointsOf(won)...)
	lostPts := calc.Sum(pointsOf(lost)...)

	r := Record{
		Start:         start,
		End:           end,
		NetProfit:     calc.Sum(profits...),
		LowestPoint:   lowestPoint(trades),
		PointsGained:  gained,
		PointsLost:    lostPts,
		Points:        calc.Subtract(gained, lostPts),
		WinAverage:    calc.Mean(profitsOf(won)...),
		LossAverage:   calc.Mean(profitsOf(lost)...),
		WinPercentage: calc.WholePercentage(float64(len(won)), float64(len(trades))),
		Wins:          len(won),
		Losses:        len(lost),
		Trades:        len(trades),
		Profitability: calc.Divide(gained, lostPts),
		Retention:     calc.WholePercentage(gained, calc.Add(gained, math.Abs(lostPts))),
		Interval:      iv,
		EquityPoints:  equity.ForRecord(trades),
	}
	if len(won) > 0 {
		r.LargestWin = calc.Round(won[0].NetProfit)
	}
	if len(lost) > 0 {
		r.LargestLoss = calc.Round(lost[0].NetProfit)
	}
	return r
}

// lowestPoint is the minimum of the running profit while replaying trades in
// order. The running sum is seeded by the first trade, so a bucket that only
// ever gains reports its first trade.
func lowestPoint(trades []trade.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	var sum float64
	lowest := calc.Round(trades[0].NetProfit)
	for _, t := range trades {
		sum = calc.Add(sum, t.NetProfit)
		if sum < lowest {
			lowest = sum
		}
	}
	return lowest
}

func pointsOf(trades []trade.Trade) []float64 {
	out := make([]float64, 0, len(trades))
	for _, t := range trades {
		out = append(out, t.Points())
	}
	return out
}

func profitsOf(trades []trade.Trade) []float64 {
	out := make([]float64, 0, len(trades))
	for _, t := range trades {
		out = append(out, t.NetProfit)
	}
	return out
}

func totalsOf(recs []Record) *Totals {
	t := &Totals{Count: len(recs)}

	profits := make([]float64, 0, len(recs))
	points := make([]float64, 0, len(recs))
	for _, r := range recs {
		t.Wins += r.Wins
		t.Losses += r.Losses
		profits = append(profits, r.NetProfit)
		points = append(points, r.Points)
	}

	t.Trades = t.Wins + t.Losses
	t.WinPercentage = calc.WholePercentage(float64(t.Wins), float64(t.Trades))
	t.NetProfit = calc.Sum(profits...)
	t.NetPoints = calc.Sum(points...)
	return t
}

// newestFirst sorts records by bucket start, latest first. Records with the
// same start keep their order.
func newestFirst(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Start.After(recs[j].Start)
	})
}

func limitTo(recs []Record, limit int) []Record {
	if limit == Unbounded || limit >= len(recs) {
		return recs
	}
	return recs[:limit]
}
