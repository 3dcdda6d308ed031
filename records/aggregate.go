package records

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

func validateRange(start, end time.Time) error {
	if start.IsZero() {
		return fmt.Errorf("%w: start date cannot be empty", trade.ErrValidation)
	}
	if end.IsZero() {
		return fmt.Errorf("%w: end date cannot be empty", trade.ErrValidation)
	}
	if startOfDay(start).After(startOfDay(end.In(start.Location()))) {
		return fmt.Errorf("%w: start date %s is after end date %s", trade.ErrValidation,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return nil
}

func validateQuery(iv Interval, limit int) error {
	if !iv.valid() {
		return fmt.Errorf("%w: time interval cannot be empty", trade.ErrValidation)
	}
	if limit < Unbounded {
		return fmt.Errorf("%w: invalid record limit %d", trade.ErrValidation, limit)
	}
	return nil
}

// Aggregate buckets trades by close time into interval-sized records from
// start through end, both taken as calendar days in start's location. A
// monthly walk begins on the first of start's month. Empty buckets are
// dropped; the rest are returned latest first, at most limit of them unless
// limit is Unbounded.
func Aggregate(start, end time.Time, trades []trade.Trade, iv Interval, limit int) (Report, error) {
	if err := validateRange(start, end); err != nil {
		return Report{}, err
	}
	if err := validateQuery(iv, limit); err != nil {
		return Report{}, err
	}

	recs := aggregate(start, end, trade.Closed(trades), iv)
	newestFirst(recs)
	recs = limitTo(recs, limit)

	return Report{Records: recs, Totals: totalsOf(recs)}, nil
}

// ForAccount aggregates the trades of acct.
func ForAccount(start, end time.Time, acct *trade.Account, iv Interval, limit int) (Report, error) {
	if acct == nil {
		return Report{}, fmt.Errorf("%w: account cannot be nil", trade.ErrValidation)
	}
	return Aggregate(start, end, acct.Trades, iv, limit)
}

// aggregate walks the buckets over closed, which must be sorted by close
// time, and returns the non-empty records in chronological order.
func aggregate(start, end time.Time, closed []trade.Trade, iv Interval) []Record {
	cursor := startOfDay(start)
	if iv == Monthly {
		cursor = firstOfMonth(cursor)
	}
	last := startOfDay(end.In(cursor.Location()))

	// skip everything that closed before the first bucket
	i := sort.Search(len(closed), func(k int) bool {
		return !closed[k].CloseTime.Before(cursor)
	})

	recs := []Record{}
	for !cursor.After(last) {
		next := iv.Add(cursor, 1)

		j := i
		for j < len(closed) && closed[j].CloseTime.Before(next) {
			j++
		}

		if r := newRecord(cursor, next, closed[i:j], iv); r.Trades > 0 {
			recs = append(recs, r)
		}

		i = j
		cursor = next
	}
	return recs
}
