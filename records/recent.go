package records

import (
	"fmt"

	"github.com/rustyeddy/tradejournal/trade"
)

// Recent collects the account's records from its latest trading month (daily
// interval) or year (other intervals) back to the period holding its first
// trade, latest first and cut to limit.
//
// An account that has never traded yields an empty report with nil totals.
// One that claims to have traded but whose first trade is missing or still
// open fails with ErrComputation.
func Recent(acct *trade.Account, iv Interval, limit int) (Report, error) {
	if acct == nil {
		return Report{}, fmt.Errorf("%w: account cannot be nil", trade.ErrValidation)
	}
	if err := validateQuery(iv, limit); err != nil {
		return Report{}, err
	}

	if !acct.HasTraded() {
		return Report{Records: []Record{}}, nil
	}
	if len(acct.Trades) == 0 {
		return Report{}, fmt.Errorf("%w: no trades found for account %s", trade.ErrComputation, acct.ID)
	}

	firstTraded := acct.Trades[0].CloseTime
	if firstTraded.IsZero() {
		return Report{}, fmt.Errorf("%w: account %s doesn't have any closed trades", trade.ErrComputation, acct.Name)
	}

	lastTraded := acct.LastTraded.In(firstTraded.Location())
	start, compare := firstOfYear(firstTraded), firstOfYear(lastTraded).AddDate(1, 0, 0)
	if iv == Daily {
		start, compare = firstOfMonth(firstTraded), firstOfMonth(lastTraded).AddDate(0, 1, 0)
	}

	closed := trade.Closed(acct.Trades)
	var all []Record
	for !compare.Before(start) {
		prev := iv.Add(compare, -1)
		all = append(all, aggregate(prev, compare, closed, iv)...)
		compare = prev
	}

	recs := dedupe(all)
	recs = limitTo(recs, limit)

	return Report{Records: recs, Totals: totalsOf(recs)}, nil
}

// dedupe sorts recs latest first and drops repeats of the same bucket, which
// appear where consecutive scan windows overlap.
func dedupe(recs []Record) []Record {
	newestFirst(recs)

	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if n := len(out); n > 0 && out[n-1].sameBucket(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
