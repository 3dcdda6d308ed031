package records

import (
	"fmt"
	"strings"
	"time"
)

// Interval is the width of a trade record's time bucket.
type Interval int

const (
	Daily Interval = iota + 1
	Weekly
	Monthly
	Yearly
)

// Unbounded disables the record limit.
const Unbounded = -1

// DefaultRecordCount is the limit used when a caller does not name one.
const DefaultRecordCount = 10

func (iv Interval) String() string {
	switch iv {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("interval(%d)", int(iv))
	}
}

func (iv Interval) valid() bool {
	return iv >= Daily && iv <= Yearly
}

func (iv Interval) MarshalText() ([]byte, error) {
	if !iv.valid() {
		return nil, fmt.Errorf("unknown interval %d", int(iv))
	}
	return []byte(iv.String()), nil
}

func (iv *Interval) UnmarshalText(b []byte) error {
	v, err := ParseInterval(string(b))
	if err != nil {
		return err
	}
	*iv = v
	return nil
}

// ParseInterval accepts daily, weekly, monthly or yearly in any case.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, nil
	case "weekly", "week", "w":
		return Weekly, nil
	case "monthly", "month", "m":
		return Monthly, nil
	case "yearly", "year", "y":
		return Yearly, nil
	}
	return 0, fmt.Errorf("unknown interval %q", s)
}

// Add moves t forward by n steps of the interval. Negative n moves back.
// Monthly and yearly steps keep the day of month, clamped to the last day of
// the target month, so 2024-02-29 plus a year is 2025-02-28.
func (iv Interval) Add(t time.Time, n int) time.Time {
	switch iv {
	case Daily:
		return t.AddDate(0, 0, n)
	case Weekly:
		return t.AddDate(0, 0, 7*n)
	case Monthly:
		return addMonths(t, n)
	case Yearly:
		return addMonths(t, 12*n)
	}
	return t
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	// day 0 of the following month is the last day of the target month
	last := time.Date(y, m+time.Month(n)+1, 0, 0, 0, 0, 0, t.Location())
	if d > last.Day() {
		d = last.Day()
	}
	return time.Date(last.Year(), last.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func firstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func firstOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
