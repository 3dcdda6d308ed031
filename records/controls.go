package records

import (
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

type MonthEntry struct {
	Month       string `json:"month"`
	MonthNumber int    `json:"monthNumber"`
	Count       int    `json:"value"`
}

type YearEntry struct {
	Year         int          `json:"year"`
	MonthEntries []MonthEntry `json:"monthEntries"`
}

// Controls lists, per year, how many trades closed in each month. It feeds
// the year and month filters of a records view.
type Controls struct {
	YearEntries []YearEntry `json:"yearEntries"`
}

// Index counts closed trades by close year and month. Years are ascending
// and every year carries all twelve months in calendar order.
func Index(trades []trade.Trade) Controls {
	counts := map[int]*[12]int{}
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		y := t.CloseTime.Year()
		if counts[y] == nil {
			counts[y] = &[12]int{}
		}
		counts[y][t.CloseTime.Month()-1]++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	c := Controls{YearEntries: make([]YearEntry, 0, len(years))}
	for _, y := range years {
		months := make([]MonthEntry, 0, 12)
		for m := time.January; m <= time.December; m++ {
			months = append(months, MonthEntry{
				Month:       strings.ToUpper(m.String()),
				MonthNumber: int(m),
				Count:       counts[y][m-1],
			})
		}
		c.YearEntries = append(c.YearEntries, YearEntry{Year: y, MonthEntries: months})
	}
	return c
}
