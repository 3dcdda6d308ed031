package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/records"
)

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", time.DateOnly}

// parseTime accepts RFC3339, a space separated local date and time, or a bare
// date. An empty string is the zero time.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q (want YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339)", s)
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}

// queryFlags are shared by the commands that build record reports.
type queryFlags struct {
	interval string
	limit    int
	format   string
}

func (q *queryFlags) register(cmd *cobra.Command, formats string) {
	cmd.Flags().StringVarP(&q.interval, "interval", "i", "", "daily, weekly, monthly or yearly (default from config)")
	cmd.Flags().IntVarP(&q.limit, "limit", "n", 0, "maximum records, -1 for all (default from config)")
	cmd.Flags().StringVar(&q.format, "format", "org", "output format: "+formats)
}

func (q *queryFlags) resolve(cmd *cobra.Command) (records.Interval, int, error) {
	iv := cfg.Analytics.Interval
	if q.interval != "" {
		parsed, err := records.ParseInterval(q.interval)
		if err != nil {
			return 0, 0, err
		}
		iv = parsed
	}

	limit := cfg.Analytics.DefaultRecordCount
	if cmd.Flags().Changed("limit") {
		limit = q.limit
	}
	return iv, limit, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
