package journal

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/risk"
	"github.com/rustyeddy/tradejournal/trade"
)

// AccountOrg is the data behind an account's Org summary.
type AccountOrg struct {
	Account     *trade.Account
	Stats       risk.Statistics
	Insights    risk.Insights
	Consistency int
	Created     time.Time
	Notes       []string
}

var accountOrgFuncs = template.FuncMap{
	"seconds": func(s int64) string { return (time.Duration(s) * time.Second).String() },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var accountOrgTmpl = template.Must(template.New("account").Funcs(accountOrgFuncs).Parse(AccountOrgTemplate))

// WriteAccountOrg renders v as an Org entry.
func WriteAccountOrg(w io.Writer, v AccountOrg) error {
	if v.Account == nil {
		return fmt.Errorf("%w: account cannot be nil", trade.ErrValidation)
	}
	return accountOrgTmpl.Execute(w, v)
}

const AccountOrgTemplate = `* ACCOUNT: {{.Account.Name}}{{if .Account.Number}} ({{.Account.Number}}){{end}}
:PROPERTIES:
:ACCOUNT_ID:  {{.Account.ID}}
:OPENED:      {{.Account.OpenTime.Format "2006-01-02"}}
:LAST_TRADED: {{if .Account.HasTraded}}{{.Account.LastTraded.Format "2006-01-02"}}{{else}}(never){{end}}
:START_BAL:   {{printf "%.2f" .Account.InitialBalance}}
:BALANCE:     {{printf "%.2f" .Stats.Balance}}
:TRADES:      {{.Stats.NumberOfTrades}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Statistics
| Metric           | Value |
|------------------+-------|
| Average Profit   | {{printf "%.2f" .Stats.AverageProfit}} |
| Average Loss     | {{printf "%.2f" .Stats.AverageLoss}} |
| Expectancy       | {{printf "%.2f" .Stats.Expectancy}} |
| Win Rate %       | {{.Stats.WinPercentage}} |
| Profit Factor    | {{printf "%.2f" .Stats.ProfitFactor}} |
| R:R              | {{printf "%.2f" .Stats.RRR}} |
| Retention %      | {{.Stats.Retention}} |
| Sharpe Ratio     | {{printf "%.2f" .Stats.SharpeRatio}} |
| Lots             | {{printf "%.2f" .Stats.Lots}} |
| Avg Duration     | {{seconds .Stats.TradeDuration}} |
| Avg Win Duration | {{seconds .Stats.WinDuration}} |
| Avg Loss Duration| {{seconds .Stats.LossDuration}} |
| Assumed Drawdown | {{printf "%.2f" .Stats.AssumedDrawdown}} |
| Consistency      | {{.Consistency}} |

** Insights
| Metric       | Value | % of start |
|--------------+-------+------------|
| Trading Days | {{.Insights.TradingDays}} | |
| Current P/L  | {{printf "%.2f" .Insights.CurrentPL}} | {{printf "%.2f" .Insights.CurrentPLDelta}} |
| Biggest Loss | {{printf "%.2f" .Insights.BiggestLoss}} | {{printf "%.2f" .Insights.BiggestLossDelta}} |
| Largest Gain | {{printf "%.2f" .Insights.LargestGain}} | {{printf "%.2f" .Insights.LargestGainDelta}} |
| Drawdown     | {{printf "%.2f" .Insights.Drawdown}} | {{printf "%.2f" .Insights.DrawdownDelta}} |
| Max Profit   | {{printf "%.2f" .Insights.MaxProfit}} | {{printf "%.2f" .Insights.MaxProfitDelta}} |

{{- if .Notes }}

** Notes
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
