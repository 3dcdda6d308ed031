package trade

import "time"

// Account is the metadata the analytics need about a trading account, with
// its trades as supplied by the journal.
type Account struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Number         string    `json:"number" yaml:"number"`
	Balance        float64   `json:"balance" yaml:"balance"`
	InitialBalance float64   `json:"initialBalance" yaml:"initial_balance"`
	OpenTime       time.Time `json:"openTime" yaml:"open_time"`
	LastTraded     time.Time `json:"lastTraded,omitempty" yaml:"last_traded,omitempty"` // zero = never traded
	Trades         []Trade   `json:"trades,omitempty" yaml:"trades,omitempty"`
}

func (a *Account) HasTraded() bool {
	return a != nil && !a.LastTraded.IsZero()
}

// TotalProfit is the raw sum of net profit over every trade on the account,
// open or closed.
func (a *Account) TotalProfit() float64 {
	var sum float64
	for _, t := range a.Trades {
		sum += t.NetProfit
	}
	return sum
}
