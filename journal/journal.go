// Package journal persists accounts and trades and renders them for export.
package journal

import (
	"errors"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

// ErrNotFound is returned when an account or trade does not exist.
var ErrNotFound = errors.New("not found")

// Store is the trade lookup the analytics run against: account metadata with
// its trades, and trades closed within a window.
type Store interface {
	RecordAccount(trade.Account) (string, error)
	RecordTrade(trade.Trade) (string, error)
	GetAccount(id string) (*trade.Account, error)
	ListAccounts() ([]*trade.Account, error)
	GetTrade(id string) (trade.Trade, error)
	ListTradesClosedBetween(accountID string, start, end time.Time) ([]trade.Trade, error)
	Close() error
}
