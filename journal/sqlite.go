package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/trade"
)

// SQLite is a Store backed by a single SQLite database file.
type SQLite struct {
	db  *sql.DB
	log *zap.Logger
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db, log: zap.NewNop()}, nil
}

// WithLogger sets the logger used for write and query diagnostics.
func (j *SQLite) WithLogger(l *zap.Logger) *SQLite {
	if l != nil {
		j.log = l
	}
	return j
}

// RecordAccount inserts or replaces an account and returns its ID, assigning
// one when a.ID is empty. Trades on a are not written.
func (j *SQLite) RecordAccount(a trade.Account) (string, error) {
	if a.OpenTime.IsZero() {
		return "", fmt.Errorf("%w: account open time is required", trade.ErrValidation)
	}
	if a.ID == "" {
		a.ID = id.At(a.OpenTime)
	}

	_, err := j.db.Exec(`
		INSERT INTO accounts
		(account_id, name, number, balance, initial_balance, open_time, last_traded)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			name = excluded.name,
			number = excluded.number,
			balance = excluded.balance,
			initial_balance = excluded.initial_balance,
			open_time = excluded.open_time,
			last_traded = excluded.last_traded`,
		a.ID, a.Name, a.Number, a.Balance, a.InitialBalance,
		a.OpenTime.UTC(), nullTime(a.LastTraded),
	)
	if err != nil {
		return "", fmt.Errorf("record account %s: %w", a.ID, err)
	}

	j.log.Debug("recorded account", zap.String("account", a.ID), zap.String("name", a.Name))
	return a.ID, nil
}

// RecordTrade inserts or replaces a trade and returns its ID, assigning one
// when t.ID is empty. A closed trade moves its profit into the account
// balance and advances the account's last traded time.
func (j *SQLite) RecordTrade(t trade.Trade) (string, error) {
	if t.AccountID == "" {
		return "", fmt.Errorf("%w: trade account is required", trade.ErrValidation)
	}
	if t.OpenTime.IsZero() {
		return "", fmt.Errorf("%w: trade open time is required", trade.ErrValidation)
	}
	if t.IsClosed() && t.CloseTime.Before(t.OpenTime) {
		return "", fmt.Errorf("%w: trade closes before it opens", trade.ErrValidation)
	}
	if t.ID == "" {
		t.ID = id.At(t.OpenTime)
	}

	tx, err := j.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(*) FROM accounts WHERE account_id = ?`, t.AccountID).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("lookup account %s: %w", t.AccountID, err)
	}
	if exists == 0 {
		return "", fmt.Errorf("account %q: %w", t.AccountID, ErrNotFound)
	}

	// profit already booked to the balance by an earlier version of this trade
	var booked float64
	var prevClose sql.NullTime
	err = tx.QueryRow(`SELECT net_profit, close_time FROM trades WHERE trade_id = ?`, t.ID).Scan(&booked, &prevClose)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return "", fmt.Errorf("lookup trade %s: %w", t.ID, err)
	case !prevClose.Valid:
		booked = 0
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO trades
		(trade_id, account_id, instrument, lot_size, open_price, close_price, open_time, close_time, net_profit, stop_loss, take_profit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.AccountID, t.Instrument, t.LotSize, t.OpenPrice, t.ClosePrice,
		t.OpenTime.UTC(), nullTime(t.CloseTime), t.NetProfit, t.StopLoss, t.TakeProfit,
	)
	if err != nil {
		return "", fmt.Errorf("record trade %s: %w", t.ID, err)
	}

	var profit float64
	if t.IsClosed() {
		profit = t.NetProfit
	}
	_, err = tx.Exec(`UPDATE accounts SET balance = balance + ? WHERE account_id = ?`, profit-booked, t.AccountID)
	if err != nil {
		return "", fmt.Errorf("update balance %s: %w", t.AccountID, err)
	}

	if t.IsClosed() {
		_, err = tx.Exec(`
			UPDATE accounts SET last_traded = ?
			WHERE account_id = ? AND (last_traded IS NULL OR last_traded < ?)`,
			t.CloseTime.UTC(), t.AccountID, t.CloseTime.UTC(),
		)
		if err != nil {
			return "", fmt.Errorf("update last traded %s: %w", t.AccountID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit trade %s: %w", t.ID, err)
	}

	j.log.Debug("recorded trade",
		zap.String("trade", t.ID),
		zap.String("account", t.AccountID),
		zap.Bool("closed", t.IsClosed()),
		zap.Float64("net_profit", t.NetProfit),
	)
	return t.ID, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
