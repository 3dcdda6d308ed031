package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/trade"
)

const tradeColumns = `trade_id, account_id, instrument, lot_size, open_price, close_price, open_time, close_time, net_profit, stop_loss, take_profit`

const accountColumns = `account_id, name, number, balance, initial_balance, open_time, last_traded`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (trade.Trade, error) {
	var t trade.Trade
	var closed sql.NullTime
	err := s.Scan(
		&t.ID,
		&t.AccountID,
		&t.Instrument,
		&t.LotSize,
		&t.OpenPrice,
		&t.ClosePrice,
		&t.OpenTime,
		&closed,
		&t.NetProfit,
		&t.StopLoss,
		&t.TakeProfit,
	)
	if err != nil {
		return trade.Trade{}, err
	}
	t.OpenTime = t.OpenTime.UTC()
	if closed.Valid {
		t.CloseTime = closed.Time.UTC()
	}
	return t, nil
}

func scanAccount(s scanner) (*trade.Account, error) {
	a := &trade.Account{}
	var last sql.NullTime
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Number,
		&a.Balance,
		&a.InitialBalance,
		&a.OpenTime,
		&last,
	)
	if err != nil {
		return nil, err
	}
	a.OpenTime = a.OpenTime.UTC()
	if last.Valid {
		a.LastTraded = last.Time.UTC()
	}
	return a, nil
}

func collectTrades(rows *sql.Rows) ([]trade.Trade, error) {
	defer rows.Close()

	out := []trade.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTrade returns a single trade by ID.
func (j *SQLite) GetTrade(tradeID string) (trade.Trade, error) {
	row := j.db.QueryRow(`SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, tradeID)

	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trade.Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return trade.Trade{}, err
	}
	return t, nil
}

// GetAccount returns the account with all of its trades, closed trades in
// close time order followed by those still open.
func (j *SQLite) GetAccount(accountID string) (*trade.Account, error) {
	row := j.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE account_id = ?`, accountID)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %q: %w", accountID, ErrNotFound)
		}
		return nil, err
	}

	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE account_id = ?
		ORDER BY close_time IS NULL, close_time ASC, open_time ASC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list trades %s: %w", accountID, err)
	}
	if a.Trades, err = collectTrades(rows); err != nil {
		return nil, fmt.Errorf("list trades %s: %w", accountID, err)
	}

	j.log.Debug("loaded account", zap.String("account", a.ID), zap.Int("trades", len(a.Trades)))
	return a, nil
}

// ListAccounts returns every account with its trades, ordered by name.
func (j *SQLite) ListAccounts() ([]*trade.Account, error) {
	rows, err := j.db.Query(`SELECT account_id FROM accounts ORDER BY name ASC, account_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*trade.Account, 0, len(ids))
	for _, id := range ids {
		a, err := j.GetAccount(id)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// ListTradesClosedBetween returns the account's trades whose close_time is
// within [start, end).
func (j *SQLite) ListTradesClosedBetween(accountID string, start, end time.Time) ([]trade.Trade, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE account_id = ? AND close_time >= ? AND close_time < ?
		ORDER BY close_time ASC, open_time ASC`, accountID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}
