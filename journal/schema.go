package journal

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	account_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	number TEXT NOT NULL,
	balance REAL NOT NULL,
	initial_balance REAL NOT NULL,
	open_time DATETIME NOT NULL,
	last_traded DATETIME
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL REFERENCES accounts(account_id),
	instrument TEXT NOT NULL,
	lot_size REAL NOT NULL,
	open_price REAL NOT NULL,
	close_price REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME,
	net_profit REAL NOT NULL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_account_close ON trades(account_id, close_time);
`
