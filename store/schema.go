// store/schema.go
package store

// One relation for every coin with a coin discriminant column. The
// (account, coin, time) index backs both the daily dedup probe and the
// month selects.
const Schema = `
CREATE TABLE IF NOT EXISTS observations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account TEXT NOT NULL,
	coin TEXT NOT NULL,
	time DATETIME NOT NULL,
	equity TEXT NOT NULL,
	fiat_unit_price TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_observations_account_coin_time
	ON observations(account, coin, time);
`
