// Package store persists equity observations in a local SQLite
// database. Rows are append-only: nothing in the pipeline ever updates
// or deletes an observation.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/chaiwat/okfolio/portfolio"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// timeLayout is the storage format for observation timestamps. It
// keeps SQLite's DATE() and strftime() usable on the column.
const timeLayout = "2006-01-02 15:04:05"

type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the observation database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Insert appends an observation unconditionally. This is the forced
// path, permitting several samples on the same day.
func (s *Store) Insert(obs portfolio.Observation) error {
	_, err := s.db.Exec(`
		INSERT INTO observations (account, coin, time, equity, fiat_unit_price)
		VALUES (?, ?, ?, ?, ?)`,
		obs.Owner.Label(), string(obs.Coin), obs.Time.Format(timeLayout),
		obs.Equity.String(), obs.UnitFiatPrice.String(),
	)
	return err
}

// InsertDaily appends the observation only if no row exists yet for the
// same (account, coin, calendar day). The check and the insert are a
// single statement, so the daily-dedup contract holds even if a future
// caller runs it concurrently. Returns whether a row was written.
func (s *Store) InsertDaily(obs portfolio.Observation) (bool, error) {
	ts := obs.Time.Format(timeLayout)
	res, err := s.db.Exec(`
		INSERT INTO observations (account, coin, time, equity, fiat_unit_price)
		SELECT ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM observations
			WHERE account = ? AND coin = ? AND DATE(time) = DATE(?)
		)`,
		obs.Owner.Label(), string(obs.Coin), ts,
		obs.Equity.String(), obs.UnitFiatPrice.String(),
		obs.Owner.Label(), string(obs.Coin), ts,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HasEntryForDay reports whether an observation exists for the owner,
// coin and the calendar day of t.
func (s *Store) HasEntryForDay(owner portfolio.Owner, coin portfolio.Coin, t time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM observations
			WHERE account = ? AND coin = ? AND DATE(time) = DATE(?)
		)`,
		owner.Label(), string(coin), t.Format(timeLayout),
	).Scan(&exists)
	return exists, err
}

// SelectMonth returns the owner's observations for a coin whose month
// component matches, in time order. The match is on the month alone,
// across years, mirroring how reports are laid out on disk.
func (s *Store) SelectMonth(owner portfolio.Owner, coin portfolio.Coin, month time.Month) ([]portfolio.Observation, error) {
	rows, err := s.db.Query(`
		SELECT account, coin, time, equity, fiat_unit_price
		FROM observations
		WHERE account = ? AND coin = ? AND strftime('%m', time) = ?
		ORDER BY datetime(time)`,
		owner.Label(), string(coin), fmt.Sprintf("%02d", int(month)),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanObservations(rows)
}

// SelectMonthAllAccounts returns the raw observations of every real
// account for a coin and month, in time order. The aggregator turns
// this into the per-day summary series.
func (s *Store) SelectMonthAllAccounts(coin portfolio.Coin, month time.Month) ([]portfolio.Observation, error) {
	rows, err := s.db.Query(`
		SELECT account, coin, time, equity, fiat_unit_price
		FROM observations
		WHERE coin = ? AND strftime('%m', time) = ?
		ORDER BY datetime(time)`,
		string(coin), fmt.Sprintf("%02d", int(month)),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanObservations(rows)
}

func scanObservations(rows *sql.Rows) ([]portfolio.Observation, error) {
	var out []portfolio.Observation
	for rows.Next() {
		var (
			account string
			coin    string
			ts      string
			equity  string
			price   string
		)
		if err := rows.Scan(&account, &coin, &ts, &equity, &price); err != nil {
			return nil, err
		}

		t, err := time.ParseInLocation(timeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", ts, err)
		}
		eq, err := decimal.NewFromString(equity)
		if err != nil {
			return nil, fmt.Errorf("parse equity %q: %w", equity, err)
		}
		pr, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse fiat unit price %q: %w", price, err)
		}

		out = append(out, portfolio.Observation{
			Owner:         portfolio.Account(account),
			Coin:          portfolio.Coin(coin),
			Time:          t,
			Equity:        eq,
			UnitFiatPrice: pr,
		})
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
