// Package pipeline orchestrates the two sequential phases of a run:
// ingestion (fetch equity per account/coin, persist at most one sample
// per day) and report generation. Everything runs single-threaded; the
// process is the sole writer of the store during a run.
package pipeline

import (
	"context"
	"time"

	"github.com/chaiwat/okfolio/config"
	"github.com/chaiwat/okfolio/okx"
	"github.com/chaiwat/okfolio/pkg/id"
	"github.com/chaiwat/okfolio/portfolio"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// EquitySource abstracts the exchange: it yields one equity value per
// account/coin. Signing and transport live behind it.
type EquitySource interface {
	Equity(ctx context.Context, creds okx.Credentials, coin string) (decimal.Decimal, error)
}

// PriceSource yields a coin's unit price in the reference fiat
// currency, zero when unavailable.
type PriceSource interface {
	UnitPrice(coin portfolio.Coin) decimal.Decimal
}

// ObservationWriter is the slice of the store the ingestion phase
// needs: the forced append and the atomic once-per-day append.
type ObservationWriter interface {
	Insert(obs portfolio.Observation) error
	InsertDaily(obs portfolio.Observation) (bool, error)
}

// Ingestor performs one sampling pass over all accounts and coins.
type Ingestor struct {
	Store  ObservationWriter
	Source EquitySource
	Prices PriceSource

	// Force bypasses the daily dedup, recording a sample even when
	// one already exists for today.
	Force bool

	Log zerolog.Logger
}

// Run fetches and conditionally persists one observation per
// account/coin. A fetch failure is logged with its context and that
// account/coin skipped; the pass always continues to the end. The
// returned error only reflects store-level failures.
func (in *Ingestor) Run(ctx context.Context, cfg *config.Config) error {
	log := in.Log.With().Str("run_id", id.New()).Logger()

	var firstErr error
	for _, account := range cfg.Accounts {
		creds := okx.Credentials{
			APIKey:     account.APIKey,
			SecretKey:  account.SecretKey,
			Passphrase: account.Passphrase,
		}

		for _, coin := range account.Coins {
			clog := log.With().Str("account", account.Name).Str("coin", coin).Logger()

			equity, err := in.Source.Equity(ctx, creds, coin)
			if err != nil {
				clog.Error().Err(err).Msg("equity fetch failed, skipping")
				continue
			}

			price := decimal.Zero
			if in.Prices != nil {
				price = in.Prices.UnitPrice(portfolio.Coin(coin))
			}

			obs := portfolio.Observation{
				Owner:         portfolio.Account(account.Name),
				Coin:          portfolio.Coin(coin),
				Time:          time.Now(),
				Equity:        equity,
				UnitFiatPrice: price,
			}

			if in.Force {
				if err := in.Store.Insert(obs); err != nil {
					clog.Error().Err(err).Msg("insert failed")
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				clog.Info().Str("equity", equity.String()).Msg("observation recorded (forced)")
				continue
			}

			inserted, err := in.Store.InsertDaily(obs)
			if err != nil {
				clog.Error().Err(err).Msg("insert failed")
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if inserted {
				clog.Info().Str("equity", equity.String()).Msg("observation recorded")
			} else {
				clog.Debug().Msg("already sampled today, ignoring")
			}
		}
	}

	return firstErr
}
