package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chaiwat/okfolio/config"
	"github.com/chaiwat/okfolio/portfolio"
	"github.com/chaiwat/okfolio/render"
	"github.com/chaiwat/okfolio/report"
	"github.com/rs/zerolog"
)

// ObservationReader is the slice of the store report generation needs.
type ObservationReader interface {
	SelectMonth(owner portfolio.Owner, coin portfolio.Coin, month time.Month) ([]portfolio.Observation, error)
	SelectMonthAllAccounts(coin portfolio.Coin, month time.Month) ([]portfolio.Observation, error)
}

// Generator renders monthly HTML reports from stored observations.
type Generator struct {
	Store    ObservationReader
	Renderer *render.Renderer
	Log      zerolog.Logger
}

// Run generates reports for every configured account/coin and, when
// requested, the cross-account summary series per coin. Months covered
// are either the current one or all twelve, per configuration. Every
// failure is scoped to one account/coin/month: it is logged and the
// remaining reports are still generated.
func (g *Generator) Run(cfg *config.Config, accounts, summary bool) {
	months := monthsToGenerate(cfg)

	if accounts {
		for _, account := range cfg.Accounts {
			owner := portfolio.Account(account.Name)
			for _, coin := range account.Coins {
				for _, month := range months {
					g.writeMonth(cfg, owner, portfolio.Coin(coin), month)
				}
			}
		}
	}

	if summary {
		for _, coin := range cfg.Coins() {
			for _, month := range months {
				g.writeSummaryMonth(cfg, coin, month)
			}
		}
	}
}

func monthsToGenerate(cfg *config.Config) []time.Month {
	if cfg.CurrentMonthOnly {
		return []time.Month{time.Now().Month()}
	}
	months := make([]time.Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, m)
	}
	return months
}

func (g *Generator) writeMonth(cfg *config.Config, owner portfolio.Owner, coin portfolio.Coin, month time.Month) {
	log := g.Log.With().
		Str("account", owner.Label()).
		Str("coin", string(coin)).
		Int("month", int(month)).
		Logger()

	obs, err := g.Store.SelectMonth(owner, coin, month)
	if err != nil {
		log.Error().Err(err).Msg("query failed")
		return
	}

	g.reduceAndWrite(cfg, owner, coin, month, obs, log)
}

func (g *Generator) writeSummaryMonth(cfg *config.Config, coin portfolio.Coin, month time.Month) {
	log := g.Log.With().
		Str("account", portfolio.SummaryLabel).
		Str("coin", string(coin)).
		Int("month", int(month)).
		Logger()

	obs, err := g.Store.SelectMonthAllAccounts(coin, month)
	if err != nil {
		log.Error().Err(err).Msg("query failed")
		return
	}

	g.reduceAndWrite(cfg, portfolio.Summary(), coin, month, report.Aggregate(obs), log)
}

func (g *Generator) reduceAndWrite(cfg *config.Config, owner portfolio.Owner, coin portfolio.Coin, month time.Month, obs []portfolio.Observation, log zerolog.Logger) {
	rows := report.Reduce(obs, cfg.MovingAverage, cfg.DecimalPoints)
	if len(rows) == 0 {
		log.Info().Msg("no data for month, skipping")
		return
	}

	// The on-disk layout is keyed by year; a month's rows all come
	// from one year because samples are daily.
	year := fmt.Sprintf("%d", obs[len(obs)-1].Time.Year())

	doc, err := g.Renderer.Render(render.Data{
		MonthName:    month.String(),
		Year:         year,
		CoinLabel:    strings.ToUpper(string(coin)),
		AccountLabel: owner.Label(),
		Rows:         rows,
	})
	if err != nil {
		log.Error().Err(err).Msg("render failed")
		return
	}

	dir := filepath.Join(cfg.ReportsDir, owner.Label(), string(coin), year)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Error().Err(err).Msg("create report directory failed")
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("%d.html", int(month)))
	if err := os.WriteFile(path, doc, 0644); err != nil {
		log.Error().Err(err).Msg("write report failed")
		return
	}

	log.Info().Str("path", path).Int("rows", len(rows)).Msg("report written")
}
