package report

import (
	"github.com/chaiwat/okfolio/portfolio"
)

// Aggregate folds one coin's raw observations across all accounts into
// a synthetic per-day summary series: one observation per calendar day
// whose equity is the sum over every account's row that day. The unit
// fiat price is taken from the day's first row; same-day rows of one
// coin carry comparable prices, so no averaging is done. Input must be
// time-ordered; output is day-ordered with day resolution and belongs
// to the summary owner.
func Aggregate(obs []portfolio.Observation) []portfolio.Observation {
	var (
		out   []portfolio.Observation
		index = map[string]int{}
	)

	for _, o := range obs {
		day := o.Day()
		key := day.Format("2006-01-02")

		if i, ok := index[key]; ok {
			out[i].Equity = out[i].Equity.Add(o.Equity)
			continue
		}

		index[key] = len(out)
		out = append(out, portfolio.Observation{
			Owner:         portfolio.Summary(),
			Coin:          o.Coin,
			Time:          day,
			Equity:        o.Equity,
			UnitFiatPrice: o.UnitFiatPrice,
		})
	}

	return out
}
