// Package report derives monthly report rows from ordered equity
// observations: day-over-day deltas, a trailing moving average and the
// fiat valuation columns.
package report

import (
	"github.com/chaiwat/okfolio/portfolio"
	"github.com/shopspring/decimal"
)

// Row is one rendered table line. Display fields are pre-formatted to
// the configured precision; percentages carry a trailing '%'. Rows are
// recomputed from the store on every render and never persisted.
type Row struct {
	Time             string
	Equity           string
	Change           string
	ChangePercentage string
	ChangeIsNegative bool
	MovingAverage    string

	FiatUnitPrice             string
	FiatTotal                 string
	FiatTotalChange           string
	FiatTotalChangePercentage string
	FiatTotalChangeIsNegative bool
}

var hundred = decimal.NewFromInt(100)

// Reduce turns a time-ordered observation series into report rows in a
// single left-to-right pass. window is the moving-average size (the
// average stays blank until window samples have been seen), precision
// the number of display decimals. Arithmetic is done on decimals at
// full precision; rounding happens only when a row is emitted, so no
// rounding error accumulates across the pass. Empty input yields no
// rows.
func Reduce(obs []portfolio.Observation, window, precision int) []Row {
	rows := make([]Row, 0, len(obs))

	var (
		equityWindow []decimal.Decimal
		prevEquity   decimal.Decimal
		prevFiat     decimal.Decimal
		hasPrev      bool
	)
	prec := int32(precision)

	for i, o := range obs {
		equityWindow = append(equityWindow, o.Equity)
		if len(equityWindow) > window {
			equityWindow = equityWindow[1:]
		}

		movingAverage := ""
		if i >= window-1 {
			sum := decimal.Zero
			for _, e := range equityWindow {
				sum = sum.Add(e)
			}
			movingAverage = sum.Div(decimal.NewFromInt(int64(window))).StringFixed(prec)
		}

		change := decimal.Zero
		changePct := decimal.Zero
		changeNegative := false
		if hasPrev {
			change = o.Equity.Sub(prevEquity)
			if !prevEquity.IsZero() {
				changePct = o.Equity.Div(prevEquity).Mul(hundred).Sub(hundred)
				changeNegative = o.Equity.LessThan(prevEquity)
			}
		}

		fiatTotal := o.Equity.Mul(o.UnitFiatPrice)
		fiatChange := decimal.Zero
		fiatChangePct := decimal.Zero
		fiatNegative := false
		if hasPrev {
			fiatChange = fiatTotal.Sub(prevFiat)
			if !prevFiat.IsZero() {
				fiatChangePct = fiatTotal.Div(prevFiat).Mul(hundred).Sub(hundred)
				fiatNegative = fiatTotal.LessThan(prevFiat)
			}
		}

		rows = append(rows, Row{
			Time:             o.Time.Format("2006-01-02 15:04:05"),
			Equity:           o.Equity.StringFixed(prec),
			Change:           change.StringFixed(prec),
			ChangePercentage: changePct.StringFixed(prec) + "%",
			ChangeIsNegative: changeNegative,
			MovingAverage:    movingAverage,

			FiatUnitPrice:             o.UnitFiatPrice.StringFixed(prec),
			FiatTotal:                 fiatTotal.StringFixed(prec),
			FiatTotalChange:           fiatChange.StringFixed(prec),
			FiatTotalChangePercentage: fiatChangePct.StringFixed(prec) + "%",
			FiatTotalChangeIsNegative: fiatNegative,
		})

		prevEquity = o.Equity
		prevFiat = fiatTotal
		hasPrev = true
	}

	return rows
}
