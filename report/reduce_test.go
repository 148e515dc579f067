package report

import (
	"testing"
	"time"

	"github.com/chaiwat/okfolio/portfolio"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func obsAt(day int, equity, price float64) portfolio.Observation {
	return portfolio.Observation{
		Owner:         portfolio.Account("main"),
		Coin:          "btc",
		Time:          time.Date(2024, 3, day, 9, 30, 0, 0, time.Local),
		Equity:        decimal.NewFromFloat(equity),
		UnitFiatPrice: decimal.NewFromFloat(price),
	}
}

func TestReduceEmptyInput(t *testing.T) {
	t.Parallel()

	rows := Reduce(nil, 3, 2)
	assert.Empty(t, rows)
}

func TestReduceSingleObservation(t *testing.T) {
	t.Parallel()

	rows := Reduce([]portfolio.Observation{obsAt(1, 100, 2)}, 3, 2)
	assert.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "100.00", r.Equity)
	assert.Equal(t, "0.00", r.Change)
	assert.Equal(t, "0.00%", r.ChangePercentage)
	assert.False(t, r.ChangeIsNegative)
	assert.Equal(t, "", r.MovingAverage)
	assert.Equal(t, "2.00", r.FiatUnitPrice)
	assert.Equal(t, "200.00", r.FiatTotal)
	assert.Equal(t, "0.00", r.FiatTotalChange)
	assert.Equal(t, "0.00%", r.FiatTotalChangePercentage)
	assert.False(t, r.FiatTotalChangeIsNegative)
}

func TestReduceThreeDaySeries(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		obsAt(1, 100, 1),
		obsAt(2, 110, 1),
		obsAt(3, 99, 1),
	}
	rows := Reduce(obs, 2, 2)
	assert.Len(t, rows, 3)

	// Day 2: first delta, window filled at index 1.
	assert.Equal(t, "10.00", rows[1].Change)
	assert.Equal(t, "10.00%", rows[1].ChangePercentage)
	assert.False(t, rows[1].ChangeIsNegative)
	assert.Equal(t, "105.00", rows[1].MovingAverage)

	// Day 3: drop of 11, average of the last two equities.
	assert.Equal(t, "-11.00", rows[2].Change)
	assert.Equal(t, "-10.00%", rows[2].ChangePercentage)
	assert.True(t, rows[2].ChangeIsNegative)
	assert.Equal(t, "104.50", rows[2].MovingAverage)
}

func TestReduceMovingAverageFirstAppearsAtWindowBoundary(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		obsAt(1, 10, 0),
		obsAt(2, 20, 0),
		obsAt(3, 30, 0),
		obsAt(4, 40, 0),
		obsAt(5, 50, 0),
	}
	rows := Reduce(obs, 3, 2)

	assert.Equal(t, "", rows[0].MovingAverage)
	assert.Equal(t, "", rows[1].MovingAverage)
	assert.Equal(t, "20.00", rows[2].MovingAverage) // (10+20+30)/3
	assert.Equal(t, "30.00", rows[3].MovingAverage) // (20+30+40)/3
	assert.Equal(t, "40.00", rows[4].MovingAverage) // (30+40+50)/3
}

func TestReduceWindowOfOne(t *testing.T) {
	t.Parallel()

	rows := Reduce([]portfolio.Observation{obsAt(1, 42, 0)}, 1, 2)
	assert.Equal(t, "42.00", rows[0].MovingAverage)
}

func TestReduceZeroEquityGuards(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		obsAt(1, 0, 0),
		obsAt(2, 50, 0),
	}
	rows := Reduce(obs, 5, 2)

	// Previous equity was zero: the delta is real, the percentage is
	// guarded and the row is never flagged negative.
	assert.Equal(t, "50.00", rows[1].Change)
	assert.Equal(t, "0.00%", rows[1].ChangePercentage)
	assert.False(t, rows[1].ChangeIsNegative)
}

func TestReduceDropToZeroIsNegative(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		obsAt(1, 50, 0),
		obsAt(2, 0, 0),
	}
	rows := Reduce(obs, 5, 2)

	assert.Equal(t, "-50.00", rows[1].Change)
	assert.Equal(t, "-100.00%", rows[1].ChangePercentage)
	assert.True(t, rows[1].ChangeIsNegative)
}

func TestReduceFiatColumns(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		obsAt(1, 2, 100), // 200 THB
		obsAt(2, 2, 150), // 300 THB
		obsAt(3, 2, 120), // 240 THB
	}
	rows := Reduce(obs, 5, 2)

	assert.Equal(t, "300.00", rows[1].FiatTotal)
	assert.Equal(t, "100.00", rows[1].FiatTotalChange)
	assert.Equal(t, "50.00%", rows[1].FiatTotalChangePercentage)
	assert.False(t, rows[1].FiatTotalChangeIsNegative)

	assert.Equal(t, "240.00", rows[2].FiatTotal)
	assert.Equal(t, "-60.00", rows[2].FiatTotalChange)
	assert.Equal(t, "-20.00%", rows[2].FiatTotalChangePercentage)
	assert.True(t, rows[2].FiatTotalChangeIsNegative)
}

func TestReduceZeroFiatPriceGuards(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		obsAt(1, 100, 0), // fiat total 0
		obsAt(2, 110, 3),
	}
	rows := Reduce(obs, 5, 2)

	assert.Equal(t, "0.00", rows[0].FiatTotal)
	assert.Equal(t, "330.00", rows[1].FiatTotal)
	assert.Equal(t, "0.00%", rows[1].FiatTotalChangePercentage)
	assert.False(t, rows[1].FiatTotalChangeIsNegative)
}

func TestReduceDeterministic(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		obsAt(1, 100.123456, 31.5),
		obsAt(2, 99.654321, 30.25),
		obsAt(3, 101.111111, 32.75),
	}

	a := Reduce(obs, 2, 4)
	b := Reduce(obs, 2, 4)
	assert.Equal(t, a, b)
}

func TestReducePrecision(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		obsAt(1, 1, 0),
		obsAt(2, 3, 0),
	}
	rows := Reduce(obs, 5, 3)

	assert.Equal(t, "3.000", rows[1].Equity)
	assert.Equal(t, "2.000", rows[1].Change)
	assert.Equal(t, "200.000%", rows[1].ChangePercentage)
}
