package report

import (
	"testing"
	"time"

	"github.com/chaiwat/okfolio/portfolio"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func accountObs(account string, day, hour int, equity, price float64) portfolio.Observation {
	return portfolio.Observation{
		Owner:         portfolio.Account(account),
		Coin:          "btc",
		Time:          time.Date(2024, 3, day, hour, 0, 0, 0, time.Local),
		Equity:        decimal.NewFromFloat(equity),
		UnitFiatPrice: decimal.NewFromFloat(price),
	}
}

func TestAggregateSumsAccountsPerDay(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		accountObs("a", 1, 9, 10, 500),
		accountObs("b", 1, 10, 5, 510),
	}
	out := Aggregate(obs)

	assert.Len(t, out, 1)
	assert.True(t, out[0].Owner.IsSummary())
	assert.Equal(t, portfolio.SummaryLabel, out[0].Owner.Label())
	assert.True(t, out[0].Equity.Equal(decimal.NewFromInt(15)), "got %s", out[0].Equity)
}

func TestAggregateRepresentativePriceIsFirstOfDay(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		accountObs("a", 1, 9, 10, 500),
		accountObs("b", 1, 10, 5, 510),
	}
	out := Aggregate(obs)

	assert.True(t, out[0].UnitFiatPrice.Equal(decimal.NewFromInt(500)), "got %s", out[0].UnitFiatPrice)
}

func TestAggregateGroupsByCalendarDay(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		accountObs("a", 1, 9, 10, 500),
		accountObs("b", 1, 23, 5, 510),
		accountObs("a", 2, 9, 12, 520),
		accountObs("b", 2, 9, 6, 520),
		accountObs("a", 3, 9, 11, 530),
	}
	out := Aggregate(obs)

	assert.Len(t, out, 3)
	assert.True(t, out[0].Equity.Equal(decimal.NewFromInt(15)))
	assert.True(t, out[1].Equity.Equal(decimal.NewFromInt(18)))
	assert.True(t, out[2].Equity.Equal(decimal.NewFromInt(11)))

	// Day resolution, ordered by day.
	for i, o := range out {
		assert.Equal(t, 0, o.Time.Hour())
		assert.Equal(t, i+1, o.Time.Day())
	}
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Aggregate(nil))
}

func TestAggregateFeedsReducer(t *testing.T) {
	t.Parallel()

	obs := []portfolio.Observation{
		accountObs("a", 1, 9, 10, 1),
		accountObs("b", 1, 10, 5, 1),
		accountObs("a", 2, 9, 12, 1),
		accountObs("b", 2, 10, 8, 1),
	}
	rows := Reduce(Aggregate(obs), 2, 2)

	assert.Len(t, rows, 2)
	assert.Equal(t, "15.00", rows[0].Equity)
	assert.Equal(t, "20.00", rows[1].Equity)
	assert.Equal(t, "5.00", rows[1].Change)
	assert.Equal(t, "17.50", rows[1].MovingAverage)
}
