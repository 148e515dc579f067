// Package portfolio holds the domain types shared by the ingestion and
// reporting pipelines: coins, series owners and equity observations.
package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coin is a futures market symbol, lower case, e.g. "btc".
type Coin string

// Coins is the whitelist of symbols the exchange exposes futures
// accounts for. Config validation rejects anything else.
var Coins = map[Coin]bool{
	"btc": true,
	"btg": true,
	"etc": true,
	"bch": true,
	"xrp": true,
	"eth": true,
	"eos": true,
	"ltc": true,
}

// SummaryLabel is the storage/display label of the cross-account
// summary series. It is reserved and may not be used as an account name.
const SummaryLabel = "summary"

// Owner identifies who a series of observations belongs to: either a
// single configured account, or the synthetic summary series built by
// summing equity across all accounts. Using a tagged type instead of a
// magic account string removes the collision risk with real names.
type Owner struct {
	name    string
	summary bool
}

// Account returns the owner for a single named account.
func Account(name string) Owner {
	return Owner{name: name}
}

// Summary returns the owner of the cross-account summary series.
func Summary() Owner {
	return Owner{summary: true}
}

// IsSummary reports whether the owner is the summary series.
func (o Owner) IsSummary() bool { return o.summary }

// Label returns the string used for storage keys, report directories
// and log fields.
func (o Owner) Label() string {
	if o.summary {
		return SummaryLabel
	}
	return o.name
}

// Observation is one recorded equity sample. Equity is in the
// exchange's native unit for the coin; UnitFiatPrice is the price of
// one coin unit in the reference fiat currency at sample time, zero
// when the fiat feed is disabled or the symbol is not listed there.
type Observation struct {
	Owner         Owner
	Coin          Coin
	Time          time.Time
	Equity        decimal.Decimal
	UnitFiatPrice decimal.Decimal
}

// Day returns the observation's timestamp truncated to its local
// calendar day.
func (o Observation) Day() time.Time {
	y, m, d := o.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, o.Time.Location())
}
