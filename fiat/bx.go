// Package fiat looks up coin prices in the reference fiat currency
// (THB) from the BX market feed. The whole market snapshot is fetched
// once per run and probed per coin; a missing pairing or a disabled
// feed degrades to a zero price rather than an error.
package fiat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chaiwat/okfolio/portfolio"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public BX market API.
const DefaultBaseURL = "https://bx.in.th/api/"

// ReferenceCurrency is the fiat side of every pairing we care about.
const ReferenceCurrency = "THB"

type pairing struct {
	PrimaryCurrency   string      `json:"primary_currency"`
	SecondaryCurrency string      `json:"secondary_currency"`
	LastPrice         json.Number `json:"last_price"`
}

// Snapshot is one fetch of the whole BX market. A nil snapshot is
// valid and returns zero for every coin.
type Snapshot struct {
	pairings map[string]pairing
}

// Client is a BX market API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against baseURL, or the public endpoint
// when baseURL is empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads the current market snapshot.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("market snapshot (status %d): %s", resp.StatusCode, string(body))
	}

	var pairings map[string]pairing
	if err := json.NewDecoder(resp.Body).Decode(&pairings); err != nil {
		return nil, fmt.Errorf("decode market snapshot: %w", err)
	}

	return &Snapshot{pairings: pairings}, nil
}

// UnitPrice returns the coin's last THB price, or zero when the
// snapshot is nil or the pairing is not listed.
func (s *Snapshot) UnitPrice(coin portfolio.Coin) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}

	symbol := strings.ToUpper(string(coin))
	for _, p := range s.pairings {
		if p.PrimaryCurrency == ReferenceCurrency && p.SecondaryCurrency == symbol {
			price, err := decimal.NewFromString(p.LastPrice.String())
			if err != nil {
				return decimal.Zero
			}
			return price
		}
	}
	return decimal.Zero
}
