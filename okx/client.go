// Package okx fetches futures account equity from the OKX REST API.
package okx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the production REST endpoint.
const DefaultBaseURL = "https://www.okex.com"

const (
	timePath     = "/api/general/v3/time"
	accountsPath = "/api/futures/v3/accounts/"

	// Request timestamps are expected in UTC+8 while the server
	// epoch endpoint reports plain UTC.
	timestampOffset = 8 * 60 * 60
)

// Credentials holds one account's API key set.
type Credentials struct {
	APIKey     string
	SecretKey  string
	Passphrase string
}

// Client is an OKX REST API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against baseURL, or the production
// endpoint when baseURL is empty.
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

type timeResponse struct {
	Epoch     string `json:"epoch"`
	ErrorCode string `json:"error_code"`
}

// ServerTime returns the exchange's epoch seconds. Signed requests
// must carry the server's clock, not the local one.
func (c *Client) ServerTime(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+timePath, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("server time (status %d): %s", resp.StatusCode, string(body))
	}

	var tr timeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return 0, fmt.Errorf("decode time response: %w", err)
	}
	if tr.Epoch == "" {
		return 0, fmt.Errorf("server time API error (code %s)", tr.ErrorCode)
	}

	epoch, err := strconv.ParseFloat(tr.Epoch, 64)
	if err != nil {
		return 0, fmt.Errorf("parse epoch %q: %w", tr.Epoch, err)
	}
	return epoch, nil
}

type accountResponse struct {
	Equity    string      `json:"equity"`
	ErrorCode json.Number `json:"error_code"`
	Message   string      `json:"message"`
}

// Equity fetches the futures account equity for one coin. The request
// is signed with the account's credentials against the server clock.
func (c *Client) Equity(ctx context.Context, creds Credentials, coin string) (decimal.Decimal, error) {
	epoch, err := c.ServerTime(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	timestamp := strconv.FormatFloat(epoch+timestampOffset, 'f', -1, 64)

	requestPath := accountsPath + coin
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+requestPath, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("OK-ACCESS-KEY", creds.APIKey)
	req.Header.Set("OK-ACCESS-SIGN", Sign(timestamp, http.MethodGet, requestPath, "", creds.SecretKey))
	req.Header.Set("OK-ACCESS-TIMESTAMP", timestamp)
	req.Header.Set("OK-ACCESS-PASSPHRASE", creds.Passphrase)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return decimal.Zero, fmt.Errorf("accounts %s (status %d): %s", coin, resp.StatusCode, string(body))
	}

	var ar accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return decimal.Zero, fmt.Errorf("decode accounts response: %w", err)
	}
	if ar.Equity == "" {
		return decimal.Zero, fmt.Errorf("accounts %s API error (code %s): %s", coin, ar.ErrorCode, ar.Message)
	}

	equity, err := decimal.NewFromString(ar.Equity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse equity %q: %w", ar.Equity, err)
	}
	return equity, nil
}
