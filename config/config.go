package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/chaiwat/okfolio/portfolio"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete run configuration. It is loaded once
// at startup and read-only afterwards.
type Config struct {
	Accounts []AccountConfig `json:"accounts" yaml:"accounts"`

	// MovingAverage is the trailing window size for the report's
	// moving-average column.
	MovingAverage int `json:"moving_average" yaml:"moving_average"`

	// DecimalPoints is the display precision for report values.
	DecimalPoints int `json:"decimal_points" yaml:"decimal_points"`

	ReportsDir   string `json:"reports_dir" yaml:"reports_dir"`
	TemplateFile string `json:"template_file,omitempty" yaml:"template_file,omitempty"`
	DatabaseFile string `json:"database_file" yaml:"database_file"`

	// CurrentMonthOnly limits report generation to the current
	// calendar month instead of all twelve.
	CurrentMonthOnly bool `json:"generate_only_current_month" yaml:"generate_only_current_month"`

	// EnableFiat toggles the fiat market feed. When disabled every
	// fiat-derived report field is rendered as zero.
	EnableFiat bool   `json:"enable_fiat" yaml:"enable_fiat"`
	FiatAPIURL string `json:"fiat_api_url,omitempty" yaml:"fiat_api_url,omitempty"`

	ExchangeAPIURL string `json:"exchange_api_url,omitempty" yaml:"exchange_api_url,omitempty"`

	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	// Schedule is the cron expression used by daemon mode.
	Schedule string `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

// AccountConfig contains one exchange account and the coins sampled
// for it. Credentials left empty in the file fall back to the
// OKX_API_KEY / OKX_SECRET_KEY / OKX_PASSPHRASE environment variables
// (a .env file is honoured).
type AccountConfig struct {
	Name       string   `json:"name" yaml:"name"`
	APIKey     string   `json:"api_key" yaml:"api_key"`
	SecretKey  string   `json:"secret_key" yaml:"secret_key"`
	Passphrase string   `json:"passphrase" yaml:"passphrase"`
	Coins      []string `json:"coins" yaml:"coins"`
}

// LoadFromFile loads configuration from a file (YAML or JSON) and
// validates it. Validation failures are fatal to the caller by
// contract: nothing else may run on a bad config.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv fills empty account credentials from the environment.
func (c *Config) applyEnv() {
	for i := range c.Accounts {
		a := &c.Accounts[i]
		if a.APIKey == "" {
			a.APIKey = os.Getenv("OKX_API_KEY")
		}
		if a.SecretKey == "" {
			a.SecretKey = os.Getenv("OKX_SECRET_KEY")
		}
		if a.Passphrase == "" {
			a.Passphrase = os.Getenv("OKX_PASSPHRASE")
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}

	seen := map[string]bool{}
	for _, a := range c.Accounts {
		if a.Name == "" {
			return fmt.Errorf("account name is required")
		}
		if strings.Join(strings.Fields(a.Name), "") != a.Name {
			return fmt.Errorf("account name %q must not contain whitespace", a.Name)
		}
		if a.Name == portfolio.SummaryLabel {
			return fmt.Errorf("account name %q is reserved", portfolio.SummaryLabel)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate account name %q", a.Name)
		}
		seen[a.Name] = true

		if a.APIKey == "" || a.SecretKey == "" || a.Passphrase == "" {
			return fmt.Errorf("account %q: api_key, secret_key and passphrase are required", a.Name)
		}
		if len(a.Coins) == 0 {
			return fmt.Errorf("account %q: at least one coin is required", a.Name)
		}
		for _, coin := range a.Coins {
			if !portfolio.Coins[portfolio.Coin(coin)] {
				return fmt.Errorf("account %q: coin %q is not in the market", a.Name, coin)
			}
		}
	}

	if c.MovingAverage <= 0 {
		return fmt.Errorf("moving_average must be positive")
	}
	if c.DecimalPoints < 0 {
		return fmt.Errorf("decimal_points must not be negative")
	}
	if c.DatabaseFile == "" {
		return fmt.Errorf("database_file is required")
	}
	if c.ReportsDir == "" {
		return fmt.Errorf("reports_dir is required")
	}
	if c.TemplateFile != "" {
		if _, err := os.Stat(c.TemplateFile); err != nil {
			return fmt.Errorf("template file %q does not exist", c.TemplateFile)
		}
	}
	return nil
}

// Coins returns the union of all coins configured across accounts, in
// first-seen order. The summary series is generated for each of them.
func (c *Config) Coins() []portfolio.Coin {
	var coins []portfolio.Coin
	seen := map[portfolio.Coin]bool{}
	for _, a := range c.Accounts {
		for _, coin := range a.Coins {
			cc := portfolio.Coin(coin)
			if !seen[cc] {
				seen[cc] = true
				coins = append(coins, cc)
			}
		}
	}
	return coins
}

// Default returns a configuration with sensible defaults. Credentials
// still have to come from the environment.
func Default() *Config {
	return &Config{
		Accounts: []AccountConfig{
			{
				Name:  "main",
				Coins: []string{"btc"},
			},
		},
		MovingAverage:    5,
		DecimalPoints:    4,
		ReportsDir:       "./reports",
		DatabaseFile:     "./okfolio.sqlite",
		CurrentMonthOnly: true,
		EnableFiat:       true,
		LogLevel:         "info",
		Schedule:         "0 7 * * *",
	}
}
