package cmd

import (
	"fmt"

	"github.com/chaiwat/okfolio/config"
	"github.com/chaiwat/okfolio/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "okfolio",
	Short: "Daily futures portfolio tracker and report generator",
	Long: `Okfolio gathers your daily futures portfolio equity from OKX into a
local database and renders monthly HTML reports.

It provides tools for:
  - Recording one equity observation per account, coin and day
  - Valuing holdings in THB via the BX market feed
  - Generating monthly per-account and cross-account summary reports
  - Running the sampling pass on a cron schedule
  - Backing up the observation database`,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "config.yaml", "path to config file (YAML or JSON)")
}

// loadConfig loads and validates the configuration; a bad config is
// fatal before anything else runs.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
}
