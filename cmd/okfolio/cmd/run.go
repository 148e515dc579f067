package cmd

import (
	"context"
	"fmt"

	"github.com/chaiwat/okfolio/config"
	"github.com/chaiwat/okfolio/fiat"
	"github.com/chaiwat/okfolio/okx"
	"github.com/chaiwat/okfolio/pipeline"
	"github.com/chaiwat/okfolio/store"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch equity for all accounts and record today's observations",
	Long: `Run one sampling pass: fetch each account's futures equity per coin
from OKX, look up the THB unit price, and record the observation.

By default re-running on the same day is a no-op per account/coin; pass
--force-add to record an extra sample anyway.

Examples:
  okfolio run -f config.yaml
  okfolio run --force-add
  okfolio run --daemon`,
	RunE: runRun,
}

var (
	runForceAdd bool
	runDaemon   bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runForceAdd, "force-add", false, "record a sample even if one exists for today")
	runCmd.Flags().BoolVar(&runDaemon, "daemon", false, "keep running, sampling on the configured cron schedule")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	if !runDaemon {
		return ingestOnce(cmd.Context(), cfg, log)
	}

	if cfg.Schedule == "" {
		return fmt.Errorf("daemon mode requires a schedule in the config")
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		if err := ingestOnce(context.Background(), cfg, log); err != nil {
			log.Error().Err(err).Msg("scheduled sampling pass failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}

	log.Info().Str("schedule", cfg.Schedule).Msg("daemon started")
	c.Run()
	return nil
}

func ingestOnce(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := store.Open(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// One snapshot of the fiat market per pass. Feed failures only
	// cost the fiat columns, never the equity sample.
	var prices pipeline.PriceSource
	if cfg.EnableFiat {
		snapshot, err := fiat.NewClient(cfg.FiatAPIURL).Fetch(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("fiat feed unavailable, prices default to zero")
		}
		prices = snapshot
	}

	in := &pipeline.Ingestor{
		Store:  st,
		Source: okx.NewClient(cfg.ExchangeAPIURL),
		Prices: prices,
		Force:  runForceAdd,
		Log:    log,
	}
	return in.Run(ctx, cfg)
}
