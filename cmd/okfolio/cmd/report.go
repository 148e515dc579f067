package cmd

import (
	"fmt"

	"github.com/chaiwat/okfolio/pipeline"
	"github.com/chaiwat/okfolio/render"
	"github.com/chaiwat/okfolio/store"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate monthly HTML reports from recorded observations",
	Long: `Generate monthly HTML reports for every account and coin, either for
the current month or for all twelve (see generate_only_current_month in
the config). --summary additionally renders the cross-account summary
series per coin; --summary-only renders only that.

Examples:
  okfolio report
  okfolio report --summary
  okfolio report --summary-only`,
	RunE: runReport,
}

var (
	reportSummary     bool
	reportSummaryOnly bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportSummary, "summary", false, "also generate the cross-account summary reports")
	reportCmd.Flags().BoolVar(&reportSummaryOnly, "summary-only", false, "generate only the cross-account summary reports")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	st, err := store.Open(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	renderer, err := render.New(cfg.TemplateFile)
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}

	g := &pipeline.Generator{
		Store:    st,
		Renderer: renderer,
		Log:      log,
	}
	g.Run(cfg, !reportSummaryOnly, reportSummary || reportSummaryOnly)
	return nil
}
