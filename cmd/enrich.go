package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"projectmeta/internal/clock/system"
	"projectmeta/internal/config"
	"projectmeta/internal/fetch"
	"projectmeta/internal/id/uuid"
	"projectmeta/internal/logging"
	"projectmeta/internal/metrics"
	"projectmeta/internal/pipeline"
)

// newEnrichCmd creates and configures the 'enrich' subcommand, which runs
// one full enrichment batch: every project in the input list is processed
// exactly once, sequentially and in order.
func newEnrichCmd() *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fetches card metadata for every project in the input list",
		Long: `Reads the project list, performs one HTTP GET per project URL, and writes
the enriched document. Fetch failures are recorded on the affected record
and never abort the batch; only a missing input file is fatal.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if inputPath != "" {
				cfg.Input.Path = inputPath
			}
			if outputPath != "" {
				cfg.Output.Path = outputPath
			}

			logger, err := logging.New(cfg.Logging.Development)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush

			metrics.Init()

			fetcher := fetch.NewCollyFetcher(fetch.Options{
				UserAgent:    cfg.Fetch.UserAgent,
				Accept:       cfg.Fetch.Accept,
				Timeout:      cfg.Fetch.Timeout,
				MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
			}, logger)
			sink := pipeline.NewFileSystemSink(cfg.Output.Path, logger)

			p := pipeline.New(cfg, fetcher, sink, system.New(), uuid.New(), logger)
			if err := p.Run(cmd.Context()); err != nil {
				logger.Error("Enrichment run failed", zap.Error(err))
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Output.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "project list path (overrides config)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output document path (overrides config)")

	return cmd
}
