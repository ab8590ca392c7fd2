package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/interndigest/internal/pipeline"
	"github.com/amishk599/interndigest/internal/store"
)

var strictDelivery bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape, build and deliver the digest once",
	Long:  "One full run: scrape every enabled source, dedupe and rank, render the digest, deliver it and archive the run.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&strictDelivery, "strict-delivery", false, "exit with status 2 when the digest could not be delivered")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"keywords", len(cfg.Search.Keywords),
		"locations", len(cfg.Search.Locations),
		"sources", len(cfg.EnabledSources()),
		"max_postings", cfg.Report.MaxPostings,
		"delivery", cfg.Delivery.Type,
	)

	runs, err := openStore(cfg)
	if err != nil {
		// The archive is best effort; a broken database must not cost a digest.
		logger.Warn("failed to open run store, history disabled for this run", "path", cfg.Store.Path, "error", err)
		runs = store.NewNopStore()
	}
	defer runs.Close()

	fetchers := buildFetchers(cfg.EnabledSources(), cfg.Search.TitleKeywords, logger)
	if len(fetchers) == 0 {
		logger.Error("no sources to scrape")
		os.Exit(1)
	}
	sender := setupSender(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := newDriver(cfg, asFetchers(fetchers), sender, runs, logger).Run(ctx)

	if cfg.Store.Retention > 0 {
		if err := runs.Cleanup(context.WithoutCancel(ctx), cfg.Store.Retention); err != nil {
			logger.Warn("run history cleanup failed", "error", err)
		}
	}

	if code := finishRun(res, runs, strictDelivery, logger); code != 0 {
		os.Exit(code)
	}
	return nil
}

// finishRun logs the outcome and returns the process exit code. A non-zero
// code means the caller exits immediately, so runs is closed here first.
func finishRun(res pipeline.Result, runs runStore, strict bool, logger *slog.Logger) int {
	if res.DeliveryErr != nil {
		logger.Warn("digest not delivered", "run_id", res.ID, "error", res.DeliveryErr)
		if strict {
			if err := runs.Close(); err != nil {
				logger.Warn("failed to close run store", "error", err)
			}
			return 2
		}
	}
	logger.Info(res.Status(), "run_id", res.ID)
	return 0
}
