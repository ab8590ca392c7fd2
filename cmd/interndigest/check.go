package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/interndigest/internal/notifier"
	"github.com/amishk599/interndigest/internal/store"
)

var checkHTMLPath string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry run: build the digest and log it, send nothing",
	Long:  "Runs the full pipeline with the log sender and without the run archive. Use --html to write the rendered digest to a file.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkHTMLPath, "html", "", "write the rendered HTML digest to this file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: nothing will be sent or archived")

	fetchers := buildFetchers(cfg.EnabledSources(), cfg.Search.TitleKeywords, logger)
	if len(fetchers) == 0 {
		logger.Error("no sources to scrape")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := newDriver(cfg, asFetchers(fetchers), notifier.NewLogSender(logger), store.NewNopStore(), logger).Run(ctx)

	if checkHTMLPath != "" {
		body := res.HTML
		if body == "" {
			body = res.Text
		}
		if err := os.WriteFile(checkHTMLPath, []byte(body), 0644); err != nil {
			return fmt.Errorf("write digest: %w", err)
		}
		logger.Info("digest written", "path", checkHTMLPath, "bytes", len(body))
	}

	logger.Info("check complete", "status", res.Status())
	return nil
}
