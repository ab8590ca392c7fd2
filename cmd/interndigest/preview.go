package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/interndigest/internal/adapter"
	"github.com/amishk599/interndigest/internal/config"
	"github.com/amishk599/interndigest/internal/notifier"
	"github.com/amishk599/interndigest/internal/pipeline"
	"github.com/amishk599/interndigest/internal/preview"
	"github.com/amishk599/interndigest/internal/store"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse a digest interactively (TUI)",
	Long:  "Shows the source picker, scrapes the chosen sources, then launches the split-pane view of scraped postings and the resulting digest. Nothing is sent.",
	RunE:  runPreviewCmd,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreviewCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	runPreview(cfg)
	return nil
}

func runPreview(cfg *config.Config) {
	// Log output while the TUI is up corrupts the display.
	silent := slog.New(slog.NewTextHandler(io.Discard, nil))

	adapters := buildFetchers(cfg.EnabledSources(), cfg.Search.TitleKeywords, silent)
	if len(adapters) == 0 {
		fmt.Println("No enabled sources in config.")
		return
	}
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = string(a.Source())
	}

	for {
		choice, err := preview.RunSourcePicker(names)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return
		}
		if choice < 0 {
			return
		}

		chosen := adapters
		label := "all sources"
		if choice > 0 {
			chosen = []*adapter.HTMLAdapter{adapters[choice-1]}
			label = names[choice-1]
		}

		driver := newDriver(cfg, asFetchers(chosen), notifier.NewLogSender(silent), store.NewNopStore(), silent)

		var res pipeline.Result
		err = preview.RunLoader("Scraping "+label, func(ctx context.Context, progress func(string)) {
			driver.Observe(func(s pipeline.State, detail string) {
				if detail != "" {
					progress(fmt.Sprintf("Scraping %s", detail))
					return
				}
				progress(capitalize(s.String()))
			})
			res = driver.Collect(ctx)
		})
		if err != nil {
			fmt.Printf("Error building digest: %v\n", err)
			continue
		}

		wantQuit, err := preview.RunPreviewTUI(res)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return
		}
		// else: loop → back to picker
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
