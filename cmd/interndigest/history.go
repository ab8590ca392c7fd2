package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/interndigest/internal/report"
)

var (
	historyLimit   int
	historyVerbose bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs from the run archive",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	historyCmd.Flags().BoolVarP(&historyVerbose, "verbose", "v", false, "list the postings sent in each run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Store.Path == "" {
		fmt.Println("Run history is disabled (store.path is empty).")
		return nil
	}

	runs, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer runs.Close()

	records, err := runs.RecentRuns(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("%-17s %-9s %-8s %-7s %-5s %-9s %s\n", "Run At", "ID", "Scraped", "Unique", "Sent", "Fallback", "Delivered")
	fmt.Println(strings.Repeat("─", 72))
	for _, r := range records {
		delivered := "yes"
		if !r.Delivered {
			delivered = "no: " + r.DeliveryErr
		}
		fallback := "no"
		if r.FallbackUsed {
			fallback = "yes"
		}
		fmt.Printf("%-17s %-9s %-8d %-7d %-5d %-9s %s\n",
			r.RunAt.Local().Format("2006-01-02 15:04"), shortID(r.ID), r.Scraped, r.Unique, r.Sent, fallback, delivered)

		if historyVerbose {
			fmt.Printf("    %s\n", report.SummaryLine(report.Summarize(r.Postings)))
			for _, p := range r.Postings {
				fmt.Printf("    - %s | %s | %s\n", p.Title, p.Company, p.URL)
			}
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
