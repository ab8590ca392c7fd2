package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/interndigest/internal/adapter"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List all configured sources",
	Long:  "Reads the config and prints a table of configured sources with their effective request caps.",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-14s %-9s %-7s %-9s %-10s %s\n", "Source", "Searches", "Cards", "Delay", "Timeout", "Status")
	fmt.Println(strings.Repeat("─", 62))

	enabled, disabled := 0, 0
	for _, sc := range cfg.Sources {
		profile, _ := adapter.ProfileFor(sc.Name)
		profile = applyOverrides(profile, sc)

		status := "enabled"
		if !sc.Enabled {
			status = "disabled"
			disabled++
		} else {
			enabled++
		}
		searches := fmt.Sprintf("%dx%d", min(profile.MaxKeywords, len(cfg.Search.Keywords)), min(profile.MaxLocations, len(cfg.Search.Locations)))
		delay := fmt.Sprintf("%s-%s", profile.MinDelay, profile.MaxDelay)
		fmt.Printf("%-14s %-9s %-7d %-9s %-10s %s\n", profile.Source, searches, profile.MaxCards, delay, profile.Timeout, status)
	}

	fmt.Printf("\nTotal: %d sources (%d enabled, %d disabled)\n", len(cfg.Sources), enabled, disabled)
	return nil
}
