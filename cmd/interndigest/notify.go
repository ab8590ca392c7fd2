package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/interndigest/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Delivery subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test digest",
	Long:  "Sends a digest of sample postings through the configured delivery backend.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sender := setupSender(cfg, logger)
	if err := notifier.SendTestMessage(context.Background(), sender, cfg.Delivery.Recipients); err != nil {
		logger.Error("test digest failed", "error", err)
		os.Exit(1)
	}
	logger.Info("test digest sent successfully")
	return nil
}
