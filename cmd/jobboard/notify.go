package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Incident notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test incident",
	Long:  "Sends a sample incident through the configured notifier (log or slack) to check the integration.",
	Args:  cobra.NoArgs,
	RunE:  runNotifyTest,
}

func init() {
	notifyCmd.AddCommand(notifyTestCmd)
	rootCmd.AddCommand(notifyCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	n := setupNotifier(cfg, newHTTPClient(), logger)
	if err := notifier.SendTestMessage(n); err != nil {
		logger.Error("test incident failed", "notifier", cfg.Notification.Type, "error", err)
		os.Exit(1)
	}
	logger.Info("test incident sent", "notifier", cfg.Notification.Type)
	return nil
}
