package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/notifier"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Job board API and terminal client",
	Long:  "Jobboard serves the identity webhook API and browses job catalogs in the terminal.",
	// Running the binary with no subcommand starts the API server.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(loadDotEnv)
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBBOARD_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadDotEnv reads ./.env into the environment. Variables already set win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBBOARD_CONFIG env var > "./config.yaml".
// Only an explicitly named file has to exist.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadOrDefault(path, true)
	}
	if env := os.Getenv("JOBBOARD_CONFIG"); env != "" {
		return config.LoadOrDefault(env, true)
	}
	return config.LoadOrDefault(config.DefaultPath, false)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	if cfg.Notification.Type == "slack" {
		logger.Info("using slack notifier")
	}
	return notifier.New(cfg.Notification, httpClient, logger)
}
