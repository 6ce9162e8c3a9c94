package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/appstate"
	"github.com/amishk599/jobboard/internal/board"
	"github.com/amishk599/jobboard/internal/catalog"
	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/ratelimit"
)

var browseFile string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse jobs interactively (TUI)",
	Long:  "Shows the catalog picker, then the job board with search, filters and pagination.",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseFile, "file", "", "browse a local YAML catalog instead of the configured ones")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	catalogs := cfg.Board.EnabledCatalogs()
	if browseFile != "" {
		catalogs = []config.CatalogConfig{{Name: browseFile, File: browseFile, Enabled: true}}
	}
	if len(catalogs) == 0 {
		fmt.Println("No enabled catalogs in config. Use --file to browse a local catalog.")
		return nil
	}

	// Log output while the alt screen is up corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runBoard(cfg, catalogs, silentLogger)
	return nil
}

func runBoard(cfg *config.Config, catalogs []config.CatalogConfig, logger *slog.Logger) {
	httpClient := newHTTPClient()
	limiter := ratelimit.NewHostLimiter(cfg.Retry.MinInterval)
	state := appstate.New()

	for {
		choice := 0
		if len(catalogs) > 1 {
			var err error
			choice, err = board.RunPicker(catalogs)
			if err != nil {
				fmt.Printf("Picker error: %v\n", err)
				return
			}
			if choice < 0 {
				return
			}
		}
		c := catalogs[choice]

		src := catalog.New(c, cfg.Retry, httpClient, limiter, logger)
		jobs, err := board.RunLoader(c.Name, src.FetchJobs)
		if err != nil {
			fmt.Printf("Error fetching jobs: %v\n", err)
			if len(catalogs) == 1 {
				return
			}
			continue
		}
		state.SetJobs(jobs)

		wantQuit, err := board.Run(state, cfg.Board, c.Name)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit || len(catalogs) == 1 {
			return
		}
	}
}
