package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/appstate"
	"github.com/amishk599/jobboard/internal/catalog"
	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/listing"
	"github.com/amishk599/jobboard/internal/model"
)

var jobsOpts struct {
	catalog    string
	file       string
	categories []string
	locations  []string
	title      string
	where      string
	page       int
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Print one page of jobs, filtered",
	Long:  "Fetches a catalog, applies the same search and filters as the board, and prints one page.",
	RunE:  runJobs,
}

func init() {
	f := jobsCmd.Flags()
	f.StringVar(&jobsOpts.catalog, "catalog", "", "catalog name (default: first enabled)")
	f.StringVar(&jobsOpts.file, "file", "", "read jobs from a local YAML catalog")
	f.StringArrayVar(&jobsOpts.categories, "category", nil, "only this category (repeatable)")
	f.StringArrayVar(&jobsOpts.locations, "location", nil, "only this location (repeatable)")
	f.StringVar(&jobsOpts.title, "title", "", "search job titles")
	f.StringVar(&jobsOpts.where, "where", "", "search locations")
	f.IntVar(&jobsOpts.page, "page", 1, "page to print")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	c, err := pickCatalog(cfg.Board, jobsOpts.catalog, jobsOpts.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if debug {
		logger = setupLogger(true)
	}
	src := catalog.New(c, cfg.Retry, newHTTPClient(), nil, logger)
	jobs, err := src.FetchJobs(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetching jobs: %v\n", err)
		os.Exit(1)
	}

	state := appstate.New()
	state.SetJobs(jobs)
	ctrl := listing.New(state)
	defer ctrl.Close()

	for _, cat := range jobsOpts.categories {
		ctrl.ToggleCategory(cat)
	}
	for _, loc := range jobsOpts.locations {
		ctrl.ToggleLocation(loc)
	}
	if jobsOpts.title != "" || jobsOpts.where != "" {
		state.Search(model.SearchFilter{Title: jobsOpts.title, Location: jobsOpts.where})
	}
	ctrl.SetPage(jobsOpts.page)

	printPage(os.Stdout, c.Name, ctrl)
	return nil
}

// pickCatalog resolves which catalog the jobs command reads.
func pickCatalog(b config.BoardConfig, name, file string) (config.CatalogConfig, error) {
	if file != "" {
		return config.CatalogConfig{Name: file, File: file, Enabled: true}, nil
	}
	enabled := b.EnabledCatalogs()
	if name == "" {
		if len(enabled) == 0 {
			return config.CatalogConfig{}, fmt.Errorf("no enabled catalogs in config; use --file")
		}
		return enabled[0], nil
	}
	for _, c := range b.Catalogs {
		if c.Name == name {
			return c, nil
		}
	}
	return config.CatalogConfig{}, fmt.Errorf("unknown catalog %q", name)
}

func printPage(w io.Writer, name string, ctrl *listing.Controller) {
	total := len(ctrl.Filtered())
	if total == 0 {
		fmt.Fprintf(w, "No jobs in %s match the current filters.\n", name)
		return
	}

	fmt.Fprintf(w, "%-35s %-18s %-15s %s\n", "Title", "Category", "Location", "Company")
	fmt.Fprintln(w, strings.Repeat("─", 85))
	for _, j := range ctrl.PageSlice() {
		fmt.Fprintf(w, "%-35s %-18s %-15s %s\n", truncate(j.Title, 35), truncate(j.Category, 18), truncate(j.Location, 15), j.Company)
	}

	fmt.Fprintf(w, "\nPage %d of %d (%d jobs)\n", ctrl.Page(), ctrl.TotalPages(), total)
	if chips := ctrl.ActiveChips(); len(chips) > 0 {
		terms := make([]string, 0, len(chips))
		for _, c := range chips {
			terms = append(terms, c.Value)
		}
		fmt.Fprintf(w, "Current search: %s\n", strings.Join(terms, ", "))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
