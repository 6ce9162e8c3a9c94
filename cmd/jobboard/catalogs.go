package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "List all configured catalogs",
	Long:  "Reads the config and prints a table of all configured job catalogs.",
	RunE:  runCatalogs,
}

func init() {
	rootCmd.AddCommand(catalogsCmd)
}

func runCatalogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-20s %-8s %-10s %s\n", "Catalog", "Kind", "Status", "Source")
	fmt.Println(strings.Repeat("─", 60))

	enabled, disabled := 0, 0
	for _, c := range cfg.Board.Catalogs {
		status := "enabled"
		if !c.Enabled {
			status = "disabled"
			disabled++
		} else {
			enabled++
		}
		where := c.File
		if c.Kind() == "remote" {
			where = c.URL
		}
		fmt.Printf("%-20s %-8s %-10s %s\n", c.Name, c.Kind(), status, where)
	}

	fmt.Printf("\nTotal: %d catalogs (%d enabled, %d disabled)\n", len(cfg.Board.Catalogs), enabled, disabled)
	return nil
}
