/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finforge/nacha/pkg/archive"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "List or print archived interchange files",
	Long: `List archived interchange files, or print one by id.

Without arguments, prints a listing of archived files with their control
totals. With an id, prints the archived file's rendered text to stdout.

Examples:
	  nacha show
	  nacha show 2bYx1JQfN3kP9sLmVtRwXeAzGdH`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			cmd.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		arch, err := archive.Open(filepath.Join(cfg.DataDir, "archive"))
		if err != nil {
			cmd.Printf("Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer arch.Close()

		if len(args) == 1 {
			entry, err := arch.Get(args[0])
			if err != nil {
				cmd.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.Text)
			return
		}

		summaries, err := arch.List()
		if err != nil {
			cmd.Printf("Error listing archive: %v\n", err)
			os.Exit(1)
		}
		if len(summaries) == 0 {
			cmd.Println("Archive is empty.")
			return
		}

		cmd.Printf("%-29s %-20s %7s %7s %14s %14s\n",
			"ID", "CREATED", "BATCHES", "ENTRIES", "DEBITS", "CREDITS")
		for _, s := range summaries {
			cmd.Printf("%-29s %-20s %7d %7d %14s %14s\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"),
				s.BatchCount, s.EntryCount,
				formatCents(s.DebitAmount), formatCents(s.CreditAmount))
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// formatCents renders an amount in cents as dollars and cents
func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
