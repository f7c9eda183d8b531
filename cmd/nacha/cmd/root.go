/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/finforge/nacha/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nacha",
	Short: "nacha - fixed-width bank interchange file builder",
	Long: `nacha builds ACH-style fixed-width bank interchange files: batches of
payment entries wrapped in header and control records, with check digits,
control totals, and block padding computed automatically.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global config file flag
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default is the per-user config)")
}

// loadConfig loads the config named by --config, falling back to the
// per-user config file, falling back to built-in defaults when no file
// exists yet.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	if !config.ConfigExists(path) {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}
