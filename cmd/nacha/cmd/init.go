/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/finforge/nacha/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the nacha configuration",
	Long: `Initialize the nacha configuration file and data directory.

This command will:
- Create the configuration directory
- Generate a secure API key for the REST server
- Write a config file you can then edit with your company
  and file header defaults

Examples:
	  nacha init
	  nacha init --data-dir=./data --config=./nacha.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists. Use --force to reinitialize.\n")
			cmd.Printf("Config location: %s\n", configPath)
			return
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			cmd.Printf("Error initializing configuration: %v\n", err)
			os.Exit(1)
		}

		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			cmd.Printf("Error creating data directory: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("✅ nacha initialization completed successfully!\n")
		cmd.Printf("Config file: %s\n", configPath)
		cmd.Printf("API key: %s\n", cfg.APIKey)
		cmd.Printf("Data directory: %s\n", cfg.DataDir)
		cmd.Printf("\nEdit the config file to set your company and file defaults,\n")
		cmd.Printf("then start the server with:\n")
		cmd.Printf("  nacha serve --config=%s\n", configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("data-dir", "./data", "Data directory for the file archive")
	initCmd.Flags().Bool("force", false, "Force reinitialization even if a config already exists")
}
