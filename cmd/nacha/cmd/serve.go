/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finforge/nacha/pkg/api"
	"github.com/finforge/nacha/pkg/archive"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the nacha REST API server.

The server builds interchange files through a session API: create a
file, add batches and entries, then finalize and download or archive
the rendered text. Requests are authenticated with the configured API
key.

Examples:
  nacha serve
  nacha serve --port=9090 --data-dir=./data
  nacha serve --api-key=mysecretkey`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			cmd.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		// Flag overrides on top of the config file
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}

		if cfg.APIKey == "" || cfg.APIKey == "auto" {
			cmd.Println("Error: no API key configured (run 'nacha init' first or pass --api-key)")
			os.Exit(1)
		}

		fileArchive, err := archive.Open(filepath.Join(cfg.DataDir, "archive"))
		if err != nil {
			cmd.Printf("Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer fileArchive.Close()

		serverConfig := api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.APIKey,
			FileDefaults: api.FileDefaults{
				IDModifier:      cfg.File.IDModifier,
				Destination:     cfg.File.Destination,
				DestinationName: cfg.File.DestinationName,
				Origin:          cfg.File.Origin,
				OriginName:      cfg.File.OriginName,
				ReferenceCode:   cfg.File.ReferenceCode,
				BlockingFactor:  cfg.File.BlockingFactor,
			},
			BatchDefaults: api.BatchDefaults{
				CompanyName: cfg.Company.Name,
				CompanyID:   cfg.Company.ID,
				ODFIID:      cfg.Company.ODFIID,
			},
		}

		if err := api.StartServer(fileArchive, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("api-key", "", "API key for authentication (overrides config)")
	serveCmd.Flags().String("data-dir", "", "Data directory for the file archive (overrides config)")
}
