/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/finforge/nacha/pkg/ach"
	"github.com/finforge/nacha/pkg/archive"
	"github.com/finforge/nacha/pkg/config"
)

// manifest describes one payment run: file header overrides plus the
// batches and entries to build. Fields left empty fall back to the
// loaded configuration.
type manifest struct {
	File    manifestFile    `yaml:"file"`
	Batches []manifestBatch `yaml:"batches"`
}

type manifestFile struct {
	Destination     string `yaml:"destination"`
	DestinationName string `yaml:"destination_name"`
	Origin          string `yaml:"origin"`
	OriginName      string `yaml:"origin_name"`
	IDModifier      string `yaml:"id_modifier"`
	ReferenceCode   string `yaml:"reference_code"`
	BlockingFactor  int    `yaml:"blocking_factor"`
}

type manifestBatch struct {
	ServiceCode   string          `yaml:"service_code"`
	ClassCode     string          `yaml:"class_code"`
	CompanyName   string          `yaml:"company_name"`
	Description   string          `yaml:"description"`
	CompanyID     string          `yaml:"company_id"`
	ODFIID        string          `yaml:"odfi_id"`
	EffectiveDate string          `yaml:"effective_date"` // YYYY-MM-DD, defaults to today
	Entries       []manifestEntry `yaml:"entries"`
}

type manifestEntry struct {
	TransactionCode string `yaml:"transaction_code"`
	RDFIID          string `yaml:"rdfi_id"`
	AccountNumber   string `yaml:"account_number"`
	AmountCents     int64  `yaml:"amount_cents"`
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
}

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <manifest.yaml>",
	Short: "Build an interchange file from a payment run manifest",
	Long: `Build a finalized interchange file from a YAML payment run manifest.

The manifest lists batches of entries; file header values and company
identity default from the configuration and can be overridden per run.
The rendered file is written to stdout, or to a file with --output.

Examples:
	  nacha generate payroll.yaml
	  nacha generate payroll.yaml --output=payroll.ach
	  nacha generate payroll.yaml --archive`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			cmd.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		m, err := loadManifest(args[0])
		if err != nil {
			cmd.Printf("Error loading manifest: %v\n", err)
			os.Exit(1)
		}

		file, err := buildFromManifest(cfg, m)
		if err != nil {
			cmd.Printf("Error building file: %v\n", err)
			os.Exit(1)
		}

		if archiveIt, _ := cmd.Flags().GetBool("archive"); archiveIt {
			arch, err := archive.Open(filepath.Join(cfg.DataDir, "archive"))
			if err != nil {
				cmd.Printf("Error opening archive: %v\n", err)
				os.Exit(1)
			}
			defer arch.Close()

			id, err := arch.Put(file)
			if err != nil {
				cmd.Printf("Error archiving file: %v\n", err)
				os.Exit(1)
			}
			cmd.Printf("Archived as %s\n", id)
		}

		output, _ := cmd.Flags().GetString("output")
		if output != "" {
			if err := file.WriteFile(output); err != nil {
				cmd.Printf("Error writing file: %v\n", err)
				os.Exit(1)
			}
			cmd.Printf("Wrote %s (%d batches, %d entries)\n", output, file.BatchCount(), file.EntryCount())
			return
		}

		text, err := file.Render()
		if err != nil {
			cmd.Printf("Error rendering file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "", "Write the rendered file to this path instead of stdout")
	generateCmd.Flags().Bool("archive", false, "Store the finalized file in the archive")
}

// loadManifest reads and parses a payment run manifest
func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Batches) == 0 {
		return nil, fmt.Errorf("manifest has no batches")
	}
	return &m, nil
}

// buildFromManifest builds and finalizes a file from a manifest, falling
// back to cfg for file header values and company identity.
func buildFromManifest(cfg *config.Config, m *manifest) (*ach.File, error) {
	file, err := ach.NewFile(ach.FileConfig{
		IDModifier:      fallback(m.File.IDModifier, cfg.File.IDModifier),
		Destination:     fallback(m.File.Destination, cfg.File.Destination),
		DestinationName: fallback(m.File.DestinationName, cfg.File.DestinationName),
		Origin:          fallback(m.File.Origin, cfg.File.Origin),
		OriginName:      fallback(m.File.OriginName, cfg.File.OriginName),
		ReferenceCode:   fallback(m.File.ReferenceCode, cfg.File.ReferenceCode),
		BlockingFactor:  fallbackInt(m.File.BlockingFactor, cfg.File.BlockingFactor),
	})
	if err != nil {
		return nil, err
	}

	for i, mb := range m.Batches {
		effective := time.Now()
		if mb.EffectiveDate != "" {
			effective, err = time.Parse("2006-01-02", mb.EffectiveDate)
			if err != nil {
				return nil, fmt.Errorf("batch %d: invalid effective_date %q: %w", i+1, mb.EffectiveDate, err)
			}
		}

		batch, err := ach.NewBatch(ach.BatchConfig{
			ServiceCode:   fallback(mb.ServiceCode, ach.ServiceCreditsOnly),
			ClassCode:     fallback(mb.ClassCode, ach.EntryClassPPD),
			CompanyName:   fallback(mb.CompanyName, cfg.Company.Name),
			Description:   mb.Description,
			CompanyID:     fallback(mb.CompanyID, cfg.Company.ID),
			ODFIID:        fallback(mb.ODFIID, cfg.Company.ODFIID),
			EffectiveDate: effective,
		})
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i+1, err)
		}

		for j, me := range mb.Entries {
			entry, err := ach.NewEntry(ach.EntryConfig{
				TransactionCode: fallback(me.TransactionCode, ach.TransCheckingCredit),
				RDFIID:          me.RDFIID,
				AccountNumber:   me.AccountNumber,
				Amount:          me.AmountCents,
				ID:              me.ID,
				Name:            me.Name,
			})
			if err != nil {
				return nil, fmt.Errorf("batch %d entry %d: %w", i+1, j+1, err)
			}
			if err := batch.AddEntry(entry); err != nil {
				return nil, fmt.Errorf("batch %d entry %d: %w", i+1, j+1, err)
			}
		}

		if err := file.AddBatch(batch); err != nil {
			return nil, fmt.Errorf("batch %d: %w", i+1, err)
		}
	}

	if err := file.Finalize(); err != nil {
		return nil, err
	}
	return file, nil
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

func fallbackInt(value, def int) int {
	if value != 0 {
		return value
	}
	return def
}
