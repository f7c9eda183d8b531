package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finforge/nacha/pkg/config"
)

const testManifest = `file:
  destination: "076401251"
  destination_name: "ACH BANK"
  origin: "1234567890"
  origin_name: "COMPANY INC"
batches:
  - service_code: "220"
    description: "PAYROLL"
    effective_date: "2026-03-06"
    entries:
      - transaction_code: "22"
        rdfi_id: "07640125"
        account_number: "123456789"
        amount_cents: 12500
        id: "EMP001"
        name: "JANE DOE"
      - rdfi_id: "07640125"
        account_number: "987654321"
        amount_cents: 30000
        id: "EMP002"
        name: "JOHN ROE"
`

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Company = config.Company{
		Name:   "COMPANY INC",
		ID:     "1234567890",
		ODFIID: "07640125",
	}
	return cfg
}

func writeManifest(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Run("Valid manifest", func(t *testing.T) {
		m, err := loadManifest(writeManifest(t, testManifest))
		require.NoError(t, err)
		assert.Equal(t, "076401251", m.File.Destination)
		require.Len(t, m.Batches, 1)
		assert.Equal(t, "220", m.Batches[0].ServiceCode)
		assert.Len(t, m.Batches[0].Entries, 2)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := loadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("No batches", func(t *testing.T) {
		_, err := loadManifest(writeManifest(t, "file:\n  destination: \"076401251\"\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no batches")
	})

	t.Run("Malformed yaml", func(t *testing.T) {
		_, err := loadManifest(writeManifest(t, "batches: [}"))
		assert.Error(t, err)
	})
}

func TestBuildFromManifest(t *testing.T) {
	m, err := loadManifest(writeManifest(t, testManifest))
	require.NoError(t, err)

	file, err := buildFromManifest(testConfig(), m)
	require.NoError(t, err)

	assert.True(t, file.Finalized())
	assert.Equal(t, 1, file.BatchCount())
	assert.Equal(t, 2, file.EntryCount())

	text, err := file.Render()
	require.NoError(t, err)

	lines := strings.Split(text, "\r\n")
	// header + batch header + 2 entries + batch control + file control + 4 fill
	require.Len(t, lines, 10)
	for _, line := range lines {
		assert.Len(t, line, 94)
	}

	// Manifest file values land in the header, company defaults in the batch.
	assert.Equal(t, "ACH BANK", strings.TrimSpace(lines[0][40:63]))
	assert.Equal(t, "COMPANY INC", strings.TrimSpace(lines[1][4:20]))

	// 12500 + 30000 cents of credits, no debits.
	credit, err := file.Control().GetInt("creditAmount")
	require.NoError(t, err)
	assert.Equal(t, int64(42500), credit)

	debit, err := file.Control().GetInt("debitAmount")
	require.NoError(t, err)
	assert.Equal(t, int64(0), debit)
}

func TestBuildFromManifest_BadEffectiveDate(t *testing.T) {
	m, err := loadManifest(writeManifest(t, testManifest))
	require.NoError(t, err)
	m.Batches[0].EffectiveDate = "03/06/2026"

	_, err = buildFromManifest(testConfig(), m)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "effective_date")
}
