package ach

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finforge/nacha/pkg/codec"
)

func testFileConfig() FileConfig {
	return FileConfig{
		IDModifier:      "A",
		Destination:     "076401251",
		DestinationName: "ACH BANK",
		Origin:          "1234567890",
		OriginName:      "COMPANY INC",
	}
}

func testFile(t *testing.T) *File {
	t.Helper()
	file, err := NewFile(testFileConfig())
	require.NoError(t, err)
	return file
}

func TestNewFile_HeaderFields(t *testing.T) {
	file := testFile(t)
	header := file.Header()

	destination, err := header.GetValue("destination")
	require.NoError(t, err)
	assert.Equal(t, " 076401251", destination, "routing fields are space-padded")

	modifier, err := header.GetValue("fileIdModifier")
	require.NoError(t, err)
	assert.Equal(t, "A", modifier)

	blockingFactor, err := header.GetInt("blockingFactor")
	require.NoError(t, err)
	assert.Equal(t, int64(10), blockingFactor)
}

func TestNewFile_BlockingFactor(t *testing.T) {
	t.Run("single-digit factor is written at field width", func(t *testing.T) {
		config := testFileConfig()
		config.BlockingFactor = 5
		file, err := NewFile(config)
		require.NoError(t, err)

		factor, err := file.Header().GetInt("blockingFactor")
		require.NoError(t, err)
		assert.Equal(t, int64(5), factor)

		// File pair + batch pair + one entry = 5 records, an exact block.
		batch, err := NewBatch(testBatchConfig())
		require.NoError(t, err)
		require.NoError(t, batch.AddEntry(testEntry(t, 100)))
		require.NoError(t, file.AddBatch(batch))
		require.NoError(t, file.Finalize())

		blockCount, err := file.Control().GetInt("blockCount")
		require.NoError(t, err)
		assert.Equal(t, int64(1), blockCount)

		text, err := file.Render()
		require.NoError(t, err)
		assert.Len(t, strings.Split(text, "\r\n"), 5)
	})

	t.Run("out-of-range factors are rejected", func(t *testing.T) {
		for _, factor := range []int{-1, 100} {
			config := testFileConfig()
			config.BlockingFactor = factor
			_, err := NewFile(config)
			assert.Error(t, err, "factor %d", factor)
		}
	})
}

func TestFile_BlockPadding(t *testing.T) {
	testCases := []struct {
		name          string
		batches       int
		wantBlocks    int64
		wantFillLines int
	}{
		{
			// 2 file records + 2 batch records = 4, one block, 6 fill lines
			name:          "one empty batch",
			batches:       1,
			wantBlocks:    1,
			wantFillLines: 6,
		},
		{
			// 2 + 8 = 10 records, exact block boundary, no fill
			name:          "exact block boundary",
			batches:       4,
			wantBlocks:    1,
			wantFillLines: 0,
		},
		{
			// 2 + 10 = 12 records, two blocks, 8 fill lines
			name:          "spills into a second block",
			batches:       5,
			wantBlocks:    2,
			wantFillLines: 8,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			file := testFile(t)
			for i := 0; i < tc.batches; i++ {
				batch, err := NewBatch(testBatchConfig())
				require.NoError(t, err)
				require.NoError(t, file.AddBatch(batch))
			}
			require.NoError(t, file.Finalize())

			blockCount, err := file.Control().GetInt("blockCount")
			require.NoError(t, err)
			assert.Equal(t, tc.wantBlocks, blockCount)

			text, err := file.Render()
			require.NoError(t, err)
			lines := strings.Split(text, "\r\n")
			require.Len(t, lines, 2+2*tc.batches+tc.wantFillLines)

			fill := strings.Repeat("9", codec.RecordWidth)
			for _, line := range lines[len(lines)-tc.wantFillLines:] {
				assert.Equal(t, fill, line)
			}
			for _, line := range lines {
				assert.Len(t, line, codec.RecordWidth)
			}
		})
	}
}

func TestFile_EndToEndCreditFile(t *testing.T) {
	file := testFile(t)

	batch, err := NewBatch(testBatchConfig())
	require.NoError(t, err)
	require.NoError(t, batch.AddEntry(testEntry(t, 10000)))
	require.NoError(t, file.AddBatch(batch))
	require.NoError(t, file.Finalize())

	credit, err := file.Control().GetValue("creditAmount")
	require.NoError(t, err)
	assert.Equal(t, "000000010000", credit)

	debit, err := file.Control().GetValue("debitAmount")
	require.NoError(t, err)
	assert.Equal(t, "000000000000", debit)

	entryCount, err := file.Control().GetInt("entryCount")
	require.NoError(t, err)
	assert.Equal(t, int64(1), entryCount)

	batchCount, err := file.Control().GetInt("batchCount")
	require.NoError(t, err)
	assert.Equal(t, int64(1), batchCount)

	// 5 records: file header/control, batch header/control, one entry.
	blockCount, err := file.Control().GetInt("blockCount")
	require.NoError(t, err)
	assert.Equal(t, int64(1), blockCount)

	text, err := file.Render()
	require.NoError(t, err)
	lines := strings.Split(text, "\r\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "1", lines[0][:1])
	assert.Equal(t, "5", lines[1][:1])
	assert.Equal(t, "6", lines[2][:1])
	assert.Equal(t, "8", lines[3][:1])
	assert.Equal(t, "9", lines[4][:1])
}

func TestFile_EntryHashSumsBatchHashes(t *testing.T) {
	file := testFile(t)

	for i := 0; i < 2; i++ {
		batch, err := NewBatch(testBatchConfig())
		require.NoError(t, err)
		require.NoError(t, batch.AddEntry(testEntry(t, 100)))
		require.NoError(t, file.AddBatch(batch))
	}
	require.NoError(t, file.Finalize())

	hash, err := file.Control().GetInt("entryHash")
	require.NoError(t, err)
	assert.Equal(t, int64(2*7640125), hash)
}

func TestFile_AddBatchStampsBatchNumbers(t *testing.T) {
	file := testFile(t)

	for i := 0; i < 2; i++ {
		batch, err := NewBatch(testBatchConfig())
		require.NoError(t, err)
		require.NoError(t, file.AddBatch(batch))
	}

	first, err := file.Batch(0).Header().GetValue("batchNumber")
	require.NoError(t, err)
	assert.Equal(t, "0000001", first)

	second, err := file.Batch(1).Header().GetValue("batchNumber")
	require.NoError(t, err)
	assert.Equal(t, "0000002", second)

	assert.True(t, file.Batch(0).Finalized())
	assert.Nil(t, file.Batch(2))
}

func TestFile_RenderBeforeFinalizeFails(t *testing.T) {
	file := testFile(t)

	_, err := file.Render()
	assert.ErrorIs(t, err, ErrNotFinalized)

	err = file.WriteFile(filepath.Join(t.TempDir(), "out.ach"))
	assert.ErrorIs(t, err, ErrNotFinalized)
}

func TestFile_FinalizeIsIdempotent(t *testing.T) {
	file := testFile(t)
	batch, err := NewBatch(testBatchConfig())
	require.NoError(t, err)
	require.NoError(t, batch.AddEntry(testEntry(t, 10000)))
	require.NoError(t, file.AddBatch(batch))

	require.NoError(t, file.Finalize())
	before, err := file.Render()
	require.NoError(t, err)

	require.NoError(t, file.Finalize())
	after, err := file.Render()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFile_AddBatchAfterFinalizeFails(t *testing.T) {
	file := testFile(t)
	require.NoError(t, file.Finalize())

	batch, err := NewBatch(testBatchConfig())
	require.NoError(t, err)
	err = file.AddBatch(batch)
	assert.ErrorIs(t, err, ErrFileFinalized)
	assert.Equal(t, 0, file.BatchCount())
	assert.False(t, batch.Finalized(), "rejected batch is left untouched")
}

func TestFile_WriteFile(t *testing.T) {
	file := testFile(t)
	batch, err := NewBatch(testBatchConfig())
	require.NoError(t, err)
	require.NoError(t, batch.AddEntry(testEntry(t, 10000)))
	require.NoError(t, file.AddBatch(batch))
	require.NoError(t, file.Finalize())

	path := filepath.Join(t.TempDir(), "out.ach")
	require.NoError(t, file.WriteFile(path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)

	rendered, err := file.Render()
	require.NoError(t, err)
	assert.Equal(t, rendered, string(written))
}
