package ach

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/finforge/nacha/pkg/codec"
)

// FileConfig holds the values a file is created from.
type FileConfig struct {
	IDModifier      string // file ID modifier, one character, distinguishes same-day files
	Destination     string // immediate destination routing number
	DestinationName string // immediate destination name
	Origin          string // immediate origin routing number
	OriginName      string // immediate origin name
	ReferenceCode   string // optional reference code, up to 8 characters
	BlockingFactor  int    // records per block; 0 keeps the format default of 10
}

// File owns one file header, one file control, and an ordered sequence of
// batches. Insertion order is batch-number order. Batches added to a file
// belong to it exclusively.
type File struct {
	header    *codec.Record
	control   *codec.Record
	batches   []*Batch
	nineFill  []string
	finalized bool
}

// NewFile creates a file with its header populated from config. The header's
// creation date and time are stamped from the wall clock.
func NewFile(config FileConfig) (*File, error) {
	f := &File{
		header:  codec.NewFileHeader(time.Now()),
		control: codec.NewFileControl(),
	}

	if err := f.header.SetValue("fileIdModifier", config.IDModifier); err != nil {
		return nil, err
	}
	if err := f.header.SetValue("destination", config.Destination); err != nil {
		return nil, err
	}
	if err := f.header.SetValue("destinationName", config.DestinationName); err != nil {
		return nil, err
	}
	if err := f.header.SetValue("origin", config.Origin); err != nil {
		return nil, err
	}
	if err := f.header.SetValue("originName", config.OriginName); err != nil {
		return nil, err
	}
	if config.ReferenceCode != "" {
		if err := f.header.SetValue("refCode", config.ReferenceCode); err != nil {
			return nil, err
		}
	}
	if config.BlockingFactor != 0 {
		// The header field is two bytes wide and untyped, so the value is
		// written at exact field width; a bare "5" over the default "10"
		// would read back as 50.
		if config.BlockingFactor < 1 || config.BlockingFactor > 99 {
			return nil, fmt.Errorf("blocking factor %d out of range 1-99", config.BlockingFactor)
		}
		if err := f.header.SetValue("blockingFactor", fmt.Sprintf("%02d", config.BlockingFactor)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// AddBatch finalizes the batch under the 1-based batch number it will
// occupy and appends it. Fails with ErrFileFinalized once the file has been
// finalized; a failed call leaves the file unchanged.
func (f *File) AddBatch(batch *Batch) error {
	if f.finalized {
		return ErrFileFinalized
	}
	if err := batch.Finalize(len(f.batches) + 1); err != nil {
		return err
	}
	f.batches = append(f.batches, batch)
	return nil
}

// Finalize computes the file control totals and the block padding, then
// locks the header and control records. Calling it again is a no-op.
//
// The totals are read back from the batch control records rather than from
// shadow accumulators, so the control lines are the single source of truth.
// The record count is 2 (file header and control) + 2 per batch (header and
// control) + 1 per entry; the block count rounds it up to the blocking
// factor, and nine-fill lines pad the file to that block boundary.
func (f *File) Finalize() error {
	if f.finalized {
		return nil
	}

	if err := f.control.SetInt("batchCount", int64(len(f.batches))); err != nil {
		return err
	}

	var entryCount, entryHash, debitAmount, creditAmount int64
	for _, batch := range f.batches {
		n, err := batch.control.GetInt("entryCount")
		if err != nil {
			return err
		}
		entryCount += n

		h, err := batch.control.GetInt("entryHash")
		if err != nil {
			return err
		}
		entryHash += h

		d, err := batch.control.GetInt("debitAmount")
		if err != nil {
			return err
		}
		debitAmount += d

		c, err := batch.control.GetInt("creditAmount")
		if err != nil {
			return err
		}
		creditAmount += c
	}

	if err := f.control.SetInt("entryCount", entryCount); err != nil {
		return err
	}
	if err := f.control.SetInt("entryHash", entryHash%entryHashModulus); err != nil {
		return err
	}
	if err := f.control.SetInt("debitAmount", debitAmount); err != nil {
		return err
	}
	if err := f.control.SetInt("creditAmount", creditAmount); err != nil {
		return err
	}

	blockingFactor, err := f.header.GetInt("blockingFactor")
	if err != nil {
		return err
	}
	if blockingFactor <= 0 {
		return fmt.Errorf("invalid blocking factor %d", blockingFactor)
	}

	recordCount := 2 + 2*int64(len(f.batches)) + entryCount
	blockCount := recordCount / blockingFactor
	if mod := recordCount % blockingFactor; mod != 0 {
		blockCount++
		fill := strings.Repeat("9", codec.RecordWidth)
		for i := int64(0); i < blockingFactor-mod; i++ {
			f.nineFill = append(f.nineFill, fill)
		}
	}
	if err := f.control.SetInt("blockCount", blockCount); err != nil {
		return err
	}

	f.header.Lock()
	f.control.Lock()
	f.finalized = true
	return nil
}

// Finalized reports whether the file has been finalized.
func (f *File) Finalized() bool {
	return f.finalized
}

// Header returns the file header record.
func (f *File) Header() *codec.Record {
	return f.header
}

// Control returns the file control record.
func (f *File) Control() *codec.Record {
	return f.control
}

// BatchCount returns the number of batches added so far.
func (f *File) BatchCount() int {
	return len(f.batches)
}

// Batch returns the batch at the given zero-based position, or nil if the
// position is out of range.
func (f *File) Batch(i int) *Batch {
	if i < 0 || i >= len(f.batches) {
		return nil
	}
	return f.batches[i]
}

// EntryCount returns the number of entries across all batches.
func (f *File) EntryCount() int {
	n := 0
	for _, batch := range f.batches {
		n += batch.EntryCount()
	}
	return n
}

// Render returns the complete file text: header line, each batch's lines,
// control line, and the nine-fill lines, CRLF-joined. Fails with
// ErrNotFinalized until Finalize has run.
func (f *File) Render() (string, error) {
	if !f.finalized {
		return "", ErrNotFinalized
	}

	lines := make([]string, 0, 2+len(f.batches)+len(f.nineFill))
	lines = append(lines, f.header.Render())
	for _, batch := range f.batches {
		lines = append(lines, batch.Render())
	}
	lines = append(lines, f.control.Render())
	lines = append(lines, f.nineFill...)
	return strings.Join(lines, eol), nil
}

// WriteFile renders the file and writes the text to path. Fails with
// ErrNotFinalized until Finalize has run.
func (f *File) WriteFile(path string) error {
	text, err := f.Render()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}
