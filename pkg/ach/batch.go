package ach

import (
	"fmt"
	"strings"
	"time"

	"github.com/finforge/nacha/pkg/codec"
)

// BatchConfig holds the values a batch is created from.
type BatchConfig struct {
	ServiceCode   string    // service class code (ServiceMixed, ServiceCreditsOnly, ...)
	ClassCode     string    // standard entry class, e.g. EntryClassPPD
	CompanyName   string    // originating company name
	Description   string    // company entry description, e.g. "PAYROLL"
	CompanyID     string    // company identification
	ODFIID        string    // originating DFI identification, 8 digits
	EffectiveDate time.Time // requested effective entry date
}

// EntryConfig holds the values an entry detail record is created from.
type EntryConfig struct {
	TransactionCode string // TransCheckingCredit or TransSavingsCredit
	RDFIID          string // receiving DFI routing id, 8 digits
	AccountNumber   string // receiving DFI account number
	Amount          int64  // amount in cents
	ID              string // individual identification number
	Name            string // individual name
}

// Batch owns one batch header, one batch control, and an ordered sequence
// of entry detail records. Insertion order is processing order and drives
// each entry's trace sequence number. Once a batch is added to a File the
// file owns it exclusively.
type Batch struct {
	header    *codec.Record
	control   *codec.Record
	entries   []*codec.Record
	finalized bool
}

// NewBatch creates a batch with its header populated from config. Values
// shared between header and control (service code, company id, ODFI id) are
// written to both records. The effective entry date is advanced a day at a
// time until it does not fall on a weekend; holidays are the caller's
// problem.
func NewBatch(config BatchConfig) (*Batch, error) {
	b := &Batch{
		header:  codec.NewBatchHeader(),
		control: codec.NewBatchControl(),
	}

	if err := b.setDualField("serviceCode", config.ServiceCode); err != nil {
		return nil, err
	}
	if err := b.header.SetValue("entryClassCode", config.ClassCode); err != nil {
		return nil, err
	}
	if err := b.header.SetValue("companyName", config.CompanyName); err != nil {
		return nil, err
	}
	if err := b.header.SetValue("entryDescription", config.Description); err != nil {
		return nil, err
	}
	if err := b.header.SetValue("descriptiveDate", time.Now().Format("Jan 06")); err != nil {
		return nil, err
	}

	effective := config.EffectiveDate
	for effective.Weekday() == time.Saturday || effective.Weekday() == time.Sunday {
		effective = effective.AddDate(0, 0, 1)
	}
	if err := b.header.SetValue("entryDate", effective.Format("060102")); err != nil {
		return nil, err
	}

	if err := b.setDualField("companyId", config.CompanyID); err != nil {
		return nil, err
	}
	if err := b.setDualField("odfiId", config.ODFIID); err != nil {
		return nil, err
	}
	return b, nil
}

// NewEntry creates an entry detail record from config. The check digit is
// derived from the routing id at write time; the ODFI id and sequence
// number halves of the trace number are stamped later by AddEntry.
func NewEntry(config EntryConfig) (*codec.Record, error) {
	entry := codec.NewEntryDetail()

	if err := entry.SetValue("transactionCode", config.TransactionCode); err != nil {
		return nil, err
	}
	if err := entry.SetValue("rdfiId", config.RDFIID); err != nil {
		return nil, err
	}
	if err := entry.SetValue("dfiAccountNumber", config.AccountNumber); err != nil {
		return nil, err
	}
	if err := entry.SetInt("amount", config.Amount); err != nil {
		return nil, err
	}
	if err := entry.SetValue("idNumber", config.ID); err != nil {
		return nil, err
	}
	if err := entry.SetValue("name", config.Name); err != nil {
		return nil, err
	}
	return entry, nil
}

// AddEntry stamps the entry's ODFI id from the batch header and its 1-based
// trace sequence number, locks it against further mutation, and appends it.
// Fails with ErrBatchFinalized once the batch has been finalized; a failed
// call leaves the batch unchanged.
func (b *Batch) AddEntry(entry *codec.Record) error {
	if b.finalized {
		return ErrBatchFinalized
	}
	if entry.Kind() != codec.KindEntryDetail {
		return fmt.Errorf("cannot add a %s record as a batch entry", entry.Kind())
	}

	odfiID, err := b.header.GetValue("odfiId")
	if err != nil {
		return err
	}
	if err := entry.SetValue("odfiId", odfiID); err != nil {
		return err
	}
	if err := entry.SetInt("sequenceNumber", int64(len(b.entries)+1)); err != nil {
		return err
	}
	entry.Lock()

	b.entries = append(b.entries, entry)
	return nil
}

// Finalize writes batchNumber into header and control, computes the batch
// control totals over all entries, and locks both records. Calling it again
// is a no-op.
//
// The entry hash is the sum of the entries' routing ids, truncated to its
// rightmost 10 digits. The debit and credit totals are gated by the batch's
// single service class code rather than by each entry's own polarity: a
// mixed-service batch accumulates every entry's amount into both totals.
// That matches the format's batch-level accounting; tests flag it as a
// known limitation.
func (b *Batch) Finalize(batchNumber int) error {
	if b.finalized {
		return nil
	}

	if err := b.setDualField("batchNumber", fmt.Sprintf("%d", batchNumber)); err != nil {
		return err
	}
	if err := b.control.SetInt("entryCount", int64(len(b.entries))); err != nil {
		return err
	}

	serviceCode, err := b.header.GetValue("serviceCode")
	if err != nil {
		return err
	}

	var entryHash, debitAmount, creditAmount int64
	for _, entry := range b.entries {
		rdfiID, err := entry.GetInt("rdfiId")
		if err != nil {
			return err
		}
		entryHash += rdfiID

		amount, err := entry.GetInt("amount")
		if err != nil {
			return err
		}
		if serviceCode == ServiceDebitsOnly || serviceCode == ServiceMixed {
			debitAmount += amount
		}
		if serviceCode == ServiceCreditsOnly || serviceCode == ServiceMixed {
			creditAmount += amount
		}
	}

	if err := b.control.SetInt("entryHash", entryHash%entryHashModulus); err != nil {
		return err
	}
	if err := b.control.SetInt("debitAmount", debitAmount); err != nil {
		return err
	}
	if err := b.control.SetInt("creditAmount", creditAmount); err != nil {
		return err
	}

	b.header.Lock()
	b.control.Lock()
	b.finalized = true
	return nil
}

// Finalized reports whether the batch has been finalized.
func (b *Batch) Finalized() bool {
	return b.finalized
}

// Header returns the batch header record.
func (b *Batch) Header() *codec.Record {
	return b.header
}

// Control returns the batch control record.
func (b *Batch) Control() *codec.Record {
	return b.control
}

// EntryCount returns the number of entries added so far.
func (b *Batch) EntryCount() int {
	return len(b.entries)
}

// Render returns the batch's record lines joined with CRLF: header,
// entries in insertion order, control.
func (b *Batch) Render() string {
	lines := make([]string, 0, len(b.entries)+2)
	lines = append(lines, b.header.Render())
	for _, entry := range b.entries {
		lines = append(lines, entry.Render())
	}
	lines = append(lines, b.control.Render())
	return strings.Join(lines, eol)
}

// setDualField writes the same value into the header and control records.
func (b *Batch) setDualField(name, value string) error {
	if err := b.header.SetValue(name, value); err != nil {
		return err
	}
	return b.control.SetValue(name, value)
}
