// Package ach assembles fixed-width bank interchange files out of the
// record model in pkg/codec.
//
// # Structure
//
// A File owns a file header, a file control, and an ordered sequence of
// Batches. A Batch owns a batch header, a batch control, and an ordered
// sequence of entry detail records. Ownership is exclusive: once an entry
// is added to a batch, or a batch to a file, it has no life outside its
// owner, and nothing is shared between sibling files or batches.
//
// # Lifecycle
//
// Construction flows one way. Entries are created, added to a batch (which
// stamps their trace number and locks them), the batch is added to a file
// (which finalizes the batch: batch number, control totals, locked header
// and control), and the file is finalized (file control totals, block
// count, nine-fill padding). Every finalization happens exactly once and is
// irreversible; repeated Finalize calls are no-ops, which is the only
// recovery mechanism offered. Structural additions after finalization fail
// with ErrBatchFinalized or ErrFileFinalized and never mutate state.
//
// # Control totals
//
// Batch finalization counts its entries, sums their routing ids into the
// entry hash (rightmost 10 digits), and accumulates entry amounts into the
// debit and credit totals as gated by the batch's service class code. File
// finalization sums the batch control records and rounds the record count
// up to the blocking factor, padding the file with lines of 94 '9's so it
// ends on an exact block boundary.
//
// # Example
//
//	file, _ := ach.NewFile(ach.FileConfig{
//		IDModifier:      "A",
//		Destination:     "076401251",
//		DestinationName: "achbank",
//		Origin:          "1987654321",
//		OriginName:      "company inc",
//	})
//	batch, _ := ach.NewBatch(ach.BatchConfig{
//		ServiceCode:   ach.ServiceCreditsOnly,
//		ClassCode:     ach.EntryClassPPD,
//		CompanyName:   "company inc",
//		Description:   "PAYROLL",
//		CompanyID:     "1234567890",
//		ODFIID:        "07640125",
//		EffectiveDate: time.Now().AddDate(0, 0, 1),
//	})
//	entry, _ := ach.NewEntry(ach.EntryConfig{
//		TransactionCode: ach.TransCheckingCredit,
//		RDFIID:          "07640125",
//		AccountNumber:   "1234567",
//		Amount:          10000,
//		ID:              "EMP-42",
//		Name:            "JANE EXAMPLE",
//	})
//	_ = batch.AddEntry(entry)
//	_ = file.AddBatch(batch)
//	_ = file.Finalize()
//	text, _ := file.Render()
package ach
