// Package archive persists finalized interchange files in a pebble store,
// keyed by KSUID so iteration order is creation order.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/finforge/nacha/pkg/ach"
)

// ErrNotFound is returned when no archived file has the requested id.
var ErrNotFound = errors.New("archived file not found")

// Entry is one archived file: the rendered text plus the control totals
// captured at archive time.
type Entry struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	BatchCount   int64     `json:"batch_count"`
	EntryCount   int64     `json:"entry_count"`
	DebitAmount  int64     `json:"debit_amount"`
	CreditAmount int64     `json:"credit_amount"`
	Text         string    `json:"text"`
}

// Summary is an Entry without its rendered text, for listings.
type Summary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	BatchCount   int64     `json:"batch_count"`
	EntryCount   int64     `json:"entry_count"`
	DebitAmount  int64     `json:"debit_amount"`
	CreditAmount int64     `json:"credit_amount"`
}

// Archive stores rendered files in a pebble database.
type Archive struct {
	db *pebble.DB
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*Archive, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return &Archive{db: db}, nil
}

// Put renders the file and stores it under a fresh KSUID. The file must be
// finalized; an unfinalized file surfaces ach.ErrNotFinalized unchanged.
func (a *Archive) Put(file *ach.File) (string, error) {
	text, err := file.Render()
	if err != nil {
		return "", err
	}

	entry := Entry{
		ID:        ksuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Text:      text,
	}
	if entry.BatchCount, err = file.Control().GetInt("batchCount"); err != nil {
		return "", err
	}
	if entry.EntryCount, err = file.Control().GetInt("entryCount"); err != nil {
		return "", err
	}
	if entry.DebitAmount, err = file.Control().GetInt("debitAmount"); err != nil {
		return "", err
	}
	if entry.CreditAmount, err = file.Control().GetInt("creditAmount"); err != nil {
		return "", err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("failed to marshal archive entry: %w", err)
	}
	if err := a.db.Set([]byte(entry.ID), data, pebble.Sync); err != nil {
		return "", fmt.Errorf("failed to store archive entry: %w", err)
	}
	return entry.ID, nil
}

// Get returns the archived file with the given id.
func (a *Archive) Get(id string) (*Entry, error) {
	data, closer, err := a.db.Get([]byte(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read archive entry: %w", err)
	}
	defer closer.Close()

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archive entry: %w", err)
	}
	return &entry, nil
}

// List returns summaries of every archived file in creation order. KSUIDs
// sort chronologically, so a plain key scan is enough.
func (a *Archive) List() ([]Summary, error) {
	iter, err := a.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate archive: %w", err)
	}
	defer iter.Close()

	var summaries []Summary
	for iter.First(); iter.Valid(); iter.Next() {
		var entry Entry
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal archive entry %q: %w", iter.Key(), err)
		}
		summaries = append(summaries, Summary{
			ID:           entry.ID,
			CreatedAt:    entry.CreatedAt,
			BatchCount:   entry.BatchCount,
			EntryCount:   entry.EntryCount,
			DebitAmount:  entry.DebitAmount,
			CreditAmount: entry.CreditAmount,
		})
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate archive: %w", err)
	}
	return summaries, nil
}

// Delete removes an archived file. Fails with ErrNotFound if the id is not
// in the archive.
func (a *Archive) Delete(id string) error {
	_, closer, err := a.db.Get([]byte(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read archive entry: %w", err)
	}
	if err := closer.Close(); err != nil {
		return fmt.Errorf("failed to read archive entry: %w", err)
	}
	return a.db.Delete([]byte(id), pebble.Sync)
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
