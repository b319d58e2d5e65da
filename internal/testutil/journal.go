package testutil

import (
	"errors"
	"testing"

	"fmeta/internal/fm"
	"fmeta/internal/journal"
)

// NewTestJournal creates a new in-memory SQLite journal with schema applied.
// The journal is automatically closed when the test completes.
func NewTestJournal(t *testing.T) fm.Journal {
	t.Helper()

	j, err := journal.NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}

	t.Cleanup(func() {
		j.Close()
	})

	return j
}

// ErrJournalBroken is returned by a FailingJournal.
var ErrJournalBroken = errors.New("journal unavailable")

// FailingJournal rejects every call.
type FailingJournal struct {
	Appends int
}

func (j *FailingJournal) Append(*fm.JournalEntry) error {
	j.Appends++
	return ErrJournalBroken
}

func (j *FailingJournal) List(int) ([]*fm.JournalEntry, error) { return nil, ErrJournalBroken }
func (j *FailingJournal) Close() error                         { return nil }

var _ fm.Journal = (*FailingJournal)(nil)
