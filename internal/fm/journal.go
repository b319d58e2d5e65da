package fm

import "time"

// JournalEntry summarizes one successful inspection.
type JournalEntry struct {
	ID              string
	InspectedAt     time.Time
	Path            string
	SizeBytes       int64
	ModifiedAt      time.Time
	DigestAlgorithm string
	ContentDigest   string
}

// Journal is an append-only log of inspections. It is write-mostly: the
// inspector never reads it back to answer an inspection.
type Journal interface {
	// Append records an entry.
	Append(entry *JournalEntry) error

	// List returns at most limit entries, newest first.
	List(limit int) ([]*JournalEntry, error)

	// Close releases the underlying storage.
	Close() error
}
