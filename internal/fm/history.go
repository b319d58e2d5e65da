package fm

import (
	"errors"
	"fmt"
)

// ErrJournalDisabled is returned by History when no journal is configured.
var ErrJournalDisabled = errors.New("inspection journal is disabled")

// History returns the most recent inspections, ordered newest first.
func (s *Inspector) History(limit int) ([]*JournalEntry, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	entries, err := s.journal.List(limit)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	return entries, nil
}
