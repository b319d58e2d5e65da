package journal

import (
	"fmt"
	"path/filepath"

	"fmeta/internal/config"
	"fmeta/internal/fm"
)

// NewJournalFromConfig creates a Journal implementation based on the journal config type.
// A disabled journal is reported as a nil Journal and a nil error.
func NewJournalFromConfig(cfg config.JournalConfig) (fm.Journal, error) {
	switch cfg.Type {
	case "none", "":
		return nil, nil
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite journal")
		}
		return NewSQLiteJournal(filepath.Join(cfg.DataDir, "journal.db"))
	case "memory":
		return NewSQLiteJournal(":memory:")
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Type)
	}
}
