package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fmeta/internal/fm"
)

// OSFilesystemManager is the real filesystem implementation of FilesystemManager.
// It performs actual filesystem operations using the os package and, where
// available, raw stat syscalls.
type OSFilesystemManager struct{}

// NewOSFilesystemManager creates a new filesystem manager that operates on the real filesystem.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Resolve converts rawPath to an absolute path and follows every symlink in it.
// The returned error wraps the underlying *fs.PathError, so callers can tell a
// missing entry from a permission problem.
func (m *OSFilesystemManager) Resolve(rawPath string) (*fm.Path, error) {
	if rawPath == "" {
		return nil, fmt.Errorf("empty path: %w", os.ErrNotExist)
	}

	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// EvalSymlinks reports a link loop as a bare error; stat names it ELOOP.
		if _, statErr := os.Stat(absPath); statErr != nil {
			err = statErr
		}
		return nil, fmt.Errorf("following symlinks: %w", err)
	}

	return fm.NewPath(absPath, resolved), nil
}

// Stat performs one stat query on the resolved path, following symlinks.
func (m *OSFilesystemManager) Stat(path *fm.Path) (*fm.StatData, error) {
	return statPath(path.String())
}

// Open opens a file for reading.
func (m *OSFilesystemManager) Open(path *fm.Path) (io.ReadCloser, error) {
	return os.Open(path.String())
}

// Compile-time check that OSFilesystemManager implements fm.FilesystemManager interface
var _ fm.FilesystemManager = (*OSFilesystemManager)(nil)
