package fm

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

var (
	// ErrNotFound is returned when a path does not resolve to an existing
	// filesystem entry.
	ErrNotFound = errors.New("file not found")

	// ErrNotAFile is returned when a path exists but is not a regular file.
	ErrNotAFile = errors.New("path is not a file")

	// ErrAccessDenied is returned when the operating system refuses a stat,
	// open or read.
	ErrAccessDenied = errors.New("access denied")

	// ErrIO covers any other operating system failure while reading.
	ErrIO = errors.New("i/o error")

	// ErrUnexpected is the catch-all for failures that fit no other kind.
	ErrUnexpected = errors.New("unexpected error")
)

// AccessDeniedDigest is stored in FileRecord.ContentDigest when the file
// could be stat'ed but its content could not be read.
const AccessDeniedDigest = "(access denied)"

// Classify wraps err with the matching sentinel from the error taxonomy.
// Both the sentinel and the original cause stay reachable via errors.Is.
// Errors that already carry a sentinel are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	for _, kind := range []error{ErrNotFound, ErrNotAFile, ErrAccessDenied, ErrIO, ErrUnexpected} {
		if errors.Is(err, kind) {
			return err
		}
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.ELOOP):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}

	var pathErr *fs.PathError
	var errno syscall.Errno
	if errors.As(err, &pathErr) || errors.As(err, &errno) {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return fmt.Errorf("%w: %w", ErrUnexpected, err)
}
