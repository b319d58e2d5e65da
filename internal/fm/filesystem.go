package fm

import (
	"database/sql"
	"io"
	"time"
)

// StatData is the raw result of one stat query against a resolved path.
// Field meanings follow the Unix stat structure; platforms without an
// equivalent leave UID/GID at zero and Nlink at one.
type StatData struct {
	Size  int64
	Mode  uint32 // st_mode: file type and permission bits
	Nlink uint64
	UID   uint32
	GID   uint32
	Atime time.Time
	Mtime time.Time
	// Ctime is the last status change, not the creation time.
	Ctime time.Time
	// BirthTime is only set where the kernel and filesystem report it.
	BirthTime sql.NullTime
}

// FilesystemManager provides an interface for filesystem operations.
// It abstracts file access to enable testing without touching the real filesystem.
type FilesystemManager interface {
	// Resolve makes rawPath absolute and follows all symlinks in it.
	// A path that does not exist fails here.
	Resolve(rawPath string) (*Path, error)

	// Stat performs a single stat query against the resolved path,
	// following symlinks.
	Stat(path *Path) (*StatData, error)

	// Open opens a file for reading.
	Open(path *Path) (io.ReadCloser, error)
}
