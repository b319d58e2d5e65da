package testutil

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"fmeta/internal/fm"
)

const (
	modeRegular   = 0o100000
	modeDirectory = 0o040000
	modeFIFO      = 0o010000
)

// MockFile represents an entry in the mock filesystem.
type MockFile struct {
	Content []byte
	Stat    fm.StatData
	// OpenErr, when set, is returned by Open. The entry can still be
	// stat'ed, which is how a file with unreadable content looks.
	OpenErr error
	// ReadErr, when set, is returned by the reader after the content has
	// been consumed.
	ReadErr error
}

// MockFilesystemManager is an in-memory filesystem for testing.
type MockFilesystemManager struct {
	files     map[string]*MockFile
	links     map[string]string
	statErr   map[string]error
	StatCalls int
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files:   make(map[string]*MockFile),
		links:   make(map[string]string),
		statErr: make(map[string]error),
	}
}

// DefaultTime is the timestamp given to every entry created by the Add helpers.
var DefaultTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// AddFile adds a regular file owned by 1000:1000 with mode 0644.
func (m *MockFilesystemManager) AddFile(path string, content []byte) *MockFile {
	f := &MockFile{
		Content: content,
		Stat: fm.StatData{
			Size:  int64(len(content)),
			Mode:  modeRegular | 0o644,
			Nlink: 1,
			UID:   1000,
			GID:   1000,
			Atime: DefaultTime,
			Mtime: DefaultTime,
			Ctime: DefaultTime,
		},
	}
	m.files[path] = f
	return f
}

// AddDirectory adds a directory with mode 0755.
func (m *MockFilesystemManager) AddDirectory(path string) *MockFile {
	f := &MockFile{
		Stat: fm.StatData{
			Mode:  modeDirectory | 0o755,
			Nlink: 2,
			UID:   1000,
			GID:   1000,
			Atime: DefaultTime,
			Mtime: DefaultTime,
			Ctime: DefaultTime,
		},
	}
	m.files[path] = f
	return f
}

// AddFIFO adds a named pipe.
func (m *MockFilesystemManager) AddFIFO(path string) *MockFile {
	f := &MockFile{
		Stat: fm.StatData{
			Mode:  modeFIFO | 0o600,
			Nlink: 1,
			Atime: DefaultTime,
			Mtime: DefaultTime,
			Ctime: DefaultTime,
		},
	}
	m.files[path] = f
	return f
}

// AddSymlink makes link resolve to target.
func (m *MockFilesystemManager) AddSymlink(link, target string) {
	m.links[link] = target
}

// FailStat makes every Stat of path return err.
func (m *MockFilesystemManager) FailStat(path string, err error) {
	m.statErr[path] = err
}

// SetBirthTime records a birth time for path.
func (m *MockFilesystemManager) SetBirthTime(path string, t time.Time) {
	if f, ok := m.files[path]; ok {
		f.Stat.BirthTime = sql.NullTime{Time: t, Valid: true}
	}
}

func (m *MockFilesystemManager) Resolve(rawPath string) (*fm.Path, error) {
	if rawPath == "" {
		return nil, &fs.PathError{Op: "resolve", Path: rawPath, Err: fs.ErrNotExist}
	}
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, err
	}

	resolved := absPath
	for i := 0; i < 40; i++ {
		target, ok := m.links[resolved]
		if !ok {
			break
		}
		resolved = target
	}

	if _, ok := m.files[resolved]; !ok {
		if _, failing := m.statErr[resolved]; !failing {
			return nil, &fs.PathError{Op: "lstat", Path: absPath, Err: fs.ErrNotExist}
		}
	}

	return fm.NewPath(absPath, resolved), nil
}

func (m *MockFilesystemManager) Stat(path *fm.Path) (*fm.StatData, error) {
	m.StatCalls++
	if err, ok := m.statErr[path.String()]; ok {
		return nil, &fs.PathError{Op: "stat", Path: path.String(), Err: err}
	}
	file, ok := m.files[path.String()]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path.String(), Err: fs.ErrNotExist}
	}
	st := file.Stat
	return &st, nil
}

func (m *MockFilesystemManager) Open(path *fm.Path) (io.ReadCloser, error) {
	file, ok := m.files[path.String()]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path.String(), Err: fs.ErrNotExist}
	}
	if file.OpenErr != nil {
		return nil, &fs.PathError{Op: "open", Path: path.String(), Err: file.OpenErr}
	}
	if file.Stat.Mode&modeDirectory != 0 {
		return nil, fmt.Errorf("cannot open directory: %s", path.String())
	}
	var r io.Reader = bytes.NewReader(file.Content)
	if file.ReadErr != nil {
		r = io.MultiReader(r, &errReader{err: &fs.PathError{Op: "read", Path: path.String(), Err: file.ReadErr}})
	}
	return io.NopCloser(r), nil
}

type errReader struct{ err error }

func (r *errReader) Read([]byte) (int, error) { return 0, r.err }

// Compile-time check
var _ fm.FilesystemManager = (*MockFilesystemManager)(nil)
