//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package fs

import (
	"io/fs"
	"os"

	"fmeta/internal/fm"
)

// statPath maps os.Stat onto the Unix stat layout. There is no owner,
// group or link count to report, and the change time is approximated by
// the modification time.
func statPath(path string) (*fm.StatData, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	mode := uint32(info.Mode().Perm())
	switch {
	case info.Mode().IsRegular():
		mode |= 0o100000
	case info.IsDir():
		mode |= 0o040000
	case info.Mode()&fs.ModeSymlink != 0:
		mode |= 0o120000
	}

	return &fm.StatData{
		Size:  info.Size(),
		Mode:  mode,
		Nlink: 1,
		Atime: info.ModTime(),
		Mtime: info.ModTime(),
		Ctime: info.ModTime(),
	}, nil
}
