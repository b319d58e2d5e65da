//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package fs

import (
	"io/fs"
	"time"

	"fmeta/internal/fm"

	"golang.org/x/sys/unix"
)

// statFallback performs a classic stat(2). Birth time is reported where
// Stat_t carries it.
func statFallback(path string) (*fm.StatData, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: err}
	}

	return &fm.StatData{
		Size:      st.Size,
		Mode:      uint32(st.Mode),
		Nlink:     uint64(st.Nlink),
		UID:       st.Uid,
		GID:       st.Gid,
		Atime:     timespecTime(st.Atim),
		Mtime:     timespecTime(st.Mtim),
		Ctime:     timespecTime(st.Ctim),
		BirthTime: birthTime(&st),
	}, nil
}

func timespecTime(ts unix.Timespec) time.Time {
	sec, nsec := ts.Unix()
	return time.Unix(sec, nsec)
}
