//go:build linux

package fs

import (
	"database/sql"
	"errors"
	"io/fs"
	"time"

	"fmeta/internal/fm"

	"golang.org/x/sys/unix"
)

const statxMask = unix.STATX_BASIC_STATS | unix.STATX_BTIME

// statPath uses statx so birth time comes back from the same query as
// everything else. Kernels older than 4.11 and sandboxes that filter statx
// fall back to plain stat.
func statPath(path string) (*fm.StatData, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, statxMask, &stx)
	if statxUnavailable(err) {
		return statFallback(path)
	}
	if err != nil {
		return nil, &fs.PathError{Op: "statx", Path: path, Err: err}
	}

	data := &fm.StatData{
		Size:  int64(stx.Size),
		Mode:  uint32(stx.Mode),
		Nlink: uint64(stx.Nlink),
		UID:   stx.Uid,
		GID:   stx.Gid,
		Atime: statxTime(stx.Atime),
		Mtime: statxTime(stx.Mtime),
		Ctime: statxTime(stx.Ctime),
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		data.BirthTime = sql.NullTime{Time: statxTime(stx.Btime), Valid: true}
	}

	return data, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}

// statxUnavailable reports whether err means the statx syscall itself is
// missing or blocked. Seccomp profiles commonly answer EPERM; a refused
// path lookup is EACCES and is not retried.
func statxUnavailable(err error) bool {
	return errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EPERM)
}
