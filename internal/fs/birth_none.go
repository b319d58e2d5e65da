//go:build linux || netbsd || openbsd || dragonfly

package fs

import (
	"database/sql"

	"golang.org/x/sys/unix"
)

// birthTime is unknown on these platforms' stat(2); Linux gets it from
// statx instead.
func birthTime(*unix.Stat_t) sql.NullTime {
	return sql.NullTime{}
}
