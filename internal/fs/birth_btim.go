//go:build darwin || freebsd

package fs

import (
	"database/sql"

	"golang.org/x/sys/unix"
)

// birthTime reads st_birthtime. Filesystems without one report a
// non-positive second count.
func birthTime(st *unix.Stat_t) sql.NullTime {
	if st.Btim.Sec <= 0 {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: timespecTime(st.Btim), Valid: true}
}
