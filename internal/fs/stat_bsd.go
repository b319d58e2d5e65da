//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package fs

import "fmeta/internal/fm"

func statPath(path string) (*fm.StatData, error) {
	return statFallback(path)
}
