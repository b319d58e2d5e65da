package fm

import "io"

// Digester computes a content digest by streaming r to the end.
// Implementations must use memory bounded by their chunk size regardless
// of how much data r yields.
type Digester interface {
	// Algorithm names the hash function, e.g. "sha1".
	Algorithm() string

	// Sum reads r until EOF and returns the lowercase hex digest.
	Sum(r io.Reader) (string, error)
}
