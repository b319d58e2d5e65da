// Package digest computes content digests by streaming data through a hash
// in fixed-size chunks, so memory use stays bounded by the chunk size no
// matter how large the input is.
package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"fmeta/internal/fm"

	"github.com/zeebo/blake3"
)

const (
	// DefaultChunkSize is the read size used when none is configured.
	DefaultChunkSize = 8 * 1024

	// MaxChunkSize caps configured chunk sizes.
	MaxChunkSize = 16 * 1024 * 1024

	// DefaultAlgorithm matches the reference tool's 160-bit digest.
	DefaultAlgorithm = "sha1"
)

var algorithms = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"blake3": func() hash.Hash { return blake3.New() },
}

// Engine is a Digester that reads its input ChunkSize bytes at a time.
// The digest identifies content; it is not meant for authentication.
type Engine struct {
	algorithm string
	newHash   func() hash.Hash
	chunkSize int
}

var _ fm.Digester = (*Engine)(nil)

// New creates an Engine for the named algorithm ("sha1", "sha256" or
// "blake3"). An empty algorithm selects DefaultAlgorithm and a chunkSize of
// zero selects DefaultChunkSize.
func New(algorithm string, chunkSize int) (*Engine, error) {
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	newHash, ok := algorithms[algorithm]
	if !ok {
		return nil, fmt.Errorf("unknown digest algorithm %q (supported: %s)", algorithm, strings.Join(Algorithms(), ", "))
	}

	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize < 0 || chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("chunk size out of range (1..%d): %d", MaxChunkSize, chunkSize)
	}

	return &Engine{
		algorithm: algorithm,
		newHash:   newHash,
		chunkSize: chunkSize,
	}, nil
}

// Algorithm returns the name of the hash function.
func (e *Engine) Algorithm() string {
	return e.algorithm
}

// ChunkSize returns the number of bytes requested per read.
func (e *Engine) ChunkSize() int {
	return e.chunkSize
}

// Sum reads r to EOF and returns the lowercase hex digest of everything read.
// The first read error aborts the computation.
func (e *Engine) Sum(r io.Reader) (string, error) {
	h := e.newHash()
	buf := make([]byte, e.chunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n]) // hash.Hash writes never fail
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Algorithms lists the supported algorithm names.
func Algorithms() []string {
	return []string{"blake3", "sha1", "sha256"}
}
