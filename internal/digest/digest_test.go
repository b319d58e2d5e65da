package digest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		algorithm     string
		chunkSize     int
		wantAlgorithm string
		wantChunk     int
		wantErr       bool
	}{
		{name: "defaults", wantAlgorithm: "sha1", wantChunk: DefaultChunkSize},
		{name: "sha256 custom chunk", algorithm: "sha256", chunkSize: 64, wantAlgorithm: "sha256", wantChunk: 64},
		{name: "blake3", algorithm: "blake3", chunkSize: 1, wantAlgorithm: "blake3", wantChunk: 1},
		{name: "unknown algorithm", algorithm: "md4", wantErr: true},
		{name: "negative chunk", chunkSize: -1, wantErr: true},
		{name: "chunk too large", chunkSize: MaxChunkSize + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.algorithm, tt.chunkSize)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%q, %d) expected error", tt.algorithm, tt.chunkSize)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if e.Algorithm() != tt.wantAlgorithm {
				t.Errorf("Algorithm() = %q, want %q", e.Algorithm(), tt.wantAlgorithm)
			}
			if e.ChunkSize() != tt.wantChunk {
				t.Errorf("ChunkSize() = %d, want %d", e.ChunkSize(), tt.wantChunk)
			}
		})
	}
}

func TestEngine_Sum_KnownVectors(t *testing.T) {
	tests := []struct {
		algorithm string
		input     string
		want      string
	}{
		{"sha1", "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"sha1", "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"sha256", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"blake3", "", "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm+"/"+tt.input, func(t *testing.T) {
			e, err := New(tt.algorithm, 0)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			got, err := e.Sum(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sum(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestEngine_Sum_ChunkSizeIndependent(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdefghijklmnopqrstuvwxyz"), 1000)
	content = append(content, 0x00, 0xff, 0x7f)

	dir := t.TempDir()
	path := filepath.Join(dir, "fixed.bin")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	for _, algorithm := range Algorithms() {
		t.Run(algorithm, func(t *testing.T) {
			var sums []string
			for _, chunk := range []int{1, 64, 8192} {
				e, err := New(algorithm, chunk)
				if err != nil {
					t.Fatalf("New(%q, %d) error = %v", algorithm, chunk, err)
				}
				f, err := os.Open(path)
				if err != nil {
					t.Fatalf("opening test file: %v", err)
				}
				sum, err := e.Sum(f)
				f.Close()
				if err != nil {
					t.Fatalf("Sum() with chunk %d error = %v", chunk, err)
				}
				sums = append(sums, sum)
			}
			for i := 1; i < len(sums); i++ {
				if sums[i] != sums[0] {
					t.Errorf("digest differs across chunk sizes: %v", sums)
				}
			}
		})
	}
}

func TestEngine_Sum_Determinism(t *testing.T) {
	e, err := New("sha1", 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	a, _ := e.Sum(strings.NewReader("same content"))
	b, _ := e.Sum(strings.NewReader("same content"))
	if a != b {
		t.Errorf("repeated Sum() differs: %s vs %s", a, b)
	}

	c, _ := e.Sum(strings.NewReader("same contenT"))
	if a == c {
		t.Error("single-byte change produced identical digest")
	}
}

// boundedReader records the largest buffer it was asked to fill.
type boundedReader struct {
	r       io.Reader
	maxRead int
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if len(p) > b.maxRead {
		b.maxRead = len(p)
	}
	return b.r.Read(p)
}

func TestEngine_Sum_ReadsInChunks(t *testing.T) {
	e, err := New("sha256", 64)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	br := &boundedReader{r: bytes.NewReader(make([]byte, 1<<20))}
	if _, err := e.Sum(br); err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if br.maxRead != 64 {
		t.Errorf("largest read = %d bytes, want 64", br.maxRead)
	}
}

// failingReader returns some data and then an error.
type failingReader struct {
	served bool
	err    error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.served {
		f.served = true
		return copy(p, "partial"), nil
	}
	return 0, f.err
}

func TestEngine_Sum_PropagatesReadError(t *testing.T) {
	e, err := New("sha1", 4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	wantErr := errors.New("device gone")
	_, err = e.Sum(&failingReader{err: wantErr})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Sum() error = %v, want %v", err, wantErr)
	}
}
