package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for fmeta.
type Config struct {
	// LogDir enables a persistent log file at <log_dir>/fmeta.log when set.
	LogDir   string         `toml:"log_dir"`
	Digest   DigestConfig   `toml:"digest"`
	Identity IdentityConfig `toml:"identity"`
	Journal  JournalConfig  `toml:"journal"`
}

// DigestConfig selects the content digest algorithm and read size.
type DigestConfig struct {
	Algorithm string `toml:"algorithm"`  // "sha1" (default), "sha256" or "blake3"
	ChunkSize int    `toml:"chunk_size"` // bytes per read; 0 means 8 KiB
}

// IdentityConfig selects how owner and group ids are turned into names.
// This uses a tagged union pattern - the Source field determines which other fields are relevant.
type IdentityConfig struct {
	Source string `toml:"source"` // "os" (default), "files" or "none"

	// files-specific fields (only used when Source == "files")
	PasswdPath string `toml:"passwd_path,omitempty"`
	GroupPath  string `toml:"group_path,omitempty"`
}

// JournalConfig represents configuration for the inspection journal.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type JournalConfig struct {
	Type    string `toml:"type"`               // "none" (default), "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// NewConfig creates a new Config with default values.
func NewConfig(baseDir string) *Config {
	return &Config{
		Digest: DigestConfig{
			Algorithm: "sha1",
			ChunkSize: 8 * 1024,
		},
		Identity: IdentityConfig{
			Source: "os",
		},
		Journal: JournalConfig{
			Type:    "none",
			DataDir: filepath.Join(baseDir, "journal"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// ReadOrDefault reads the config at path, falling back to NewConfig(baseDir)
// when the file does not exist. A file that exists but cannot be read or
// parsed is still an error.
func ReadOrDefault(path, baseDir string) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewConfig(baseDir), nil
	}
	return cfg, err
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
