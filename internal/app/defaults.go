package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths derived from the home
// directory:
//   - config_path: ~/.config/fmeta.toml
//   - base_dir: ~/.local/share/fmeta
//   - log_dir: ~/.local/share/fmeta/log
func GetDefaults() (map[string]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	baseDir := filepath.Join(homeDir, ".local", "share", "fmeta")

	return map[string]string{
		"config_path": filepath.Join(homeDir, ".config", "fmeta.toml"),
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}
