package digest

import "fmeta/internal/config"

// NewDigesterFromConfig creates an Engine from the digest section of the config.
func NewDigesterFromConfig(cfg config.DigestConfig) (*Engine, error) {
	return New(cfg.Algorithm, cfg.ChunkSize)
}
