// Package identity provides the IdentityResolver implementations that map
// numeric owner and group ids to names.
package identity

import (
	"fmt"

	"fmeta/internal/config"
	"fmeta/internal/fm"
)

// NewResolverFromConfig creates an IdentityResolver based on the configured source.
func NewResolverFromConfig(cfg config.IdentityConfig) (fm.IdentityResolver, error) {
	switch cfg.Source {
	case "os", "":
		return OSResolver{}, nil
	case "files":
		return NewFileResolver(cfg.PasswdPath, cfg.GroupPath), nil
	case "none":
		return fm.NopResolver{}, nil
	default:
		return nil, fmt.Errorf("unknown identity source: %q", cfg.Source)
	}
}
