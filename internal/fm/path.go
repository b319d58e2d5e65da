package fm

import (
	"path/filepath"
	"strings"
)

// Path represents a validated filesystem path.
// Path objects are created by FilesystemManager.Resolve() which makes the
// path absolute and follows every symlink in it.
type Path struct {
	absPath      string
	resolvedPath string
}

// NewPath creates a Path from its components.
// This is primarily for use by FilesystemManager implementations.
func NewPath(absPath, resolvedPath string) *Path {
	return &Path{
		absPath:      absPath,
		resolvedPath: resolvedPath,
	}
}

// String returns the symlink-resolved absolute path.
func (p *Path) String() string {
	return p.resolvedPath
}

// Given returns the absolute path as the caller spelled it, before symlinks
// were followed. Name-derived fields come from this one.
func (p *Path) Given() string {
	return p.absPath
}

// pathParts holds the fields of a FileRecord that derive from the path
// string alone.
type pathParts struct {
	Name          string
	Stem          string
	Extension     string
	AllExtensions []string
	Parent        string
}

// splitPath derives name, stem and extensions from p without touching the
// filesystem. A leading dot does not start an extension (".bashrc" has
// none) and a name ending in a dot has no extensions at all.
// "archive.tar.gz" yields stem "archive" and extensions [".tar", ".gz"].
func splitPath(p string) pathParts {
	name := filepath.Base(p)
	parts := pathParts{
		Name:          name,
		Stem:          name,
		AllExtensions: []string{},
		Parent:        filepath.Dir(p),
	}
	if name == "." || name == string(filepath.Separator) || strings.HasSuffix(name, ".") {
		return parts
	}

	trimmed := strings.TrimLeft(name, ".")
	segments := strings.Split(trimmed, ".")
	if len(segments) < 2 {
		return parts
	}

	exts := make([]string, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		exts = append(exts, "."+seg)
	}

	parts.AllExtensions = exts
	parts.Extension = exts[len(exts)-1]
	parts.Stem = strings.TrimSuffix(name, strings.Join(exts, ""))
	return parts
}
