package identity

import (
	"fmeta/internal/fm"

	"github.com/moby/sys/user"
)

const (
	DefaultPasswdPath = "/etc/passwd"
	DefaultGroupPath  = "/etc/group"
)

// FileResolver reads names straight from passwd(5) and group(5) formatted
// files. It is useful for inspecting files inside a chroot or container
// image whose accounts differ from the host's. The files are parsed on
// every lookup.
type FileResolver struct {
	passwdPath string
	groupPath  string
}

var _ fm.IdentityResolver = (*FileResolver)(nil)

// NewFileResolver creates a resolver over the given files. Empty paths
// select /etc/passwd and /etc/group.
func NewFileResolver(passwdPath, groupPath string) *FileResolver {
	if passwdPath == "" {
		passwdPath = DefaultPasswdPath
	}
	if groupPath == "" {
		groupPath = DefaultGroupPath
	}
	return &FileResolver{passwdPath: passwdPath, groupPath: groupPath}
}

// LookupOwner returns the first passwd entry with a matching uid.
func (r *FileResolver) LookupOwner(uid uint32) (string, bool) {
	users, err := user.ParsePasswdFileFilter(r.passwdPath, func(u user.User) bool {
		return u.Uid >= 0 && uint32(u.Uid) == uid
	})
	if err != nil || len(users) == 0 {
		return "", false
	}
	return users[0].Name, true
}

// LookupGroup returns the first group entry with a matching gid.
func (r *FileResolver) LookupGroup(gid uint32) (string, bool) {
	groups, err := user.ParseGroupFileFilter(r.groupPath, func(g user.Group) bool {
		return g.Gid >= 0 && uint32(g.Gid) == gid
	})
	if err != nil || len(groups) == 0 {
		return "", false
	}
	return groups[0].Name, true
}
