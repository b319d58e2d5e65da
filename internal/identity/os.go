package identity

import (
	"os/user"
	"strconv"

	"fmeta/internal/fm"
)

// OSResolver looks ids up in the system account database through os/user,
// which consults NSS when cgo is available and the local passwd and group
// files otherwise.
type OSResolver struct{}

var _ fm.IdentityResolver = OSResolver{}

// LookupOwner returns the user name for uid.
func (OSResolver) LookupOwner(uid uint32) (string, bool) {
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return "", false
	}
	return u.Username, true
}

// LookupGroup returns the group name for gid.
func (OSResolver) LookupGroup(gid uint32) (string, bool) {
	g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10))
	if err != nil {
		return "", false
	}
	return g.Name, true
}
