package testutil

import "fmeta/internal/fm"

// StubResolver maps ids to names from fixed tables. Ids missing from a
// table have no name.
type StubResolver struct {
	Users  map[uint32]string
	Groups map[uint32]string
}

func (r *StubResolver) LookupOwner(uid uint32) (string, bool) {
	name, ok := r.Users[uid]
	return name, ok
}

func (r *StubResolver) LookupGroup(gid uint32) (string, bool) {
	name, ok := r.Groups[gid]
	return name, ok
}

var _ fm.IdentityResolver = (*StubResolver)(nil)
