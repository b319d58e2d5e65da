package fm

// IdentityResolver translates numeric owner and group ids into names.
// Lookups never fail: an unknown id, an unsupported platform or an
// unavailable directory service all yield ok == false.
type IdentityResolver interface {
	LookupOwner(uid uint32) (name string, ok bool)
	LookupGroup(gid uint32) (name string, ok bool)
}

// NopResolver never resolves anything. It is the fallback for platforms
// without an account database.
type NopResolver struct{}

func (NopResolver) LookupOwner(uint32) (string, bool) { return "", false }
func (NopResolver) LookupGroup(uint32) (string, bool) { return "", false }

var _ IdentityResolver = NopResolver{}
