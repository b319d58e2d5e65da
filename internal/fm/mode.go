package fm

// Unix st_mode layout. StatData.Mode uses it on every platform; the
// filesystem layer synthesizes it where the OS has no native equivalent.
const (
	modeTypeMask  = 0o170000
	modeRegular   = 0o100000
	modeDirectory = 0o040000
	modeSymlink   = 0o120000
	modePermMask  = 0o7777
)
