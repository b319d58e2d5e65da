package fm

import "time"

// FileRecord describes one regular file at the moment it was inspected.
// It is built in one shot by Inspector.Inspect and must not be modified
// afterwards.
type FileRecord struct {
	AbsolutePath    string   `json:"absolute_path"`
	Name            string   `json:"name"`
	Stem            string   `json:"stem"`
	Extension       string   `json:"extension"`
	AllExtensions   []string `json:"all_extensions"`
	ParentDirectory string   `json:"parent_directory"`

	SizeBytes int64 `json:"size_bytes"`

	// CreatedAt holds the status change time (ctime) on every Unix
	// platform. It moves on chmod, chown, rename and writes, so it is only
	// an upper bound on the creation time. See BornAt for the real one.
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	AccessedAt time.Time `json:"accessed_at"`
	// BornAt is the creation (birth) time, nil when the platform or
	// filesystem does not report it.
	BornAt *time.Time `json:"born_at,omitempty"`

	RawMode          uint32 `json:"raw_mode"`
	PermissionsOctal string `json:"permissions"`
	HardLinkCount    uint64 `json:"hard_link_count"`

	OwnerID   uint32  `json:"owner_id"`
	OwnerName *string `json:"owner_name"`
	GroupID   uint32  `json:"group_id"`
	GroupName *string `json:"group_name"`

	// The type flags come from a stat that follows symlinks, so IsSymlink
	// reports on the final target and is false for every collected record.
	IsRegularFile bool `json:"is_file"`
	IsDirectory   bool `json:"is_dir"`
	IsSymlink     bool `json:"is_symlink"`

	MimeType *string `json:"mime_type"`

	DigestAlgorithm string  `json:"digest_algorithm,omitempty"`
	ContentDigest   *string `json:"content_digest,omitempty"`
}

// DigestDenied reports whether hashing was requested but the content could
// not be read.
func (r *FileRecord) DigestDenied() bool {
	return r.ContentDigest != nil && *r.ContentDigest == AccessDeniedDigest
}
