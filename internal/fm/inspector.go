package fm

import (
	"errors"
	"fmt"

	"fmeta/internal/mimetype"
)

// Inspector is the orchestration layer that collects metadata for a single
// file. It holds no state between calls, so one Inspector can serve any
// number of independent inspections.
type Inspector struct {
	fsmgr    FilesystemManager
	resolver IdentityResolver
	digester Digester
	journal  Journal
	logger   Logger
	clock    Clock
	idgen    IDGenerator
}

// NewInspector creates a new Inspector with the provided dependencies.
// resolver may be nil, in which case names are never resolved. journal may
// be nil to disable journaling.
func NewInspector(fsmgr FilesystemManager, resolver IdentityResolver, digester Digester, journal Journal, logger Logger, clock Clock, idgen IDGenerator) *Inspector {
	if resolver == nil {
		resolver = NopResolver{}
	}
	return &Inspector{
		fsmgr:    fsmgr,
		resolver: resolver,
		digester: digester,
		journal:  journal,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// Inspect collects the metadata of the regular file at rawPath.
//
// It fails with ErrNotFound when nothing exists at rawPath, ErrNotAFile when
// the entry is not a regular file and ErrAccessDenied when the stat itself
// is refused. When includeDigest is set the content is hashed as well; a
// permission failure at that stage leaves AccessDeniedDigest in the record
// instead of failing the call.
func (s *Inspector) Inspect(rawPath string, includeDigest bool) (*FileRecord, error) {
	path, err := s.fsmgr.Resolve(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", Classify(err))
	}

	st, err := s.fsmgr.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path.String(), Classify(err))
	}

	if st.Mode&modeTypeMask != modeRegular {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, path.String())
	}

	record := s.buildRecord(path, st)

	if includeDigest {
		if s.digester == nil {
			return nil, fmt.Errorf("%w: no digester configured", ErrUnexpected)
		}
		sum, err := s.digestPath(path)
		switch {
		case err == nil:
			record.ContentDigest = &sum
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("content unreadable, digest skipped", "path", path.String(), "err", err)
			denied := AccessDeniedDigest
			record.ContentDigest = &denied
		default:
			return nil, fmt.Errorf("computing digest: %w", err)
		}
		record.DigestAlgorithm = s.digester.Algorithm()
	}

	s.recordInJournal(record)

	s.logger.Debug("file inspected", "path", record.AbsolutePath, "size", record.SizeBytes)
	return record, nil
}

// Digest streams the content of the regular file at rawPath through the
// configured Digester and returns the hex digest. Anything other than a
// regular file fails with ErrNotAFile before it is opened, so a FIFO never
// blocks. Open and read failures surface as ErrAccessDenied or ErrIO.
func (s *Inspector) Digest(rawPath string) (string, error) {
	if s.digester == nil {
		return "", fmt.Errorf("%w: no digester configured", ErrUnexpected)
	}
	path, err := s.fsmgr.Resolve(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", Classify(err))
	}

	st, err := s.fsmgr.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path.String(), Classify(err))
	}
	if st.Mode&modeTypeMask != modeRegular {
		return "", fmt.Errorf("%w: %s", ErrNotAFile, path.String())
	}

	return s.digestPath(path)
}

func (s *Inspector) digestPath(path *Path) (string, error) {
	r, err := s.fsmgr.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", Classify(err))
	}
	defer r.Close()

	sum, err := s.digester.Sum(r)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", Classify(err))
	}
	return sum, nil
}

// buildRecord assembles everything that needs no further file I/O.
func (s *Inspector) buildRecord(path *Path, st *StatData) *FileRecord {
	parts := splitPath(path.Given())

	record := &FileRecord{
		AbsolutePath:     path.String(),
		Name:             parts.Name,
		Stem:             parts.Stem,
		Extension:        parts.Extension,
		AllExtensions:    parts.AllExtensions,
		ParentDirectory:  parts.Parent,
		SizeBytes:        st.Size,
		CreatedAt:        st.Ctime,
		ModifiedAt:       st.Mtime,
		AccessedAt:       st.Atime,
		RawMode:          st.Mode,
		PermissionsOctal: fmt.Sprintf("%04o", st.Mode&modePermMask),
		HardLinkCount:    st.Nlink,
		OwnerID:          st.UID,
		GroupID:          st.GID,
		IsRegularFile:    st.Mode&modeTypeMask == modeRegular,
		IsDirectory:      st.Mode&modeTypeMask == modeDirectory,
		IsSymlink:        st.Mode&modeTypeMask == modeSymlink,
	}

	if st.BirthTime.Valid {
		born := st.BirthTime.Time
		record.BornAt = &born
	}
	if name, ok := s.resolver.LookupOwner(st.UID); ok {
		record.OwnerName = &name
	}
	if name, ok := s.resolver.LookupGroup(st.GID); ok {
		record.GroupName = &name
	}
	if mt, ok := mimetype.ByExtension(parts.Extension); ok {
		record.MimeType = &mt
	}

	return record
}

// recordInJournal appends a summary of record to the journal, if any.
// Journal failures are logged and never fail the inspection.
func (s *Inspector) recordInJournal(record *FileRecord) {
	if s.journal == nil {
		return
	}

	entry := &JournalEntry{
		ID:              s.idgen.New(),
		InspectedAt:     s.clock.Now(),
		Path:            record.AbsolutePath,
		SizeBytes:       record.SizeBytes,
		ModifiedAt:      record.ModifiedAt,
		DigestAlgorithm: record.DigestAlgorithm,
	}
	if record.ContentDigest != nil {
		entry.ContentDigest = *record.ContentDigest
	}

	if err := s.journal.Append(entry); err != nil {
		s.logger.Warn("journal append failed", "path", record.AbsolutePath, "err", err)
	}
}
