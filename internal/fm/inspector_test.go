package fm_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"fmeta/internal/digest"
	"fmeta/internal/fm"
	"fmeta/internal/testutil"
)

type testEnv struct {
	fsmgr     *testutil.MockFilesystemManager
	resolver  *testutil.StubResolver
	inspector *fm.Inspector
}

func newTestEnv(t *testing.T, journal fm.Journal) *testEnv {
	t.Helper()

	fsmgr := testutil.NewMockFilesystemManager()
	resolver := &testutil.StubResolver{
		Users:  map[uint32]string{1000: "alice"},
		Groups: map[uint32]string{1000: "staff"},
	}
	engine, err := digest.New("sha1", 0)
	if err != nil {
		t.Fatalf("digest.New() error = %v", err)
	}
	inspector := fm.NewInspector(fsmgr, resolver, engine, journal, fm.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())

	return &testEnv{fsmgr: fsmgr, resolver: resolver, inspector: inspector}
}

func TestInspect_RegularFile(t *testing.T) {
	env := newTestEnv(t, nil)
	content := []byte("hello world")
	env.fsmgr.AddFile("/data/report.final.txt", content)

	rec, err := env.inspector.Inspect("/data/report.final.txt", false)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	if rec.AbsolutePath != "/data/report.final.txt" {
		t.Errorf("AbsolutePath = %q", rec.AbsolutePath)
	}
	if rec.Name != "report.final.txt" || rec.Stem != "report" || rec.Extension != ".txt" {
		t.Errorf("name fields = %q/%q/%q", rec.Name, rec.Stem, rec.Extension)
	}
	if got := strings.Join(rec.AllExtensions, ""); got != ".final.txt" {
		t.Errorf("AllExtensions = %v", rec.AllExtensions)
	}
	if rec.ParentDirectory != "/data" {
		t.Errorf("ParentDirectory = %q, want /data", rec.ParentDirectory)
	}
	if rec.SizeBytes != int64(len(content)) {
		t.Errorf("SizeBytes = %d, want %d", rec.SizeBytes, len(content))
	}
	if rec.PermissionsOctal != "0644" {
		t.Errorf("PermissionsOctal = %q, want 0644", rec.PermissionsOctal)
	}
	if rec.RawMode != 0o100644 {
		t.Errorf("RawMode = %o, want 100644", rec.RawMode)
	}
	if rec.HardLinkCount != 1 {
		t.Errorf("HardLinkCount = %d, want 1", rec.HardLinkCount)
	}
	if !rec.IsRegularFile || rec.IsDirectory || rec.IsSymlink {
		t.Errorf("type flags = file:%v dir:%v link:%v", rec.IsRegularFile, rec.IsDirectory, rec.IsSymlink)
	}
	if rec.OwnerName == nil || *rec.OwnerName != "alice" {
		t.Errorf("OwnerName = %v, want alice", rec.OwnerName)
	}
	if rec.GroupName == nil || *rec.GroupName != "staff" {
		t.Errorf("GroupName = %v, want staff", rec.GroupName)
	}
	if rec.MimeType == nil || *rec.MimeType != "text/plain" {
		t.Errorf("MimeType = %v, want text/plain", rec.MimeType)
	}
	if !rec.CreatedAt.Equal(testutil.DefaultTime) || !rec.ModifiedAt.Equal(testutil.DefaultTime) || !rec.AccessedAt.Equal(testutil.DefaultTime) {
		t.Errorf("timestamps = %v/%v/%v", rec.CreatedAt, rec.ModifiedAt, rec.AccessedAt)
	}
	if rec.BornAt != nil {
		t.Errorf("BornAt = %v, want nil", rec.BornAt)
	}
	if rec.ContentDigest != nil || rec.DigestAlgorithm != "" {
		t.Errorf("digest present without request: %v %q", rec.ContentDigest, rec.DigestAlgorithm)
	}
}

func TestInspect_SingleStat(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fsmgr.AddFile("/data/a.bin", []byte{1, 2, 3})

	if _, err := env.inspector.Inspect("/data/a.bin", true); err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if env.fsmgr.StatCalls != 1 {
		t.Errorf("StatCalls = %d, want 1", env.fsmgr.StatCalls)
	}
}

func TestInspect_BirthTime(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fsmgr.AddFile("/data/a.txt", nil)
	born := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	env.fsmgr.SetBirthTime("/data/a.txt", born)

	rec, err := env.inspector.Inspect("/data/a.txt", false)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if rec.BornAt == nil || !rec.BornAt.Equal(born) {
		t.Errorf("BornAt = %v, want %v", rec.BornAt, born)
	}
	if !rec.CreatedAt.Equal(testutil.DefaultTime) {
		t.Errorf("CreatedAt = %v, want ctime %v", rec.CreatedAt, testutil.DefaultTime)
	}
}

func TestInspect_Symlink(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fsmgr.AddFile("/store/blob.json", []byte("{}"))
	env.fsmgr.AddSymlink("/links/current.txt", "/store/blob.json")

	rec, err := env.inspector.Inspect("/links/current.txt", false)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if rec.AbsolutePath != "/store/blob.json" {
		t.Errorf("AbsolutePath = %q, want resolved target", rec.AbsolutePath)
	}
	if rec.Name != "current.txt" || rec.ParentDirectory != "/links" {
		t.Errorf("name fields = %q in %q, want the link's own name", rec.Name, rec.ParentDirectory)
	}
	if rec.MimeType == nil || *rec.MimeType != "text/plain" {
		t.Errorf("MimeType = %v, want guess from the link's extension", rec.MimeType)
	}
	if rec.IsSymlink {
		t.Error("IsSymlink = true, want false after following the link")
	}
}

func TestInspect_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *testutil.MockFilesystemManager)
		path  string
		want  error
	}{
		{
			name:  "missing path",
			setup: func(m *testutil.MockFilesystemManager) {},
			path:  "/nope/missing.txt",
			want:  fm.ErrNotFound,
		},
		{
			name:  "empty path",
			setup: func(m *testutil.MockFilesystemManager) {},
			path:  "",
			want:  fm.ErrNotFound,
		},
		{
			name:  "directory",
			setup: func(m *testutil.MockFilesystemManager) { m.AddDirectory("/data") },
			path:  "/data",
			want:  fm.ErrNotAFile,
		},
		{
			name:  "named pipe",
			setup: func(m *testutil.MockFilesystemManager) { m.AddFIFO("/run/pipe") },
			path:  "/run/pipe",
			want:  fm.ErrNotAFile,
		},
		{
			name:  "stat refused",
			setup: func(m *testutil.MockFilesystemManager) { m.FailStat("/secret/key", fs.ErrPermission) },
			path:  "/secret/key",
			want:  fm.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			tt.setup(env.fsmgr)

			rec, err := env.inspector.Inspect(tt.path, true)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Inspect() error = %v, want %v", err, tt.want)
			}
			if rec != nil {
				t.Errorf("Inspect() returned partial record %+v", rec)
			}
		})
	}
}

func TestInspect_Digest(t *testing.T) {
	env := newTestEnv(t, nil)
	content := []byte("abc")
	env.fsmgr.AddFile("/data/abc.txt", content)

	rec, err := env.inspector.Inspect("/data/abc.txt", true)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if rec.ContentDigest == nil {
		t.Fatal("ContentDigest = nil, want digest")
	}
	if *rec.ContentDigest != "a9993e364706816aba3e25717850c26c9cd0d89d" {
		t.Errorf("ContentDigest = %s", *rec.ContentDigest)
	}
	if *rec.ContentDigest != testutil.SHA1Hex(content) {
		t.Errorf("ContentDigest disagrees with SHA1Hex")
	}
	if rec.DigestAlgorithm != "sha1" {
		t.Errorf("DigestAlgorithm = %q, want sha1", rec.DigestAlgorithm)
	}
}

func TestInspect_DigestAccessDenied(t *testing.T) {
	env := newTestEnv(t, nil)
	f := env.fsmgr.AddFile("/data/locked.txt", []byte("secret"))
	f.OpenErr = fs.ErrPermission

	rec, err := env.inspector.Inspect("/data/locked.txt", true)
	if err != nil {
		t.Fatalf("Inspect() error = %v, want record with sentinel digest", err)
	}
	if rec.ContentDigest == nil || *rec.ContentDigest != fm.AccessDeniedDigest {
		t.Errorf("ContentDigest = %v, want %q", rec.ContentDigest, fm.AccessDeniedDigest)
	}
	if !rec.DigestDenied() {
		t.Error("DigestDenied() = false, want true")
	}
	if rec.SizeBytes != 6 {
		t.Errorf("SizeBytes = %d, want 6", rec.SizeBytes)
	}

	// Without a digest request the unreadable content is never touched.
	rec, err = env.inspector.Inspect("/data/locked.txt", false)
	if err != nil {
		t.Fatalf("Inspect() without digest error = %v", err)
	}
	if rec.ContentDigest != nil {
		t.Errorf("ContentDigest = %v, want nil", rec.ContentDigest)
	}
}

func TestInspect_DigestReadFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	f := env.fsmgr.AddFile("/data/bad.bin", []byte("partial"))
	f.ReadErr = errors.New("device went away")

	rec, err := env.inspector.Inspect("/data/bad.bin", true)
	if !errors.Is(err, fm.ErrIO) {
		t.Fatalf("Inspect() error = %v, want ErrIO", err)
	}
	if rec != nil {
		t.Errorf("Inspect() returned record %+v on read failure", rec)
	}
}

func TestInspect_UnknownIdentity(t *testing.T) {
	env := newTestEnv(t, nil)
	f := env.fsmgr.AddFile("/data/orphan.txt", []byte("x"))
	f.Stat.UID = 4242
	f.Stat.GID = 4343

	rec, err := env.inspector.Inspect("/data/orphan.txt", false)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if rec.OwnerID != 4242 || rec.GroupID != 4343 {
		t.Errorf("ids = %d:%d, want 4242:4343", rec.OwnerID, rec.GroupID)
	}
	if rec.OwnerName != nil || rec.GroupName != nil {
		t.Errorf("names = %v:%v, want nil", rec.OwnerName, rec.GroupName)
	}
}

func TestInspect_NilResolver(t *testing.T) {
	fsmgr := testutil.NewMockFilesystemManager()
	fsmgr.AddFile("/data/a.txt", []byte("x"))
	inspector := fm.NewInspector(fsmgr, nil, nil, nil, fm.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())

	rec, err := inspector.Inspect("/data/a.txt", false)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if rec.OwnerName != nil {
		t.Errorf("OwnerName = %v, want nil", rec.OwnerName)
	}

	if _, err := inspector.Inspect("/data/a.txt", true); !errors.Is(err, fm.ErrUnexpected) {
		t.Errorf("Inspect() with digest and no digester error = %v, want ErrUnexpected", err)
	}
}

func TestInspect_UnknownMimeType(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fsmgr.AddFile("/data/Makefile", []byte("all:"))
	env.fsmgr.AddFile("/data/blob.zzqx", []byte("?"))

	for _, p := range []string{"/data/Makefile", "/data/blob.zzqx"} {
		rec, err := env.inspector.Inspect(p, false)
		if err != nil {
			t.Fatalf("Inspect(%s) error = %v", p, err)
		}
		if rec.MimeType != nil {
			t.Errorf("Inspect(%s) MimeType = %q, want nil", p, *rec.MimeType)
		}
	}
}

func TestInspect_Repeatable(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fsmgr.AddFile("/data/a.txt", []byte("same"))

	first, err := env.inspector.Inspect("/data/a.txt", true)
	if err != nil {
		t.Fatalf("first Inspect() error = %v", err)
	}
	second, err := env.inspector.Inspect("/data/a.txt", true)
	if err != nil {
		t.Fatalf("second Inspect() error = %v", err)
	}
	if *first.ContentDigest != *second.ContentDigest || first.SizeBytes != second.SizeBytes {
		t.Errorf("records differ for unchanged file")
	}
}

func TestDigest(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fsmgr.AddFile("/data/empty", nil)
	locked := env.fsmgr.AddFile("/data/locked", []byte("x"))
	locked.OpenErr = fs.ErrPermission

	sum, err := env.inspector.Digest("/data/empty")
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	if sum != "da39a3ee5e6b4b0d3255bfef95601890afd80709" {
		t.Errorf("Digest(empty) = %s", sum)
	}

	if _, err := env.inspector.Digest("/data/locked"); !errors.Is(err, fm.ErrAccessDenied) {
		t.Errorf("Digest(locked) error = %v, want ErrAccessDenied", err)
	}
	if _, err := env.inspector.Digest("/data/missing"); !errors.Is(err, fm.ErrNotFound) {
		t.Errorf("Digest(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDigest_ContentOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fsmgr.AddFile("/data/a.txt", []byte("payload"))
	b := env.fsmgr.AddFile("/other/b.bin", []byte("payload"))
	b.Stat.Mtime = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	env.fsmgr.AddFile("/data/c.txt", []byte("paylaod"))

	sumA, err := env.inspector.Digest("/data/a.txt")
	if err != nil {
		t.Fatal(err)
	}
	sumB, err := env.inspector.Digest("/other/b.bin")
	if err != nil {
		t.Fatal(err)
	}
	sumC, err := env.inspector.Digest("/data/c.txt")
	if err != nil {
		t.Fatal(err)
	}

	if sumA != sumB {
		t.Errorf("identical content digests differ: %s vs %s", sumA, sumB)
	}
	if sumA == sumC {
		t.Errorf("different content digests equal: %s", sumA)
	}
}

func TestDigest_RejectsNonRegular(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fsmgr.AddFIFO("/run/pipe")
	env.fsmgr.AddDirectory("/data")
	env.fsmgr.FailStat("/secret/key", fs.ErrPermission)

	for _, p := range []string{"/run/pipe", "/data"} {
		if _, err := env.inspector.Digest(p); !errors.Is(err, fm.ErrNotAFile) {
			t.Errorf("Digest(%s) error = %v, want ErrNotAFile", p, err)
		}
	}
	if _, err := env.inspector.Digest("/secret/key"); !errors.Is(err, fm.ErrAccessDenied) {
		t.Errorf("Digest(/secret/key) error = %v, want ErrAccessDenied", err)
	}
}
