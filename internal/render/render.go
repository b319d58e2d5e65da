// Package render turns inspection results into text for a terminal or JSON
// for other programs.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fmeta/internal/fm"

	"github.com/dustin/go-humanize"
)

// TimeLayout is used for every timestamp in text output.
const TimeLayout = "2006-01-02 15:04:05 -0700"

// labelWidth fits the longest label plus its colon and a space.
const labelWidth = 19

const unknown = "(unknown)"

// Text writes rec as one "Label: value" line per field under a header.
// now is the reference point for relative time annotations.
func Text(w io.Writer, rec *fm.FileRecord, now time.Time) error {
	tw := &textWriter{w: w}

	tw.header("=== FILE METADATA ===")
	tw.line("Full Path", rec.AbsolutePath)
	tw.line("Name", rec.Name)
	tw.line("Stem", rec.Stem)
	tw.line("Extension", orNone(rec.Extension))
	tw.line("All Extensions", formatList(rec.AllExtensions))
	tw.line("Parent Directory", rec.ParentDirectory)
	tw.line("Size (bytes)", fmt.Sprintf("%s (%s)", humanize.Comma(rec.SizeBytes), humanize.IBytes(uint64(rec.SizeBytes))))
	tw.line("Created", formatTime(rec.CreatedAt, now))
	if rec.BornAt != nil {
		tw.line("Born", formatTime(*rec.BornAt, now))
	}
	tw.line("Last Modified", formatTime(rec.ModifiedAt, now))
	tw.line("Last Accessed", formatTime(rec.AccessedAt, now))
	tw.line("Mode", fmt.Sprintf("%o (%s)", rec.RawMode, rec.PermissionsOctal))
	tw.line("Number of Links", strconv.FormatUint(rec.HardLinkCount, 10))
	tw.line("Owner UID/Name", fmt.Sprintf("%d / %s", rec.OwnerID, deref(rec.OwnerName)))
	tw.line("Group GID/Name", fmt.Sprintf("%d / %s", rec.GroupID, deref(rec.GroupName)))
	tw.line("Is File", strconv.FormatBool(rec.IsRegularFile))
	tw.line("Is Directory", strconv.FormatBool(rec.IsDirectory))
	tw.line("Is Symlink", strconv.FormatBool(rec.IsSymlink))
	tw.line("MIME Type", deref(rec.MimeType))
	if rec.ContentDigest != nil {
		tw.line(strings.ToUpper(rec.DigestAlgorithm)+" Hash", *rec.ContentDigest)
	}

	return tw.err
}

// JSON writes rec as an indented JSON object.
func JSON(w io.Writer, rec *fm.FileRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return nil
}

// History writes one line per journal entry.
func History(w io.Writer, entries []*fm.JournalEntry) error {
	for _, e := range entries {
		sum := e.ContentDigest
		if sum == "" {
			sum = "-"
		} else if len(sum) > 12 && sum != fm.AccessDeniedDigest {
			sum = sum[:12]
		}
		_, err := fmt.Fprintf(w, "%s  %-15s  %10s  %s\n",
			e.InspectedAt.Local().Format("2006-01-02 15:04:05"),
			sum,
			humanize.IBytes(uint64(e.SizeBytes)),
			e.Path,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) header(s string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintln(t.w, s)
}

func (t *textWriter) line(label, value string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, "%-*s%s\n", labelWidth, label+":", value)
}

func formatTime(ts, now time.Time) string {
	return fmt.Sprintf("%s (%s)", ts.Local().Format(TimeLayout), humanize.RelTime(ts, now, "ago", "from now"))
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return unknown
	}
	return *s
}
