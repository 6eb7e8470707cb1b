// Package archive implements the deflate-compressed ZIP container the
// SpreadsheetML package format requires: a streaming, entry-at-a-time
// writer, plus a reader with a structured-error surface.
package archive

import (
	"archive/zip"
	"compress/flate"
	"errors"
	"io"
	"sort"
)

// Errors returned by Writer/Reader operations. Callers at the xl package
// boundary translate these into xl.Error with the appropriate Kind.
var (
	ErrStreamOpen   = errors.New("archive: another entry is already open")
	ErrNoStream     = errors.New("archive: no entry is open")
	ErrMissingEntry = errors.New("archive: entry not found")
)

// DefaultCompressionLevel is the default deflate level used when a
// workbook's options don't override it.
const DefaultCompressionLevel = 6

// Writer produces a ZIP archive one entry at a time. Only one entry may be
// open for writing at a time; StartEntry fails while another is open.
type Writer struct {
	zw      *zip.Writer
	level   int
	current io.Writer
	entries int
	written int64
}

// NewWriter returns a Writer over out using level (0 = store-only, 1-9 =
// deflate at increasing compression). Level 0 is intended for benchmarking
// and for consumers that will recompress anyway.
func NewWriter(out io.Writer, level int) *Writer {
	zw := zip.NewWriter(out)
	if level != 0 {
		zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, level)
		})
	}
	return &Writer{zw: zw, level: level}
}

// StartEntry begins a new archive entry named name. It fails if another
// entry is already open.
func (w *Writer) StartEntry(name string) error {
	if w.current != nil {
		return ErrStreamOpen
	}
	method := zip.Deflate
	if w.level == 0 {
		method = zip.Store
	}
	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: method,
	})
	if err != nil {
		return err
	}
	w.current = fw
	w.entries++
	return nil
}

// Write feeds bytes to the currently open entry, deflate-encoding them;
// archive/zip maintains the CRC32 and size fields for the central
// directory as bytes are written.
func (w *Writer) Write(p []byte) (int, error) {
	if w.current == nil {
		return 0, ErrNoStream
	}
	n, err := w.current.Write(p)
	w.written += int64(n)
	return n, err
}

// EndEntry closes the currently open entry. archive/zip finalizes the
// entry's header lazily on the next StartEntry/Close, so EndEntry mainly
// enforces the "no two entries open at once" invariant at this layer.
func (w *Writer) EndEntry() error {
	if w.current == nil {
		return ErrNoStream
	}
	w.current = nil
	return nil
}

// WriteWholeEntry writes a complete, already-serialized part in one call:
// StartEntry, Write, EndEntry.
func (w *Writer) WriteWholeEntry(name string, content []byte) error {
	if err := w.StartEntry(name); err != nil {
		return err
	}
	if _, err := w.Write(content); err != nil {
		return err
	}
	return w.EndEntry()
}

// AddPrecomputed batch-adds entries whose bytes are already fully formed,
// in sorted name order so the resulting archive layout is reproducible
// across runs regardless of map iteration order.
func (w *Writer) AddPrecomputed(entries map[string][]byte) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.WriteWholeEntry(name, entries[name]); err != nil {
			return err
		}
	}
	return nil
}

// Stats reports the number of entries written and total uncompressed bytes
// fed to the writer.
type Stats struct {
	Entries int
	Written int64
}

// Stats returns the writer's running statistics.
func (w *Writer) Stats() Stats {
	return Stats{Entries: w.entries, Written: w.written}
}

// Close finalizes the ZIP central directory and end-of-central-directory
// record. It fails if an entry is still open.
func (w *Writer) Close() error {
	if w.current != nil {
		return ErrStreamOpen
	}
	return w.zw.Close()
}
