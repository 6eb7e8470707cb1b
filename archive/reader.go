package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// Reader parses the central directory of a ZIP archive and serves named
// entries, used by the package reader and by the resource manager's
// passthrough-copy phase.
type Reader struct {
	zr    *zip.Reader
	byName map[string]*zip.File
}

// NewReader parses the central directory from r. Errors surface as a
// wrapped form of zip's own (missing directory / truncated archive).
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("archive: parse central directory: %w", err)
	}
	byName := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		byName[f.Name] = f
	}
	return &Reader{zr: zr, byName: byName}, nil
}

// List returns every entry name in the archive, in central-directory order.
func (r *Reader) List() []string {
	out := make([]string, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		out = append(out, f.Name)
	}
	return out
}

// Has reports whether name is present in the archive.
func (r *Reader) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Extract decompresses name into an owned buffer. A CRC mismatch or
// truncated entry surfaces as a wrapped error from the underlying
// flate/zip decoder.
func (r *Reader) Extract(name string) ([]byte, error) {
	f, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingEntry, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("archive: open entry %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("archive: read entry %s: %w", name, err)
	}
	return data, nil
}

// ExtractString is Extract with the result converted to a string.
func (r *Reader) ExtractString(name string) (string, error) {
	b, err := r.Extract(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ExtractTo streams name's decompressed content to w without buffering it
// whole in memory.
func (r *Reader) ExtractTo(name string, w io.Writer) error {
	f, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingEntry, name)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("archive: open entry %s: %w", name, err)
	}
	defer rc.Close()
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("archive: read entry %s: %w", name, err)
	}
	return nil
}

// NewReaderFromBytes is a convenience constructor for in-memory archives
// (used heavily by tests, which build fixtures with Writer rather than
// checking in binary .xlsx files).
func NewReaderFromBytes(b []byte) (*Reader, error) {
	return NewReader(bytes.NewReader(b), int64(len(b)))
}
