// Package resource implements the on-disk save algorithm: writing to a
// temp file next to the target and renaming it into place,
// so a crash or a failed write never corrupts an existing package. It is
// the only package that writes files on disk; the package reader opens the
// source file for reading, and everything below this package
// (orchestrator, oxml, archive, filewriter) works against io.Writer and
// the FileWriter abstraction.
package resource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/adnsv/fastxl/archive"
	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/orchestrator"
	"github.com/adnsv/fastxl/xl"
)

// Save writes wb to path. If wb was opened from an existing package (its
// SourcePath is non-empty), that package's unchanged parts are copied
// through via the dirty tracker, regardless of whether path matches
// SourcePath (a "Save As" still benefits from passthrough-copy of
// untouched parts). The write always goes to a temp file first, renamed
// over path only once every part has been written successfully; on any
// failure the temp file is removed and path is left untouched.
func Save(wb *xl.Workbook, path string) error {
	if wb.State() == xl.StateClosed {
		return &xl.Error{Kind: xl.KindInvalidState, Message: "cannot save a closed workbook", Path: path}
	}
	if wb.State() == xl.StateReading {
		return &xl.Error{Kind: xl.KindInvalidState, Message: "workbook was opened read-only", Path: path}
	}

	var src *archive.Reader
	if sp := wb.SourcePath(); sp != "" {
		f, err := os.Open(sp)
		if err != nil {
			return &xl.Error{Kind: xl.KindIO, Message: "open source package", Cause: err, Path: sp}
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return &xl.Error{Kind: xl.KindIO, Message: "stat source package", Cause: err, Path: sp}
		}
		src, err = archive.NewReader(f, info.Size())
		if err != nil {
			return &xl.Error{Kind: xl.KindArchiveCorrupt, Message: "read source package", Cause: err, Path: sp}
		}
	}

	tmpPath := tempPathNextTo(path)
	out, err := os.Create(tmpPath)
	if err != nil {
		return &xl.Error{Kind: xl.KindIO, Message: "create temp file", Cause: err, Path: tmpPath}
	}

	cleanup := func() {
		out.Close()
		os.Remove(tmpPath)
	}

	opts := wb.Options()
	aw := archive.NewWriter(out, opts.CompressionLevel)
	fw := selectWriter(wb, aw)

	if err := orchestrator.Save(wb, fw, src); err != nil {
		cleanup()
		return err
	}
	if err := aw.Close(); err != nil {
		cleanup()
		return &xl.Error{Kind: xl.KindIO, Message: "finalize archive", Cause: err, Path: tmpPath}
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return &xl.Error{Kind: xl.KindIO, Message: "close temp file", Cause: err, Path: tmpPath}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &xl.Error{Kind: xl.KindIO, Message: "rename temp file into place", Cause: err, Path: path}
	}

	wb.Dirty().Clean()
	return nil
}

// selectWriter picks the batch or streaming FileWriter implementation per
// the workbook's Mode option, auto-selecting by cell count when Mode is
// ModeAuto.
func selectWriter(wb *xl.Workbook, aw *archive.Writer) filewriter.FileWriter {
	opts := wb.Options()
	kind := filewriter.KindBatch
	switch opts.Mode {
	case xl.ModeStreaming:
		kind = filewriter.KindStreaming
	case xl.ModeBatch:
		kind = filewriter.KindBatch
	default:
		kind = filewriter.AutoSelect(estimatedCellCount(wb), estimatedByteSize(wb), opts.AutoCellThreshold, opts.AutoMemoryThreshold, opts.ConstantMemory)
	}
	if kind == filewriter.KindStreaming {
		return filewriter.NewStreamingWriter(aw)
	}
	return filewriter.NewBatchWriter(aw)
}

// estimatedCellCount sums occupied cells across every sheet, the input
// AutoSelect's cell-count threshold consults.
func estimatedCellCount(wb *xl.Workbook) int {
	total := 0
	for _, sh := range wb.Sheets() {
		total += len(sh.Cells())
	}
	return total
}

// estimatedByteSize is a coarse per-cell estimate (average SpreadsheetML
// cell markup runs well under 64 bytes for numbers/booleans and more for
// strings/formulas; 48 bytes/cell is a workable average for the memory
// threshold check) good enough for the auto-mode decision; it does not
// need to be exact, only roughly proportional to actual output size.
func estimatedByteSize(wb *xl.Workbook) int64 {
	return int64(estimatedCellCount(wb)) * 48
}

// tempPathNextTo derives a temp file path in the same directory as path,
// so the final rename is same-filesystem and therefore atomic.
func tempPathNextTo(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", base, uuid.New().String()))
}
