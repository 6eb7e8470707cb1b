// Package orchestrator drives the per-part save sequence: a fixed phase
// order (base parts, then each sheet, then per-sheet relationships, then
// shared strings, then whatever producer-specific parts the reader kept
// but never parsed, then finalize), consulting the dirty tracker before
// every step and copying clean parts through from a source package in
// edit mode.
package orchestrator

import (
	"sort"
	"time"

	"github.com/adnsv/fastxl/archive"
	"github.com/adnsv/fastxl/dirty"
	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/oxml"
	"github.com/adnsv/fastxl/xl"
)

// timeNow is overridable in tests so docProps/core.xml's modified timestamp
// is deterministic.
var timeNow = time.Now

// Save runs the full phase-ordered save sequence against fw. src is nil for
// a workbook created from scratch; for a workbook opened for editing, src
// is the reader over the original package, used to copy through any part
// the dirty tracker says does not need regeneration.
func Save(wb *xl.Workbook, fw filewriter.FileWriter, src *archive.Reader) error {
	d := wb.Dirty()
	d.SetSharedStringsProbe(func() bool { return wb.Strings.Len() > 0 && wb.Options().UseSharedStrings })

	if err := step(fw, d, src, "[Content_Types].xml", func() error {
		return oxml.WriteContentTypes(fw, wb)
	}); err != nil {
		return err
	}
	if err := step(fw, d, src, "_rels/.rels", func() error {
		return oxml.WriteRootRels(fw)
	}); err != nil {
		return err
	}
	if err := step(fw, d, src, "docProps/core.xml", func() error {
		return oxml.WriteCoreProperties(fw, wb, timeNow().UTC().Format("2006-01-02T15:04:05Z"))
	}); err != nil {
		return err
	}
	if err := step(fw, d, src, "docProps/app.xml", func() error {
		return oxml.WriteAppProperties(fw, wb)
	}); err != nil {
		return err
	}
	if len(wb.Properties.Custom) > 0 {
		if err := step(fw, d, src, "docProps/custom.xml", func() error {
			return oxml.WriteCustomProperties(fw, wb)
		}); err != nil {
			return err
		}
	}
	if err := step(fw, d, src, "xl/workbook.xml", func() error {
		return oxml.WriteWorkbook(fw, wb)
	}); err != nil {
		return err
	}
	if err := step(fw, d, src, "xl/_rels/workbook.xml.rels", func() error {
		return oxml.WriteWorkbookRels(fw, wb)
	}); err != nil {
		return err
	}
	if err := step(fw, d, src, "xl/styles.xml", func() error {
		return oxml.WriteStyles(fw, wb)
	}); err != nil {
		return err
	}
	if wb.Theme != nil {
		if err := step(fw, d, src, "xl/theme/theme1.xml", func() error {
			return oxml.WriteTheme(fw, wb)
		}); err != nil {
			return err
		}
	}
	if err := oxml.WriteMedia(fw, wb); err != nil {
		return err
	}

	// Phase 2: each sheet's main data part. A sheet's source part path can
	// differ from its canonical save-side path (e.g. a package written by
	// another producer, or sheets reordered since last save), so passthrough
	// reads from SourcePartPath while regeneration always writes PartPath.
	for _, sh := range wb.Sheets() {
		sh := sh
		if err := stepFrom(fw, d, src, sh.PartPath(), sh.SourcePartPath(), func() error {
			return oxml.WriteSheet(fw, wb, sh)
		}); err != nil {
			return err
		}
	}

	// Phase 3: per-sheet relationships and comments, when any.
	for _, sh := range wb.Sheets() {
		sh := sh
		if err := stepFrom(fw, d, src, sh.RelsPartPath(), sh.SourceRelsPartPath(), func() error {
			return oxml.WriteSheetRels(fw, sh)
		}); err != nil {
			return err
		}
		if err := stepFrom(fw, d, src, sh.CommentsPartPath(), sh.SourceCommentsPartPath(), func() error {
			return oxml.WriteComments(fw, sh)
		}); err != nil {
			return err
		}
	}

	// Phase 4: shared strings, last, because phase 2 may have interned new
	// entries while emitting inline-vs-shared string cells.
	if wb.Options().UseSharedStrings && wb.Strings.Len() > 0 {
		if err := step(fw, d, src, "xl/sharedStrings.xml", func() error {
			return oxml.WriteSharedStrings(fw, wb)
		}); err != nil {
			return err
		}
	}

	// Phase 5: carry forward whatever the reader retained but never parsed
	// itself: embedded media still referenced by a drawing, drawings and
	// charts, custom XML parts, calcChain, a VBA project, pivot caches,
	// tables, and anything else a producer other than this library wrote
	// into the package. Written in sorted order for reproducible output.
	if err := writePassthroughParts(fw, wb); err != nil {
		return err
	}

	// Phase 6: finalize.
	return fw.Flush()
}

func writePassthroughParts(fw filewriter.FileWriter, wb *xl.Workbook) error {
	parts := wb.PassthroughParts()
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := fw.WriteWholeFile(name, parts[name]); err != nil {
			return err
		}
	}
	return nil
}

// step regenerates destPart via emit if the dirty tracker says it needs it;
// otherwise, in edit mode, it copies destPart's original bytes through
// unchanged. A part that is neither dirty nor present in src is silently
// skipped (e.g. an optional part that simply does not exist in this
// workbook).
func step(fw filewriter.FileWriter, d *dirty.Manager, src *archive.Reader, part string, emit func() error) error {
	return stepFrom(fw, d, src, part, part, emit)
}

// stepFrom is step generalized to the case where the clean-copy source
// lives at a different archive path than the one this save writes to
// (sheet parts, whose source path is whatever the loaded package actually
// named them).
// srcPart == "" means there is no passthrough source (a brand-new sheet).
func stepFrom(fw filewriter.FileWriter, d *dirty.Manager, src *archive.Reader, destPart, srcPart string, emit func() error) error {
	if d.ShouldUpdate(destPart) {
		return emit()
	}
	if src == nil || srcPart == "" || !src.Has(srcPart) {
		return nil
	}
	content, err := src.Extract(srcPart)
	if err != nil {
		return err
	}
	return fw.WriteWholeFile(destPart, content)
}
