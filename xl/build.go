package xl

import (
	"github.com/adnsv/fastxl/columnar"
	"github.com/adnsv/fastxl/dirty"
	"github.com/adnsv/fastxl/format"
	"github.com/adnsv/fastxl/sstbl"
)

// NewFromSource constructs a Workbook bound to an existing package at
// sourcePath, in StateReading or StateEditing depending on editable. The
// package reader calls this once per Open and then populates the result
// via AddSheetRaw/RawCell/MarkWritten and the exported Properties/
// DefinedNames/Theme/Formats/Strings fields, without marking anything
// dirty (the workbook starts clean, since nothing has been edited yet).
func NewFromSource(sourcePath string, editable bool, opts Options) *Workbook {
	st := StateReading
	if editable {
		st = StateEditing
	}
	return &Workbook{
		state:      st,
		sheetIdx:   map[string]int{},
		Formats:    format.NewRepository(),
		Strings:    sstbl.New(),
		dirty:      dirty.NewForEdit(),
		sourcePath: sourcePath,
		opts:       opts,
		logger:     noopLogger{},
		media:      map[string][]byte{},
	}
}

// AddSheetRaw appends a sheet with the given name without validating the
// name or marking any part dirty; used by the package reader, which is
// reconstructing a package that (by definition) already satisfied the
// naming rules when it was written.
func (wb *Workbook) AddSheetRaw(name string) *Sheet {
	sh := newSheet(wb, name, int32(len(wb.sheets)))
	wb.sheetIdx[name] = len(wb.sheets)
	wb.sheets = append(wb.sheets, sh)
	return sh
}

// SetActiveRaw marks a sheet active without the checkWritable gate
// AddSheet-era SetActive enforces; used by the package reader while
// reconstructing workbook.xml's activeTab, which must work even when the
// workbook is opened read-only.
func (s *Sheet) SetActiveRaw() {
	for _, sh := range s.wb.sheets {
		sh.active = sh == s
	}
}

// SetColumnRaw installs column presentation metadata without the
// checkWritable gate, for the package reader.
func (s *Sheet) SetColumnRaw(col uint32, info ColumnInfo) {
	c := info
	s.columns[col] = &c
}

// SetRowRaw installs row presentation metadata without the checkWritable
// gate, for the package reader.
func (s *Sheet) SetRowRaw(row uint32, info RowInfo) {
	r := info
	s.rows[row] = &r
}

// MergeRaw appends a merge range without overlap validation or the
// checkWritable gate, for the package reader reconstructing a sheet that
// is assumed to already be internally consistent.
func (s *Sheet) MergeRaw(r RangeRef) {
	s.merges = append(s.merges, r)
}

// SetAutoFilterRaw installs the sheet's auto-filter range, for the package
// reader.
func (s *Sheet) SetAutoFilterRaw(r RangeRef) {
	s.autoFilter = &r
}

// SetFreezeRaw installs a frozen-pane split, for the package reader.
func (s *Sheet) SetFreezeRaw(f FreezePane) {
	s.freeze = &f
}

// SetPrintSettingsRaw installs page-setup metadata, for the package reader.
func (s *Sheet) SetPrintSettingsRaw(p PrintSettings) {
	s.print = p
}

// SetTabSelectedRaw sets the tab-selected flag without marking the
// workbook dirty, for the package reader.
func (s *Sheet) SetTabSelectedRaw(v bool) {
	s.tabSelected = v
}

// SetScanRaw installs the sheet's columnar scan mirror; used by the
// package reader when opening read-only, where Scan-oriented callers
// benefit from a column-at-a-time view without walking the block matrix.
func (s *Sheet) SetScanRaw(c *columnar.Store) {
	s.scan = c
}

// SetPassthroughPart records path's raw bytes as a package part the reader
// did not parse, for the package reader to carry forward whatever a
// producer other than this library wrote into the package.
func (wb *Workbook) SetPassthroughPart(path string, data []byte) {
	if wb.passthrough == nil {
		wb.passthrough = map[string][]byte{}
	}
	wb.passthrough[path] = data
}
