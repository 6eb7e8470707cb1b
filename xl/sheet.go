package xl

import (
	"fmt"
	"sort"

	"github.com/adnsv/fastxl/block"
	"github.com/adnsv/fastxl/columnar"
)

// RangeRef is a rectangular, 0-based, inclusive cell range.
type RangeRef struct {
	StartRow, StartCol uint32
	EndRow, EndCol     uint32
}

func (r RangeRef) normalized() RangeRef {
	if r.StartRow > r.EndRow {
		r.StartRow, r.EndRow = r.EndRow, r.StartRow
	}
	if r.StartCol > r.EndCol {
		r.StartCol, r.EndCol = r.EndCol, r.StartCol
	}
	return r
}

func (r RangeRef) overlaps(o RangeRef) bool {
	return !(r.EndCol < o.StartCol || r.StartCol > o.EndCol ||
		r.EndRow < o.StartRow || r.StartRow > o.EndRow)
}

// String renders the range as an "A1:B2" reference.
func (r RangeRef) String() string {
	return CellRef(r.StartRow, r.StartCol) + ":" + CellRef(r.EndRow, r.EndCol)
}

// ColumnInfo holds per-column presentation metadata (xl/worksheets/sheetN.xml
// <cols><col>).
type ColumnInfo struct {
	Width        float64
	DefaultFormatID uint32
	HasFormat    bool
	Hidden       bool
	OutlineLevel int
}

// RowInfo holds per-row presentation metadata (<row> attributes).
type RowInfo struct {
	Height       float64
	DefaultFormatID uint32
	HasFormat    bool
	Hidden       bool
}

// FreezePane describes a frozen-pane split (<pane>).
type FreezePane struct {
	SplitRow, SplitCol uint32
	TopLeftCell        string
}

// PrintSettings carries the page-setup fields (<pageSetup>, <pageMargins>).
type PrintSettings struct {
	Orientation string // "portrait" or "landscape"
	PaperSize   int
	FitToWidth  int
	FitToHeight int
	MarginLeft, MarginRight, MarginTop, MarginBottom float64
}

// Sheet is a single worksheet, backed by a block.Matrix sparse grid.
type Sheet struct {
	wb   *Workbook
	name string
	id   int32

	matrix *block.Matrix

	columns map[uint32]*ColumnInfo
	rows    map[uint32]*RowInfo

	merges     []RangeRef
	autoFilter *RangeRef
	freeze     *FreezePane
	print      PrintSettings

	tabSelected bool
	active      bool

	// sourcePartPath/sourceRelsPartPath/sourceCommentsPartPath record the
	// archive-internal paths this sheet's data actually occupied in the
	// package it was loaded from, which need not match this library's own
	// canonical PartPath/RelsPartPath/CommentsPartPath naming (e.g. a
	// package produced by a different writer, or a workbook whose sheets
	// were reordered since it was last saved). Empty for a sheet created
	// with AddSheet, which has no passthrough source.
	sourcePartPath         string
	sourceRelsPartPath     string
	sourceCommentsPartPath string

	// scan is an optional columnar.Store mirror of this sheet's cells,
	// built only when the package reader opens the workbook read-only;
	// nil for a sheet created fresh or opened for editing. See Scan.
	scan *columnar.Store
}

// Scan returns the sheet's read-only columnar mirror, or nil if none was
// built (the workbook was not opened read-only, or this sheet was created
// fresh via AddSheet). Scan-oriented callers that touch whole columns
// rather than individual cells can use it in place of RawCell/Cells to
// avoid walking the sparse block matrix.
func (s *Sheet) Scan() *columnar.Store { return s.scan }

func newSheet(wb *Workbook, name string, id int32) *Sheet {
	return &Sheet{
		wb:      wb,
		name:    name,
		id:      id,
		matrix:  block.NewMatrix(),
		columns: map[uint32]*ColumnInfo{},
		rows:    map[uint32]*RowInfo{},
	}
}

// Name returns the sheet's display name.
func (s *Sheet) Name() string { return s.name }

// ID returns the sheet's 0-based position in the workbook.
func (s *Sheet) ID() int32 { return s.id }

func (s *Sheet) partPath() string {
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", s.id+1)
}

// PartPath returns the archive-internal path of this sheet's OPC part.
func (s *Sheet) PartPath() string { return s.partPath() }

// RelsPartPath returns the archive-internal path of this sheet's
// relationships part (hyperlinks, etc.).
func (s *Sheet) RelsPartPath() string {
	return fmt.Sprintf("xl/worksheets/_rels/sheet%d.xml.rels", s.id+1)
}

// CommentsPartPath returns the archive-internal path of this sheet's
// comments part.
func (s *Sheet) CommentsPartPath() string {
	return fmt.Sprintf("xl/comments%d.xml", s.id+1)
}

func (s *Sheet) markDirty() {
	s.wb.dirty.MarkDirty(s.partPath())
}

func (s *Sheet) checkWritable() error {
	if s.wb.state == StateReading || s.wb.state == StateClosed {
		return newError(KindInvalidState, fmt.Sprintf("sheet %q is not writable in state %s", s.name, s.wb.state))
	}
	return nil
}

func (s *Sheet) checkCoord(row, col uint32) error {
	if row >= MaxRows || col >= MaxCols {
		return newError(KindInvalidArgument, fmt.Sprintf("cell (%d,%d) out of range", row, col))
	}
	return nil
}

// SetColumnWidth sets a 0-based column's display width in character units.
func (s *Sheet) SetColumnWidth(col uint32, width float64) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if col >= MaxCols {
		return newError(KindInvalidArgument, fmt.Sprintf("column %d out of range", col))
	}
	ci := s.columnInfo(col)
	ci.Width = width
	s.markDirty()
	return nil
}

// SetColumnHidden hides or unhides a 0-based column.
func (s *Sheet) SetColumnHidden(col uint32, hidden bool) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	s.columnInfo(col).Hidden = hidden
	s.markDirty()
	return nil
}

// SetColumnFormat sets the default format id applied to cells in a column
// that do not carry an explicit format of their own.
func (s *Sheet) SetColumnFormat(col uint32, formatID uint32) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	ci := s.columnInfo(col)
	ci.DefaultFormatID = formatID
	ci.HasFormat = true
	s.markDirty()
	return nil
}

func (s *Sheet) columnInfo(col uint32) *ColumnInfo {
	ci, ok := s.columns[col]
	if !ok {
		ci = &ColumnInfo{}
		s.columns[col] = ci
	}
	return ci
}

// SetRowHeight sets a 0-based row's height in points.
func (s *Sheet) SetRowHeight(row uint32, height float64) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if row >= MaxRows {
		return newError(KindInvalidArgument, fmt.Sprintf("row %d out of range", row))
	}
	s.rowInfo(row).Height = height
	s.markDirty()
	return nil
}

// SetRowHidden hides or unhides a 0-based row.
func (s *Sheet) SetRowHidden(row uint32, hidden bool) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	s.rowInfo(row).Hidden = hidden
	s.markDirty()
	return nil
}

func (s *Sheet) rowInfo(row uint32) *RowInfo {
	ri, ok := s.rows[row]
	if !ok {
		ri = &RowInfo{}
		s.rows[row] = ri
	}
	return ri
}

// Merge merges the rectangular range given as an "A1:B2" reference.
func (s *Sheet) Merge(ref string) error {
	startRow, startCol, endRow, endCol, err := ParseRangeRef(ref)
	if err != nil {
		return err
	}
	return s.MergeRange(startRow, startCol, endRow, endCol)
}

// MergeRange merges the rectangular range given as 0-based (start, end)
// row/col coordinates, inclusive. Returns KindInvalidArgument if the range
// is degenerate or overlaps an existing merge.
func (s *Sheet) MergeRange(startRow, startCol, endRow, endCol uint32) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	r := RangeRef{startRow, startCol, endRow, endCol}.normalized()
	if r.StartRow == r.EndRow && r.StartCol == r.EndCol {
		return newError(KindInvalidArgument, "merge range must span at least 2 cells")
	}
	for _, m := range s.merges {
		if r.overlaps(m) {
			return newError(KindInvalidArgument, fmt.Sprintf("merge range %s overlaps existing merge %s", r, m))
		}
	}
	s.merges = append(s.merges, r)
	s.markDirty()
	return nil
}

// Merges returns the sheet's merged ranges.
func (s *Sheet) Merges() []RangeRef { return s.merges }

// SetAutoFilter installs the sheet's auto-filter range, replacing any
// earlier one. It does not clear the auto-filter.
func (s *Sheet) SetAutoFilter(startRow, startCol, endRow, endCol uint32) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	r := RangeRef{startRow, startCol, endRow, endCol}.normalized()
	s.autoFilter = &r
	s.markDirty()
	return nil
}

// Freeze installs a frozen-pane split at the given 0-based row/column.
func (s *Sheet) Freeze(splitRow, splitCol uint32) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	s.freeze = &FreezePane{
		SplitRow:   splitRow,
		SplitCol:   splitCol,
		TopLeftCell: CellRef(splitRow, splitCol),
	}
	s.markDirty()
	return nil
}

// SetPrintSettings replaces the sheet's page-setup metadata.
func (s *Sheet) SetPrintSettings(p PrintSettings) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	s.print = p
	s.markDirty()
	return nil
}

// SetActive marks this sheet as the workbook's active (focused) tab,
// clearing the flag on every other sheet.
func (s *Sheet) SetActive() error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	for _, sh := range s.wb.sheets {
		sh.active = sh == s
	}
	s.wb.dirty.MarkDirty("xl/workbook.xml")
	return nil
}

// SetHyperlink attaches a hyperlink target to a cell.
func (s *Sheet) SetHyperlink(row, col uint32, target string) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if err := s.checkCoord(row, col); err != nil {
		return err
	}
	s.matrix.Cell(row, col).SetHyperlink(target)
	s.matrix.MarkWritten(row, col)
	s.markDirty()
	return nil
}

// SetComment attaches an author/text comment to a cell.
func (s *Sheet) SetComment(row, col uint32, author, text string) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if err := s.checkCoord(row, col); err != nil {
		return err
	}
	s.matrix.Cell(row, col).SetComment(author, text)
	s.matrix.MarkWritten(row, col)
	s.markDirty()
	return nil
}

// Clear removes the cell at (row, col), if any.
func (s *Sheet) Clear(row, col uint32) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	s.matrix.Clear(row, col)
	s.markDirty()
	return nil
}

// UsedRange returns the smallest range covering every non-empty cell; row
// and column overrides do not widen it. ok is false when no cell is
// occupied.
func (s *Sheet) UsedRange() (r RangeRef, ok bool) {
	first := true
	for _, e := range s.matrix.All() {
		if first {
			r = RangeRef{e.Row, e.Col, e.Row, e.Col}
			first = false
			continue
		}
		if e.Row < r.StartRow {
			r.StartRow = e.Row
		}
		if e.Row > r.EndRow {
			r.EndRow = e.Row
		}
		if e.Col < r.StartCol {
			r.StartCol = e.Col
		}
		if e.Col > r.EndCol {
			r.EndCol = e.Col
		}
	}
	return r, !first
}

// sortedColumnIndices returns the sheet's column overrides in ascending
// order, for deterministic <cols> emission.
func (s *Sheet) sortedColumnIndices() []uint32 {
	out := make([]uint32, 0, len(s.columns))
	for c := range s.columns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// sortedRowIndices returns the sheet's row overrides in ascending order.
func (s *Sheet) sortedRowIndices() []uint32 {
	out := make([]uint32, 0, len(s.rows))
	for r := range s.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ColumnOverride is one entry of SortedColumns.
type ColumnOverride struct {
	Index uint32
	Info  ColumnInfo
}

// SortedColumns returns the sheet's column overrides in ascending index
// order, for emitters that need deterministic <cols> output.
func (s *Sheet) SortedColumns() []ColumnOverride {
	idx := s.sortedColumnIndices()
	out := make([]ColumnOverride, len(idx))
	for i, c := range idx {
		out[i] = ColumnOverride{Index: c, Info: *s.columns[c]}
	}
	return out
}

// RowOverride is one entry of SortedRows.
type RowOverride struct {
	Index uint32
	Info  RowInfo
}

// SortedRows returns the sheet's row overrides in ascending index order.
func (s *Sheet) SortedRows() []RowOverride {
	idx := s.sortedRowIndices()
	out := make([]RowOverride, len(idx))
	for i, r := range idx {
		out[i] = RowOverride{Index: r, Info: *s.rows[r]}
	}
	return out
}

// Cells returns every occupied cell in the sheet, in unspecified order;
// callers needing deterministic output sort by (Row, Col) themselves.
func (s *Sheet) Cells() []block.Entry { return s.matrix.All() }

// CellAt returns the raw backing cell at (row, col), for serializers and
// the reader that need to distinguish inline-vs-shared-string storage
// rather than the collapsed CellView.
func (s *Sheet) CellAt(row, col uint32) (*block.Cell, bool) { return s.matrix.Get(row, col) }

// RawCell returns the backing cell at (row, col), creating it if absent;
// used by the package reader to populate a sheet from a parsed package.
func (s *Sheet) RawCell(row, col uint32) *block.Cell { return s.matrix.Cell(row, col) }

// MarkWritten records that the cell at (row, col) now holds a value. The
// package reader calls this after populating a RawCell, mirroring the
// write-path's own Cell+MarkWritten sequencing.
func (s *Sheet) MarkWritten(row, col uint32) {
	s.matrix.MarkWritten(row, col)
}

// AutoFilter returns the sheet's auto-filter range, if any.
func (s *Sheet) AutoFilter() (RangeRef, bool) {
	if s.autoFilter == nil {
		return RangeRef{}, false
	}
	return *s.autoFilter, true
}

// Freeze returns the sheet's frozen-pane split, if any.
func (s *Sheet) Freeze() (FreezePane, bool) {
	if s.freeze == nil {
		return FreezePane{}, false
	}
	return *s.freeze, true
}

// GetPrintSettings returns the sheet's page-setup metadata.
func (s *Sheet) GetPrintSettings() PrintSettings { return s.print }

// IsActive reports whether this is the workbook's focused tab.
func (s *Sheet) IsActive() bool { return s.active }

// SetTabSelected marks whether this sheet's tab shows as selected.
func (s *Sheet) SetTabSelected(v bool) {
	s.tabSelected = v
	s.wb.dirty.MarkDirty("xl/workbook.xml")
}

// IsTabSelected reports whether this sheet's tab shows as selected.
func (s *Sheet) IsTabSelected() bool { return s.tabSelected }

// SetSourceParts records where this sheet's data, relationships, and
// comments actually lived in the package it was loaded from; used only by
// the package reader, immediately after AddSheetRaw.
func (s *Sheet) SetSourceParts(dataPart, relsPart, commentsPart string) {
	s.sourcePartPath = dataPart
	s.sourceRelsPartPath = relsPart
	s.sourceCommentsPartPath = commentsPart
}

// SourcePartPath returns the archive path this sheet's data part occupied
// in its source package, or "" if this sheet has none (created fresh via
// AddSheet, or the workbook itself has no backing package).
func (s *Sheet) SourcePartPath() string { return s.sourcePartPath }

// SourceRelsPartPath is SourcePartPath for this sheet's relationships part.
func (s *Sheet) SourceRelsPartPath() string { return s.sourceRelsPartPath }

// SourceCommentsPartPath is SourcePartPath for this sheet's comments part.
func (s *Sheet) SourceCommentsPartPath() string { return s.sourceCommentsPartPath }
