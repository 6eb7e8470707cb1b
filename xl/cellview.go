package xl

// ValueKind is the external, collapsed cell-value alphabet: InlineString
// and SharedStringRef both surface as String; SharedFormulaRef surfaces as
// Formula.
type ValueKind int

const (
	KindCellEmpty ValueKind = iota
	KindCellNumber
	KindCellString
	KindCellBoolean
	KindCellFormula
	KindCellError
)

// CellView is a read-only snapshot of one cell, returned by Sheet.Get. It
// owns its data (no reference to the backing block.Cell survives the
// call), so it remains valid even if the sheet is subsequently mutated.
type CellView struct {
	kind ValueKind

	num     float64
	str     string
	boolean bool
	errCode uint32

	formulaExpr   string
	formulaGroup  int32
	formulaCached float64
	hasCached     bool

	formatID  uint32
	hasFormat bool

	hyperlink    string
	hasHyperlink bool

	commentAuthor string
	commentText   string
	hasComment    bool
}

// Kind reports the cell's external value kind.
func (v CellView) Kind() ValueKind { return v.kind }

// Float64 returns the numeric value; ok is false for non-Number cells.
func (v CellView) Float64() (float64, bool) {
	if v.kind != KindCellNumber {
		return 0, false
	}
	return v.num, true
}

// String returns the string value; ok is false for non-String cells.
func (v CellView) String() (string, bool) {
	if v.kind != KindCellString {
		return "", false
	}
	return v.str, true
}

// Bool returns the boolean value; ok is false for non-Boolean cells.
func (v CellView) Bool() (bool, bool) {
	if v.kind != KindCellBoolean {
		return false, false
	}
	return v.boolean, true
}

// ErrorCode returns the error code; ok is false for non-Error cells.
func (v CellView) ErrorCode() (uint32, bool) {
	if v.kind != KindCellError {
		return 0, false
	}
	return v.errCode, true
}

// Formula returns the formula text; for a shared-formula reference this may
// be empty (the text lives on the group's origin cell) and FormulaGroup
// reports the group instead. ok is false for non-Formula cells.
func (v CellView) Formula() (string, bool) {
	if v.kind != KindCellFormula {
		return "", false
	}
	return v.formulaExpr, true
}

// FormulaGroup returns the shared-formula group index, if this cell is a
// shared-formula reference.
func (v CellView) FormulaGroup() (int32, bool) {
	if v.kind != KindCellFormula || v.formulaGroup < 0 {
		return 0, false
	}
	return v.formulaGroup, true
}

// CachedResult returns the formula's most recently cached numeric result.
func (v CellView) CachedResult() (float64, bool) {
	return v.formulaCached, v.hasCached
}

// FormatID returns the cell's explicit format id; ok is false when the
// cell has no explicit format (callers fall back to row/column/default).
func (v CellView) FormatID() (uint32, bool) {
	return v.formatID, v.hasFormat
}

// Hyperlink returns the cell's hyperlink target, if any.
func (v CellView) Hyperlink() (string, bool) {
	return v.hyperlink, v.hasHyperlink
}

// Comment returns the cell's comment author/text, if any.
func (v CellView) Comment() (author, text string, ok bool) {
	return v.commentAuthor, v.commentText, v.hasComment
}
