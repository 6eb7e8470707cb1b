package xl

import "github.com/adnsv/fastxl/block"

// SetNumber stores a numeric value at (row, col), allocating the cell's
// backing block on first write.
func (s *Sheet) SetNumber(row, col uint32, v float64) error {
	if err := s.prepareWrite(row, col); err != nil {
		return err
	}
	c := s.matrix.Cell(row, col)
	c.SetNumber(v)
	s.matrix.MarkWritten(row, col)
	s.markDirty()
	return nil
}

// SetBool stores a boolean value at (row, col).
func (s *Sheet) SetBool(row, col uint32, v bool) error {
	if err := s.prepareWrite(row, col); err != nil {
		return err
	}
	c := s.matrix.Cell(row, col)
	c.SetBool(v)
	s.matrix.MarkWritten(row, col)
	s.markDirty()
	return nil
}

// SetString stores a string value at (row, col). Short strings are kept
// inline in the cell; longer ones spill to the cell's extension record.
// Interning into the shared-string table, if enabled, happens at save time.
func (s *Sheet) SetString(row, col uint32, v string) error {
	if err := s.prepareWrite(row, col); err != nil {
		return err
	}
	c := s.matrix.Cell(row, col)
	if !c.SetInlineString(v) {
		c.SetLongString(v)
	}
	s.matrix.MarkWritten(row, col)
	s.markDirty()
	return nil
}

// SetError stores an error-value cell (e.g. the numeric code the caller
// assigns to "#DIV/0!") at (row, col).
func (s *Sheet) SetError(row, col uint32, code uint32) error {
	if err := s.prepareWrite(row, col); err != nil {
		return err
	}
	c := s.matrix.Cell(row, col)
	c.SetError(code)
	s.matrix.MarkWritten(row, col)
	s.markDirty()
	return nil
}

// SetFormula stores a formula's text and an optional cached numeric result
// at (row, col).
func (s *Sheet) SetFormula(row, col uint32, expr string, cached *float64) error {
	if err := s.prepareWrite(row, col); err != nil {
		return err
	}
	c := s.matrix.Cell(row, col)
	c.SetFormula(expr, cached)
	s.matrix.MarkWritten(row, col)
	s.markDirty()
	return nil
}

// SetSharedFormula stores a reference into a shared-formula group at
// (row, col), without repeating the formula text.
func (s *Sheet) SetSharedFormula(row, col uint32, group int32, cached *float64) error {
	if err := s.prepareWrite(row, col); err != nil {
		return err
	}
	c := s.matrix.Cell(row, col)
	c.SetSharedFormulaRef(group, cached)
	s.matrix.MarkWritten(row, col)
	s.markDirty()
	return nil
}

// SetFormat attaches an explicit format id (as returned by
// Workbook.Formats.Intern) to the cell at (row, col), creating the cell if
// it does not already hold a value.
func (s *Sheet) SetFormat(row, col uint32, formatID uint32) error {
	if err := s.prepareWrite(row, col); err != nil {
		return err
	}
	c := s.matrix.Cell(row, col)
	c.SetFormatID(formatID)
	s.matrix.MarkWritten(row, col)
	s.markDirty()
	return nil
}

func (s *Sheet) prepareWrite(row, col uint32) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	return s.checkCoord(row, col)
}

// Get returns a CellView snapshot of (row, col); ok is false when the cell
// is empty. A shared-string reference is resolved against the owning
// workbook's string table, so the caller sees the String kind. A
// shared-formula reference is reported as the Formula kind with its group
// index and empty formula text; it is not expanded.
func (s *Sheet) Get(row, col uint32) (CellView, bool) {
	c, ok := s.matrix.Get(row, col)
	if !ok {
		return CellView{}, false
	}
	return s.viewOf(c), true
}

func (s *Sheet) viewOf(c *block.Cell) CellView {
	v := CellView{}
	if fid, ok := c.FormatID(); ok {
		v.formatID, v.hasFormat = fid, true
	}
	if target, ok := c.Hyperlink(); ok {
		v.hyperlink, v.hasHyperlink = target, true
	}
	if author, text, ok := c.Comment(); ok {
		v.commentAuthor, v.commentText, v.hasComment = author, text, true
	}

	switch c.Tag() {
	case block.TagNumber:
		v.kind = KindCellNumber
		v.num, _ = c.Number()
	case block.TagBoolean:
		v.kind = KindCellBoolean
		v.boolean, _ = c.Bool()
	case block.TagInlineString:
		v.kind = KindCellString
		v.str, _ = c.InlineString()
	case block.TagSharedStringRef:
		v.kind = KindCellString
		id, _ := c.SharedStringRef()
		v.str, _ = s.wb.Strings.Get(id)
	case block.TagError:
		v.kind = KindCellError
		v.errCode, _ = c.ErrorCode()
	case block.TagFormula, block.TagSharedFormulaRef:
		v.kind = KindCellFormula
		expr, group, cached, hasCached := c.Formula()
		v.formulaExpr = expr
		v.formulaGroup = group
		v.formulaCached = cached
		v.hasCached = hasCached
	default:
		v.kind = KindCellEmpty
	}
	return v
}
