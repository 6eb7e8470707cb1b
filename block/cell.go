// Package block implements the sparse cell grid backing a writable sheet:
// a tagged cell value kept to a handful of machine words, grouped into
// fixed 64x64 blocks so that only the occupied regions of a sheet cost
// memory.
package block

import "math"

// Tag identifies the kind of value a Cell holds. It mirrors the internal
// storage alphabet; Sheet-facing code collapses InlineString/SharedStringRef
// to a single "string" kind and SharedFormulaRef to "formula" (see xl.CellView).
type Tag uint8

const (
	TagEmpty Tag = iota
	TagNumber
	TagInlineString
	TagSharedStringRef
	TagBoolean
	TagFormula
	TagSharedFormulaRef
	TagError
)

// Flags records the three boolean facets of a cell that are orthogonal to
// its value tag.
type Flags uint8

const (
	FlagHasFormat Flags = 1 << iota
	FlagHasHyperlink
	FlagHasFormulaResult
)

// inlineCap is the maximum byte length of a string stored inline in a Cell
// without allocating an Ext record.
const inlineCap = 15

// Ext is the owning extension record allocated lazily for a Cell whenever it
// needs more than the inline payload: a long string, a formula body, a
// hyperlink target, a comment, a cached formula result, a format id, or a
// shared-formula group index.
type Ext struct {
	LongString    string
	FormulaText   string
	Hyperlink     string
	CommentAuthor string
	CommentText   string
	FormulaResult float64
	SharedGroup   int32
	FormatID      uint32
}

// Cell is a tagged value occupying a fixed-size struct plus an optional
// owning pointer to an Ext, allocated only when a cell needs more than its
// inline payload.
type Cell struct {
	tag    Tag
	flags  Flags
	bits   uint64
	inline [inlineCap]byte
	inlineN uint8
	ext    *Ext
}

// Tag reports the cell's storage tag.
func (c *Cell) Tag() Tag { return c.tag }

// IsEmpty reports whether the cell holds no value.
func (c *Cell) IsEmpty() bool { return c.tag == TagEmpty }

func (c *Cell) ext_() *Ext {
	if c.ext == nil {
		c.ext = &Ext{SharedGroup: -1}
	}
	return c.ext
}

// SetNumber stores a float64 value.
func (c *Cell) SetNumber(v float64) {
	c.resetValue()
	c.tag = TagNumber
	c.bits = math.Float64bits(v)
}

// Number returns the stored numeric value; ok is false for non-Number cells.
func (c *Cell) Number() (float64, bool) {
	if c.tag != TagNumber {
		return 0, false
	}
	return math.Float64frombits(c.bits), true
}

// SetBool stores a boolean value.
func (c *Cell) SetBool(v bool) {
	c.resetValue()
	c.tag = TagBoolean
	if v {
		c.bits = 1
	} else {
		c.bits = 0
	}
}

// Bool returns the stored boolean; ok is false for non-Boolean cells.
func (c *Cell) Bool() (bool, bool) {
	if c.tag != TagBoolean {
		return false, false
	}
	return c.bits != 0, true
}

// SetInlineString stores s inline when it fits in inlineCap bytes, tagging
// the cell TagInlineString and allocating no Ext. The caller is responsible
// for deciding, based on length, whether to call this or SetSharedStringRef
// instead; SetInlineString reports false and does nothing if s does not fit.
func (c *Cell) SetInlineString(s string) bool {
	if len(s) > inlineCap {
		return false
	}
	c.resetValue()
	c.tag = TagInlineString
	c.inlineN = uint8(copy(c.inline[:], s))
	return true
}

// SetLongString stores s in the Ext record regardless of length, still
// tagged TagInlineString at the storage layer (the distinction between
// "fits inline" and "long" is an implementation detail; both surface as
// String() at the CellView level via the owning sheet).
func (c *Cell) SetLongString(s string) {
	c.resetValue()
	c.tag = TagInlineString
	c.ext_().LongString = s
}

// InlineString returns the cell's string payload for TagInlineString cells,
// whether stored inline or in the Ext overflow.
func (c *Cell) InlineString() (string, bool) {
	if c.tag != TagInlineString {
		return "", false
	}
	if c.ext != nil && c.ext.LongString != "" {
		return c.ext.LongString, true
	}
	return string(c.inline[:c.inlineN]), true
}

// SetSharedStringRef stores a shared-string table id.
func (c *Cell) SetSharedStringRef(id uint32) {
	c.resetValue()
	c.tag = TagSharedStringRef
	c.bits = uint64(id)
}

// SharedStringRef returns the stored shared-string id.
func (c *Cell) SharedStringRef() (uint32, bool) {
	if c.tag != TagSharedStringRef {
		return 0, false
	}
	return uint32(c.bits), true
}

// SetError stores an error code (e.g. #DIV/0! encoded by the caller).
func (c *Cell) SetError(code uint32) {
	c.resetValue()
	c.tag = TagError
	c.bits = uint64(code)
}

// ErrorCode returns the stored error code.
func (c *Cell) ErrorCode() (uint32, bool) {
	if c.tag != TagError {
		return 0, false
	}
	return uint32(c.bits), true
}

// SetFormula stores formula text and an optional cached result.
func (c *Cell) SetFormula(expr string, cached *float64) {
	c.resetValue()
	c.tag = TagFormula
	e := c.ext_()
	e.FormulaText = expr
	if cached != nil {
		e.FormulaResult = *cached
		c.flags |= FlagHasFormulaResult
	}
}

// SetSharedFormulaRef stores a shared-formula group index and an optional
// cached result, without repeating the formula text.
func (c *Cell) SetSharedFormulaRef(group int32, cached *float64) {
	c.resetValue()
	c.tag = TagSharedFormulaRef
	e := c.ext_()
	e.SharedGroup = group
	if cached != nil {
		e.FormulaResult = *cached
		c.flags |= FlagHasFormulaResult
	}
}

// Formula returns the formula text (empty for a shared-formula reference),
// the shared-formula group (-1 if this is not a shared-formula reference),
// and the cached result if present.
func (c *Cell) Formula() (expr string, group int32, cached float64, hasCached bool) {
	group = -1
	if c.ext != nil {
		expr = c.ext.FormulaText
		group = c.ext.SharedGroup
		cached = c.ext.FormulaResult
	}
	hasCached = c.flags&FlagHasFormulaResult != 0
	return
}

// SetFormatID attaches a format repository id to the cell, allocating the
// Ext record lazily.
func (c *Cell) SetFormatID(id uint32) {
	c.ext_().FormatID = id
	c.flags |= FlagHasFormat
}

// FormatID returns the attached format id; ok is false when the cell has no
// explicit format (the caller should fall back to row/column/default).
func (c *Cell) FormatID() (uint32, bool) {
	if c.flags&FlagHasFormat == 0 || c.ext == nil {
		return 0, false
	}
	return c.ext.FormatID, true
}

// SetHyperlink attaches a hyperlink target.
func (c *Cell) SetHyperlink(target string) {
	if target == "" {
		return
	}
	c.ext_().Hyperlink = target
	c.flags |= FlagHasHyperlink
}

// Hyperlink returns the attached hyperlink target, if any.
func (c *Cell) Hyperlink() (string, bool) {
	if c.flags&FlagHasHyperlink == 0 || c.ext == nil {
		return "", false
	}
	return c.ext.Hyperlink, true
}

// SetComment attaches a comment author/text pair.
func (c *Cell) SetComment(author, text string) {
	e := c.ext_()
	e.CommentAuthor = author
	e.CommentText = text
}

// Comment returns the attached comment, if any.
func (c *Cell) Comment() (author, text string, ok bool) {
	if c.ext == nil || c.ext.CommentText == "" {
		return "", "", false
	}
	return c.ext.CommentAuthor, c.ext.CommentText, true
}

// resetValue clears the value-bearing fields but preserves format id,
// hyperlink, and comment, matching the invariant that overwriting a cell's
// value does not silently drop its formatting.
func (c *Cell) resetValue() {
	c.tag = TagEmpty
	c.bits = 0
	c.inlineN = 0
	if c.ext != nil {
		c.ext.LongString = ""
		c.ext.FormulaText = ""
		c.ext.FormulaResult = 0
		c.ext.SharedGroup = -1
	}
	c.flags &^= FlagHasFormulaResult
}

// clear resets the cell to empty, releasing the extension entirely.
func (c *Cell) clear() {
	*c = Cell{}
}
