// Package format implements the style-descriptor value type and the
// intern-on-insert repository that deduplicates it to a dense id, plus the
// sub-value tables (fonts, fills, borders, number formats) the styles
// serializer reconstructs from the repository on save.
package format

import "hash/fnv"

// UnderlineType is the ST_UnderlineValues vocabulary.
type UnderlineType string

const (
	UnderlineNone             UnderlineType = ""
	UnderlineSingle           UnderlineType = "single"
	UnderlineDouble           UnderlineType = "double"
	UnderlineSingleAccounting UnderlineType = "singleAccounting"
	UnderlineDoubleAccounting UnderlineType = "doubleAccounting"
)

// Font is the font sub-value of a Descriptor.
type Font struct {
	Name          string
	Size          float64
	Bold          bool
	Italic        bool
	Underline     UnderlineType
	Strikeout     bool
	Script        string // "baseline", "superscript", "subscript"
	Color         string // ARGB hex, e.g. "FF000000"; empty = automatic
	Family        int
	Charset       int
}

// IsDefault reports whether f is indistinguishable from the process-wide
// default font (Calibri 11, no emphasis).
func (f Font) IsDefault() bool {
	return f == Font{Name: "Calibri", Size: 11, Family: 2} || f == Font{}
}

// HorizontalAlignment is the ST_HorizontalAlignment vocabulary.
type HorizontalAlignment string

const (
	HAlignGeneral          HorizontalAlignment = "general"
	HAlignLeft             HorizontalAlignment = "left"
	HAlignCenter           HorizontalAlignment = "center"
	HAlignRight            HorizontalAlignment = "right"
	HAlignFill             HorizontalAlignment = "fill"
	HAlignJustify          HorizontalAlignment = "justify"
	HAlignCenterContinuous HorizontalAlignment = "centerContinuous"
	HAlignDistributed      HorizontalAlignment = "distributed"
)

// VerticalAlignment is the ST_VerticalAlignment vocabulary.
type VerticalAlignment string

const (
	VAlignTop         VerticalAlignment = "top"
	VAlignCenter      VerticalAlignment = "center"
	VAlignBottom      VerticalAlignment = "bottom"
	VAlignJustify     VerticalAlignment = "justify"
	VAlignDistributed VerticalAlignment = "distributed"
)

// Alignment is the alignment sub-value of a Descriptor.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
	WrapText   bool
	Rotation   int16 // -90..90, or 255 for vertical text
	Indent     uint8 // 0..15
	Shrink     bool
}

// IsDefault reports whether a is the zero alignment.
func (a Alignment) IsDefault() bool { return a == Alignment{} }

// BorderStyle is one side (or the diagonal) of a Border.
type BorderStyle struct {
	Style string // "thin", "medium", "dashed", ... ; "" = none
	Color string
}

// IsDefault reports whether s draws nothing.
func (s BorderStyle) IsDefault() bool { return s == BorderStyle{} }

// Border is the border sub-value of a Descriptor.
type Border struct {
	Left, Right, Top, Bottom, Diagonal BorderStyle
	DiagonalUp, DiagonalDown           bool
}

// IsDefault reports whether b draws nothing.
func (b Border) IsDefault() bool { return b == Border{} }

// Fill is the fill sub-value of a Descriptor.
type Fill struct {
	Pattern string // "none", "solid", "gray125", ...
	FgColor string
	BgColor string
}

// IsDefault reports whether f is "no fill".
func (f Fill) IsDefault() bool { return f == Fill{} || f == Fill{Pattern: "none"} }

// NumberFormat is the number-format sub-value: either a built-in index or a
// custom format string (mutually exclusive; Custom != "" takes precedence).
type NumberFormat struct {
	BuiltinID int
	Custom    string
}

// IsDefault reports whether nf is "General" (builtin id 0, no custom string).
func (nf NumberFormat) IsDefault() bool { return nf.BuiltinID == 0 && nf.Custom == "" }

// Protection is the protection sub-value of a Descriptor.
type Protection struct {
	Locked bool
	Hidden bool
}

// IsDefault reports whether p is the spreadsheet default (locked, not hidden).
func (p Protection) IsDefault() bool { return p == Protection{Locked: true} || p == Protection{} }

// Descriptor is an immutable cell-format value. Equality is structural; a
// hash is computed once at construction so Repository.Intern can look up
// candidates in expected O(1).
type Descriptor struct {
	Font         Font
	Alignment    Alignment
	Border       Border
	Fill         Fill
	NumberFormat NumberFormat
	Protection   Protection

	hash uint64
}

// Default is the process-wide default descriptor; Repository always assigns
// it id 0.
var Default = New(Descriptor{})

// New returns d with its hash populated. Construct every Descriptor through
// New (or Repository.Intern, which calls it) so hash is never stale.
func New(d Descriptor) Descriptor {
	d.hash = computeHash(d)
	return d
}

// Hash returns the precomputed structural hash.
func (d Descriptor) Hash() uint64 { return d.hash }

// Equal reports structural equality, ignoring the cached hash field (which
// is itself a pure function of the other fields).
func (d Descriptor) Equal(o Descriptor) bool {
	return d.Font == o.Font &&
		d.Alignment == o.Alignment &&
		d.Border == o.Border &&
		d.Fill == o.Fill &&
		d.NumberFormat == o.NumberFormat &&
		d.Protection == o.Protection
}

// IsDefault reports whether every sub-value is at its default, i.e. the
// styles serializer can skip emitting any applyX override for this
// descriptor.
func (d Descriptor) IsDefault() bool {
	return d.Font.IsDefault() && d.Alignment.IsDefault() && d.Border.IsDefault() &&
		d.Fill.IsDefault() && d.NumberFormat.IsDefault() && d.Protection.IsDefault()
}

func computeHash(d Descriptor) uint64 {
	h := fnv.New64a()
	writeAny(h, d.Font)
	writeAny(h, d.Alignment)
	writeAny(h, d.Border)
	writeAny(h, d.Fill)
	writeAny(h, d.NumberFormat)
	writeAny(h, d.Protection)
	return h.Sum64()
}

// writeAny feeds a stable byte representation of v's fields into h. It is
// deliberately simple (fmt-based) rather than reflection-free binary
// packing: descriptors are interned once per distinct style, not per cell,
// so hashing cost is not on the hot per-cell path.
func writeAny(h interface{ Write([]byte) (int, error) }, v any) {
	_, _ = h.Write([]byte(sprintStable(v)))
}
