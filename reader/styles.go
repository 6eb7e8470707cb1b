package reader

import (
	"encoding/xml"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/adnsv/fastxl/format"
)

// stylesDoc mirrors xl/styles.xml as written by oxml.WriteStyles (and read
// tolerantly from any other producer): numFmts/fonts/fills/borders/cellXfs,
// each a flat, index-addressed table fed into a semantic post-processing
// pass that rebuilds a format.Repository.
type stylesDoc struct {
	NumFmts struct {
		NumFmt []struct {
			ID         int    `xml:"numFmtId,attr"`
			FormatCode string `xml:"formatCode,attr"`
		} `xml:"numFmt"`
	} `xml:"numFmts"`
	Fonts struct {
		Font []fontEl `xml:"font"`
	} `xml:"fonts"`
	Fills struct {
		Fill []fillEl `xml:"fill"`
	} `xml:"fills"`
	Borders struct {
		Border []borderEl `xml:"border"`
	} `xml:"borders"`
	CellXfs struct {
		Xf []xfEl `xml:"xf"`
	} `xml:"cellXfs"`
}

type fontEl struct {
	Bold      *struct{} `xml:"b"`
	Italic    *struct{} `xml:"i"`
	Strike    *struct{} `xml:"strike"`
	Underline *struct {
		Val string `xml:"val,attr"`
	} `xml:"u"`
	Sz struct {
		Val float64 `xml:"val,attr"`
	} `xml:"sz"`
	Color struct {
		RGB string `xml:"rgb,attr"`
	} `xml:"color"`
	Name struct {
		Val string `xml:"val,attr"`
	} `xml:"name"`
	Family struct {
		Val int `xml:"val,attr"`
	} `xml:"family"`
	Charset struct {
		Val int `xml:"val,attr"`
	} `xml:"charset"`
	VertAlign struct {
		Val string `xml:"val,attr"`
	} `xml:"vertAlign"`
}

func (f fontEl) toFont() format.Font {
	out := format.Font{
		Name:    f.Name.Val,
		Size:    f.Sz.Val,
		Bold:    f.Bold != nil,
		Italic:  f.Italic != nil,
		Strikeout: f.Strike != nil,
		Color:   f.Color.RGB,
		Family:  f.Family.Val,
		Charset: f.Charset.Val,
		Script:  f.VertAlign.Val,
	}
	if f.Underline != nil {
		out.Underline = format.UnderlineType(f.Underline.Val)
		if out.Underline == "" {
			out.Underline = format.UnderlineSingle
		}
	}
	return out
}

type fillEl struct {
	PatternFill struct {
		PatternType string `xml:"patternType,attr"`
		FgColor     struct {
			RGB string `xml:"rgb,attr"`
		} `xml:"fgColor"`
		BgColor struct {
			RGB string `xml:"rgb,attr"`
		} `xml:"bgColor"`
	} `xml:"patternFill"`
}

func (f fillEl) toFill() format.Fill {
	return format.Fill{
		Pattern: f.PatternFill.PatternType,
		FgColor: f.PatternFill.FgColor.RGB,
		BgColor: f.PatternFill.BgColor.RGB,
	}
}

type borderSideEl struct {
	Style string `xml:"style,attr"`
	Color struct {
		RGB string `xml:"rgb,attr"`
	} `xml:"color"`
}

func (s borderSideEl) toStyle() format.BorderStyle {
	return format.BorderStyle{Style: s.Style, Color: s.Color.RGB}
}

type borderEl struct {
	DiagonalUp   bool         `xml:"diagonalUp,attr"`
	DiagonalDown bool         `xml:"diagonalDown,attr"`
	Left         borderSideEl `xml:"left"`
	Right        borderSideEl `xml:"right"`
	Top          borderSideEl `xml:"top"`
	Bottom       borderSideEl `xml:"bottom"`
	Diagonal     borderSideEl `xml:"diagonal"`
}

func (b borderEl) toBorder() format.Border {
	return format.Border{
		Left:         b.Left.toStyle(),
		Right:        b.Right.toStyle(),
		Top:          b.Top.toStyle(),
		Bottom:       b.Bottom.toStyle(),
		Diagonal:     b.Diagonal.toStyle(),
		DiagonalUp:   b.DiagonalUp,
		DiagonalDown: b.DiagonalDown,
	}
}

type xfEl struct {
	NumFmtID          int  `xml:"numFmtId,attr"`
	FontID            int  `xml:"fontId,attr"`
	FillID            int  `xml:"fillId,attr"`
	BorderID          int  `xml:"borderId,attr"`
	ApplyFont         bool `xml:"applyFont,attr"`
	ApplyFill         bool `xml:"applyFill,attr"`
	ApplyBorder       bool `xml:"applyBorder,attr"`
	ApplyNumberFormat bool `xml:"applyNumberFormat,attr"`
	ApplyProtection   bool `xml:"applyProtection,attr"`
	ApplyAlignment    bool `xml:"applyAlignment,attr"`
	Alignment         struct {
		Horizontal   string `xml:"horizontal,attr"`
		Vertical     string `xml:"vertical,attr"`
		WrapText     bool   `xml:"wrapText,attr"`
		TextRotation int16  `xml:"textRotation,attr"`
		Indent       uint8  `xml:"indent,attr"`
		ShrinkToFit  bool   `xml:"shrinkToFit,attr"`
	} `xml:"alignment"`
	Protection struct {
		Locked bool `xml:"locked,attr"`
		Hidden bool `xml:"hidden,attr"`
	} `xml:"protection"`
}

// styleContext is the result of parsing xl/styles.xml: a populated
// format.Repository plus the xf-index -> repository-id mapping cells'
// "s" attributes resolve through.
type styleContext struct {
	repo       *format.Repository
	styleIndex []uint32
}

// parseStyles parses xl/styles.xml into a fresh format.Repository. Every
// cellXfs entry is turned into a format.Descriptor and interned, in xf
// order, so styleIndex[xfPos] is stable and directly usable wherever a
// cell's "s" attribute needs translating to a repository id.
func parseStyles(data []byte) (*styleContext, error) {
	var doc stylesDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	customNumFmts := map[int]string{}
	for _, nf := range doc.NumFmts.NumFmt {
		customNumFmts[nf.ID] = nf.FormatCode
	}
	// Deterministic (sorted) id iteration when logging or cross-checking.
	ids := maps.Keys(customNumFmts)
	sort.Ints(ids)

	numFmt := func(id int) format.NumberFormat {
		if code, ok := customNumFmts[id]; ok {
			nf := format.NumberFormat{Custom: code}
			if bid, ok := format.CanonicalBuiltinID(nf); ok {
				return format.NumberFormat{BuiltinID: bid}
			}
			return nf
		}
		return format.NumberFormat{BuiltinID: id}
	}

	repo := format.NewRepository()
	ctx := &styleContext{repo: repo}

	for _, xf := range doc.CellXfs.Xf {
		d := format.Descriptor{
			NumberFormat: numFmt(xf.NumFmtID),
		}
		if xf.ApplyFont && xf.FontID < len(doc.Fonts.Font) {
			d.Font = doc.Fonts.Font[xf.FontID].toFont()
		}
		if xf.ApplyFill && xf.FillID < len(doc.Fills.Fill) {
			d.Fill = doc.Fills.Fill[xf.FillID].toFill()
		}
		if xf.ApplyBorder && xf.BorderID < len(doc.Borders.Border) {
			d.Border = doc.Borders.Border[xf.BorderID].toBorder()
		}
		if xf.ApplyAlignment {
			d.Alignment = format.Alignment{
				Horizontal: format.HorizontalAlignment(xf.Alignment.Horizontal),
				Vertical:   format.VerticalAlignment(xf.Alignment.Vertical),
				WrapText:   xf.Alignment.WrapText,
				Rotation:   xf.Alignment.TextRotation,
				Indent:     xf.Alignment.Indent,
				Shrink:     xf.Alignment.ShrinkToFit,
			}
		}
		if xf.ApplyProtection {
			d.Protection = format.Protection{Locked: xf.Protection.Locked, Hidden: xf.Protection.Hidden}
		}
		id := repo.Intern(format.New(d))
		ctx.styleIndex = append(ctx.styleIndex, id)
	}
	return ctx, nil
}

// resolve translates a cell's "s" attribute (an xf index) to a repository
// id; ok is false for an out-of-range index, which the caller treats as
// "no explicit format" rather than aborting.
func (c *styleContext) resolve(xfIndex uint32) (uint32, bool) {
	if int(xfIndex) >= len(c.styleIndex) {
		return 0, false
	}
	return c.styleIndex[xfIndex], true
}
