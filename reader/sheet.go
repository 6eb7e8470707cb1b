package reader

import (
	"encoding/xml"
	"strconv"

	"github.com/adnsv/fastxl/columnar"
	"github.com/adnsv/fastxl/xl"
)

// sheetDoc mirrors xl/worksheets/sheetN.xml as written by oxml.WriteSheet.
type sheetDoc struct {
	SheetViews struct {
		SheetView []struct {
			TabSelected bool `xml:"tabSelected,attr"`
			Pane        *struct {
				XSplit      uint32 `xml:"xSplit,attr"`
				YSplit      uint32 `xml:"ySplit,attr"`
				TopLeftCell string `xml:"topLeftCell,attr"`
			} `xml:"pane"`
		} `xml:"sheetView"`
	} `xml:"sheetViews"`
	Cols struct {
		Col []struct {
			Min          uint32  `xml:"min,attr"`
			Max          uint32  `xml:"max,attr"`
			Width        float64 `xml:"width,attr"`
			CustomWidth  bool    `xml:"customWidth,attr"`
			Style        uint32  `xml:"style,attr"`
			Hidden       bool    `xml:"hidden,attr"`
			OutlineLevel int     `xml:"outlineLevel,attr"`
		} `xml:"col"`
	} `xml:"cols"`
	SheetData struct {
		Row []rowEl `xml:"row"`
	} `xml:"sheetData"`
	AutoFilter *struct {
		Ref string `xml:"ref,attr"`
	} `xml:"autoFilter"`
	MergeCells struct {
		MergeCell []struct {
			Ref string `xml:"ref,attr"`
		} `xml:"mergeCell"`
	} `xml:"mergeCells"`
	Hyperlinks struct {
		Hyperlink []struct {
			Ref string `xml:"ref,attr"`
			RID string `xml:"id,attr"`
		} `xml:"hyperlink"`
	} `xml:"hyperlinks"`
	PageMargins *struct {
		LeftAttr   float64 `xml:"left,attr"`
		RightAttr  float64 `xml:"right,attr"`
		TopAttr    float64 `xml:"top,attr"`
		BottomAttr float64 `xml:"bottom,attr"`
	} `xml:"pageMargins"`
	PageSetup *struct {
		PaperSize   int    `xml:"paperSize,attr"`
		Orientation string `xml:"orientation,attr"`
		FitToWidth  int    `xml:"fitToWidth,attr"`
		FitToHeight int    `xml:"fitToHeight,attr"`
	} `xml:"pageSetup"`
}

type rowEl struct {
	R            uint32  `xml:"r,attr"`
	Ht           float64 `xml:"ht,attr"`
	CustomHeight bool    `xml:"customHeight,attr"`
	Hidden       bool    `xml:"hidden,attr"`
	C            []cEl   `xml:"c"`
}

type cEl struct {
	R  string  `xml:"r,attr"`
	S  uint32  `xml:"s,attr"`
	T  string  `xml:"t,attr"`
	V  *string `xml:"v"`
	F  *struct {
		Type string `xml:"t,attr"`
		Si   int32  `xml:"si,attr"`
		Expr string `xml:",chardata"`
	} `xml:"f"`
	Is *struct {
		T string `xml:"t"`
	} `xml:"is"`
}

// sheetParseContext carries the shared, workbook-level state a single
// sheet's parse needs: the style index and shared-string table it resolves
// cell references against, plus the logger for tolerated anomalies.
type sheetParseContext struct {
	styles     *styleContext
	strings    func(id uint32) (string, bool)
	logger     xl.Logger
	hyperlinks map[string]string // rId -> resolved target, from this sheet's .rels

	// scan, when non-nil, receives a columnar mirror of every cell
	// alongside the normal block-matrix population; set only when the
	// workbook is being opened read-only.
	scan *columnar.Store
}

// parseSheet parses one xl/worksheets/sheetN.xml payload into sh, filling
// the block sparse matrix directly; cell references to shared strings are
// retained as ids rather than resolved to their text.
func parseSheet(data []byte, sh *xl.Sheet, ctx sheetParseContext) error {
	var doc sheetDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return err
	}

	if len(doc.SheetViews.SheetView) > 0 {
		sv := doc.SheetViews.SheetView[0]
		if sv.TabSelected {
			sh.SetTabSelectedRaw(true)
		}
		if sv.Pane != nil {
			sh.SetFreezeRaw(xl.FreezePane{
				SplitRow:    sv.Pane.YSplit,
				SplitCol:    sv.Pane.XSplit,
				TopLeftCell: sv.Pane.TopLeftCell,
			})
		}
	}

	for _, c := range doc.Cols.Col {
		info := xl.ColumnInfo{
			Width:        c.Width,
			Hidden:       c.Hidden,
			OutlineLevel: c.OutlineLevel,
		}
		if c.Style != 0 {
			if id, ok := ctx.styles.resolve(c.Style); ok {
				info.DefaultFormatID = id
				info.HasFormat = true
			}
		}
		for col := c.Min; col <= c.Max && col < xl.MaxCols; col++ {
			sh.SetColumnRaw(col-1, info)
		}
	}

	for _, row := range doc.SheetData.Row {
		r := row.R - 1
		if row.CustomHeight || row.Hidden {
			sh.SetRowRaw(r, xl.RowInfo{Height: row.Ht, Hidden: row.Hidden})
		}
		for _, c := range row.C {
			if err := parseCell(c, r, sh, ctx); err != nil {
				ctx.logger.Warnf("reader: skipping malformed cell %q in sheet %q: %v", c.R, sh.Name(), err)
			}
		}
	}

	if doc.AutoFilter != nil {
		if startRow, startCol, endRow, endCol, err := xl.ParseRangeRef(doc.AutoFilter.Ref); err == nil {
			sh.SetAutoFilterRaw(xl.RangeRef{StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol})
		}
	}

	for _, hl := range doc.Hyperlinks.Hyperlink {
		target, ok := ctx.hyperlinks[hl.RID]
		if !ok {
			continue
		}
		if row, col, err := xl.ParseCellRef(hl.Ref); err == nil {
			cell := sh.RawCell(row, col)
			cell.SetHyperlink(target)
			sh.MarkWritten(row, col)
		}
	}

	for _, m := range doc.MergeCells.MergeCell {
		if startRow, startCol, endRow, endCol, err := xl.ParseRangeRef(m.Ref); err == nil {
			sh.MergeRaw(xl.RangeRef{StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol})
		}
	}

	if doc.PageMargins != nil || doc.PageSetup != nil {
		p := xl.PrintSettings{}
		if doc.PageMargins != nil {
			p.MarginLeft = doc.PageMargins.LeftAttr
			p.MarginRight = doc.PageMargins.RightAttr
			p.MarginTop = doc.PageMargins.TopAttr
			p.MarginBottom = doc.PageMargins.BottomAttr
		}
		if doc.PageSetup != nil {
			p.PaperSize = doc.PageSetup.PaperSize
			p.Orientation = doc.PageSetup.Orientation
			p.FitToWidth = doc.PageSetup.FitToWidth
			p.FitToHeight = doc.PageSetup.FitToHeight
		}
		sh.SetPrintSettingsRaw(p)
	}

	return nil
}

func parseCell(c cEl, row uint32, sh *xl.Sheet, ctx sheetParseContext) error {
	_, col, err := xl.ParseCellRef(c.R)
	if err != nil {
		return err
	}
	cell := sh.RawCell(row, col)
	written := false

	if c.S != 0 {
		if id, ok := ctx.styles.resolve(c.S); ok {
			cell.SetFormatID(id)
		}
	}

	switch {
	case c.F != nil:
		var cached *float64
		if c.V != nil {
			if f, err := strconv.ParseFloat(*c.V, 64); err == nil {
				cached = &f
			}
		}
		if c.F.Type == "shared" {
			cell.SetSharedFormulaRef(c.F.Si, cached)
		} else {
			cell.SetFormula(c.F.Expr, cached)
		}
		if ctx.scan != nil && cached != nil {
			ctx.scan.PutNumber(row, col, *cached)
		}
		written = true
	case c.Is != nil:
		if !cell.SetInlineString(c.Is.T) {
			cell.SetLongString(c.Is.T)
		}
		if ctx.scan != nil {
			ctx.scan.PutString(row, col, c.Is.T)
		}
		written = true
	case c.T == "s":
		if c.V != nil {
			if id, err := strconv.ParseUint(*c.V, 10, 32); err == nil {
				if _, ok := ctx.strings(uint32(id)); ok {
					cell.SetSharedStringRef(uint32(id))
					if ctx.scan != nil {
						ctx.scan.PutSharedString(row, col, uint32(id))
					}
					written = true
				}
			}
		}
	case c.T == "b":
		if c.V != nil {
			v := *c.V == "1"
			cell.SetBool(v)
			if ctx.scan != nil {
				ctx.scan.PutBool(row, col, v)
			}
			written = true
		}
	case c.T == "e":
		if c.V != nil {
			cell.SetError(errorCodeFromString(*c.V))
			if ctx.scan != nil {
				ctx.scan.PutString(row, col, *c.V)
			}
			written = true
		}
	case c.T == "inlineStr":
		// Covered by the c.Is != nil case above; reachable only if a
		// producer sets t="inlineStr" without an <is> child, which has no
		// value to store.
	default:
		if c.V != nil {
			if f, err := strconv.ParseFloat(*c.V, 64); err == nil {
				cell.SetNumber(f)
				if ctx.scan != nil {
					ctx.scan.PutNumber(row, col, f)
				}
				written = true
			}
		}
	}

	if written || c.S != 0 {
		sh.MarkWritten(row, col)
	}
	return nil
}

// errorCodeFromString maps the canonical Excel error literals back to the
// numeric codes oxml.errorCodeString assigns, defaulting to #N/A for any
// producer-specific literal this library does not recognize.
func errorCodeFromString(s string) uint32 {
	switch s {
	case "#NULL!":
		return 0
	case "#DIV/0!":
		return 1
	case "#VALUE!":
		return 2
	case "#REF!":
		return 3
	case "#NAME?":
		return 4
	case "#NUM!":
		return 5
	case "#N/A":
		return 6
	case "#GETTING_DATA":
		return 7
	default:
		return 6
	}
}
