package oxml

import (
	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/format"
	"github.com/adnsv/fastxl/xl"
)

// WriteStyles emits xl/styles.xml, the combined fonts/fills/borders/
// numFmts/cellXfs table, via format.BuildSubTables's single pass over the
// workbook's interned descriptors, fully deduplicating each sub-table.
func WriteStyles(fw filewriter.FileWriter, wb *xl.Workbook) error {
	st := format.BuildSubTables(wb.Formats)
	return writePart(fw, "xl/styles.xml", func(w *Writer) {
		w.StartRoot("styleSheet").WriteAttribute("xmlns", nsSpreadsheetML)

		if len(st.CustomNumFmts) > 0 {
			w.StartElement("numFmts").WriteAttribute("count", len(st.CustomNumFmts))
			for i, fmtCode := range st.CustomNumFmts {
				w.StartElement("numFmt").
					WriteAttribute("numFmtId", 164+i).
					WriteAttribute("formatCode", fmtCode).
					EndElement()
			}
			w.EndElement()
		}

		w.StartElement("fonts").WriteAttribute("count", len(st.Fonts))
		for _, f := range st.Fonts {
			writeFont(w, f)
		}
		w.EndElement()

		w.StartElement("fills").WriteAttribute("count", len(st.Fills))
		for _, f := range st.Fills {
			writeFill(w, f)
		}
		w.EndElement()

		w.StartElement("borders").WriteAttribute("count", len(st.Borders))
		for _, b := range st.Borders {
			writeBorder(w, b)
		}
		w.EndElement()

		// cellStyleXfs: a single default entry.
		w.StartElement("cellStyleXfs").WriteAttribute("count", 1)
		w.StartElement("xf").
			WriteAttribute("numFmtId", 0).
			WriteAttribute("fontId", 0).
			WriteAttribute("fillId", 0).
			WriteAttribute("borderId", 0).
			EndElement()
		w.EndElement()

		w.StartElement("cellXfs").WriteAttribute("count", len(st.Xfs))
		for _, xf := range st.Xfs {
			writeXf(w, xf)
		}
		w.EndElement()

		w.StartElement("cellStyles").WriteAttribute("count", 1)
		w.StartElement("cellStyle").
			WriteAttribute("name", "Normal").
			WriteAttribute("xfId", 0).
			WriteAttribute("builtinId", 0).
			EndElement()
		w.EndElement()

		w.EndElement()
	})
}

func writeFont(w *Writer, f format.Font) {
	w.StartElement("font")
	if f.Bold {
		w.WriteEmptyElement("b")
	}
	if f.Italic {
		w.WriteEmptyElement("i")
	}
	if f.Strikeout {
		w.WriteEmptyElement("strike")
	}
	if f.Underline != format.UnderlineNone {
		w.StartElement("u").WriteAttribute("val", string(f.Underline)).EndElement()
	}
	sz := f.Size
	if sz == 0 {
		sz = 11
	}
	w.StartElement("sz").WriteAttribute("val", sz).EndElement()
	if f.Color != "" {
		w.StartElement("color").WriteAttribute("rgb", f.Color).EndElement()
	}
	name := f.Name
	if name == "" {
		name = "Calibri"
	}
	w.StartElement("name").WriteAttribute("val", name).EndElement()
	if f.Family != 0 {
		w.StartElement("family").WriteAttribute("val", f.Family).EndElement()
	}
	if f.Charset != 0 {
		w.StartElement("charset").WriteAttribute("val", f.Charset).EndElement()
	}
	if f.Script != "" {
		w.StartElement("vertAlign").WriteAttribute("val", f.Script).EndElement()
	}
	w.EndElement()
}

func writeFill(w *Writer, f format.Fill) {
	w.StartElement("fill")
	pattern := f.Pattern
	if pattern == "" {
		pattern = "none"
	}
	w.StartElement("patternFill").WriteAttribute("patternType", pattern)
	if f.FgColor != "" {
		w.StartElement("fgColor").WriteAttribute("rgb", f.FgColor).EndElement()
	}
	if f.BgColor != "" {
		w.StartElement("bgColor").WriteAttribute("rgb", f.BgColor).EndElement()
	}
	w.EndElement()
	w.EndElement()
}

func writeBorder(w *Writer, b format.Border) {
	w.StartElement("border")
	if b.DiagonalUp {
		w.WriteAttribute("diagonalUp", true)
	}
	if b.DiagonalDown {
		w.WriteAttribute("diagonalDown", true)
	}
	writeBorderSide(w, "left", b.Left)
	writeBorderSide(w, "right", b.Right)
	writeBorderSide(w, "top", b.Top)
	writeBorderSide(w, "bottom", b.Bottom)
	writeBorderSide(w, "diagonal", b.Diagonal)
	w.EndElement()
}

func writeBorderSide(w *Writer, name string, s format.BorderStyle) {
	if s.IsDefault() {
		w.WriteEmptyElement(name)
		return
	}
	w.StartElement(name).WriteAttribute("style", s.Style)
	if s.Color != "" {
		w.StartElement("color").WriteAttribute("rgb", s.Color).EndElement()
	}
	w.EndElement()
}

func writeXf(w *Writer, e format.XfEntry) {
	w.StartElement("xf").
		WriteAttribute("numFmtId", e.NumFmtID).
		WriteAttribute("fontId", e.FontID).
		WriteAttribute("fillId", e.FillID).
		WriteAttribute("borderId", e.BorderID).
		WriteAttribute("xfId", 0)
	if e.ApplyFont {
		w.WriteAttribute("applyFont", true)
	}
	if e.ApplyFill {
		w.WriteAttribute("applyFill", true)
	}
	if e.ApplyBorder {
		w.WriteAttribute("applyBorder", true)
	}
	if e.ApplyNumFmt {
		w.WriteAttribute("applyNumberFormat", true)
	}
	if e.ApplyProt {
		w.WriteAttribute("applyProtection", true)
	}
	if e.ApplyAlign {
		w.WriteAttribute("applyAlignment", true)
		w.StartElement("alignment")
		if e.Alignment.Horizontal != "" {
			w.WriteAttribute("horizontal", string(e.Alignment.Horizontal))
		}
		if e.Alignment.Vertical != "" {
			w.WriteAttribute("vertical", string(e.Alignment.Vertical))
		}
		if e.Alignment.WrapText {
			w.WriteAttribute("wrapText", true)
		}
		if e.Alignment.Rotation != 0 {
			w.WriteAttribute("textRotation", e.Alignment.Rotation)
		}
		if e.Alignment.Indent != 0 {
			w.WriteAttribute("indent", e.Alignment.Indent)
		}
		if e.Alignment.Shrink {
			w.WriteAttribute("shrinkToFit", true)
		}
		w.EndElement()
	}
	if e.ApplyProt {
		w.StartElement("protection").
			WriteAttribute("locked", e.Protection.Locked).
			WriteAttribute("hidden", e.Protection.Hidden).
			EndElement()
	}
	w.EndElement()
}
