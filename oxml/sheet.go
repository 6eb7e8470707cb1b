package oxml

import (
	"fmt"
	"sort"

	"github.com/adnsv/fastxl/block"
	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xl"
)

// sortedEntries returns a sheet's occupied cells sorted by (row, col), the
// order required for byte-identical repeated emission.
func sortedEntries(sh *xl.Sheet) []block.Entry {
	entries := sh.Cells()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Row != entries[j].Row {
			return entries[i].Row < entries[j].Row
		}
		return entries[i].Col < entries[j].Col
	})
	return entries
}

// WriteSheet emits one xl/worksheets/sheetN.xml part, backed by the
// block-matrix sparse model and covering merges, autofilter, freeze panes,
// and print settings alongside the cell grid.
func WriteSheet(fw filewriter.FileWriter, wb *xl.Workbook, sh *xl.Sheet) error {
	entries := sortedEntries(sh)
	useSharedStrings := wb.Options().UseSharedStrings

	return writePart(fw, sh.PartPath(), func(w *Writer) {
		w.StartRoot("worksheet").
			WriteAttribute("xmlns", nsSpreadsheetML).
			WriteAttribute("xmlns:r", nsRelType)

		fz, hasFreeze := sh.Freeze()
		if sh.IsTabSelected() || sh.IsActive() || hasFreeze {
			w.StartElement("sheetViews")
			w.StartElement("sheetView")
			if sh.IsTabSelected() || sh.IsActive() {
				w.WriteAttribute("tabSelected", true)
			}
			w.WriteAttribute("workbookViewId", 0)
			if hasFreeze {
				w.StartElement("pane").
					WriteAttribute("xSplit", fz.SplitCol).
					WriteAttribute("ySplit", fz.SplitRow).
					WriteAttribute("topLeftCell", fz.TopLeftCell).
					WriteAttribute("activePane", "bottomRight").
					WriteAttribute("state", "frozen").
					EndElement()
			}
			w.EndElement()
			w.EndElement()
		}

		cols := sh.SortedColumns()
		if len(cols) > 0 {
			w.StartElement("cols")
			for _, c := range cols {
				el := w.StartElement("col").
					WriteAttribute("min", c.Index+1).
					WriteAttribute("max", c.Index+1)
				if c.Info.Width > 0 {
					el.WriteAttribute("width", c.Info.Width).WriteAttribute("customWidth", true)
				}
				if c.Info.HasFormat {
					el.WriteAttribute("style", c.Info.DefaultFormatID)
				}
				if c.Info.Hidden {
					el.WriteAttribute("hidden", true)
				}
				if c.Info.OutlineLevel > 0 {
					el.WriteAttribute("outlineLevel", c.Info.OutlineLevel)
				}
				el.EndElement()
			}
			w.EndElement()
		}

		w.StartElement("sheetData")
		writeSheetData(w, sh, entries, useSharedStrings, wb)
		w.EndElement()

		if r, ok := sh.AutoFilter(); ok {
			w.StartElement("autoFilter").WriteAttribute("ref", r.String()).EndElement()
		}

		if merges := sh.Merges(); len(merges) > 0 {
			w.StartElement("mergeCells").WriteAttribute("count", len(merges))
			for _, m := range merges {
				w.StartElement("mergeCell").WriteAttribute("ref", m.String()).EndElement()
			}
			w.EndElement()
		}

		writeHyperlinks(w, sh, entries)
		writePrintSettings(w, sh)

		w.EndElement()
	})
}

func writeSheetData(w *Writer, sh *xl.Sheet, entries []block.Entry, useSharedStrings bool, wb *xl.Workbook) {
	i := 0
	for i < len(entries) {
		row := entries[i].Row
		w.StartElement("row").WriteAttribute("r", row+1)
		for _, ro := range sh.SortedRows() {
			if ro.Index == row {
				if ro.Info.Height > 0 {
					w.WriteAttribute("ht", ro.Info.Height).WriteAttribute("customHeight", true)
				}
				if ro.Info.Hidden {
					w.WriteAttribute("hidden", true)
				}
				break
			}
		}
		for i < len(entries) && entries[i].Row == row {
			writeCell(w, sh, entries[i], useSharedStrings, wb)
			i++
		}
		w.EndElement()
	}
}

func writeCell(w *Writer, sh *xl.Sheet, e block.Entry, useSharedStrings bool, wb *xl.Workbook) {
	ref := xl.CellRef(e.Row, e.Col)
	el := w.StartElement("c").WriteAttribute("r", ref)
	if fid, ok := e.Cell.FormatID(); ok {
		el.WriteAttribute("s", fid)
	}

	switch e.Cell.Tag() {
	case block.TagNumber:
		v, _ := e.Cell.Number()
		w.StartElement("v").WriteText(fmt.Sprintf("%g", v)).EndElement()
	case block.TagBoolean:
		b, _ := e.Cell.Bool()
		el.WriteAttribute("t", "b")
		val := "0"
		if b {
			val = "1"
		}
		w.StartElement("v").WriteText(val).EndElement()
	case block.TagInlineString:
		s, _ := e.Cell.InlineString()
		if useSharedStrings {
			id := wb.Strings.Intern(s)
			el.WriteAttribute("t", "s")
			w.StartElement("v").WriteText(fmt.Sprintf("%d", id)).EndElement()
		} else {
			el.WriteAttribute("t", "inlineStr")
			w.StartElement("is")
			w.StartElement("t").WriteAttribute("xml:space", "preserve").WriteText(s).EndElement()
			w.EndElement()
		}
	case block.TagSharedStringRef:
		id, _ := e.Cell.SharedStringRef()
		el.WriteAttribute("t", "s")
		w.StartElement("v").WriteText(fmt.Sprintf("%d", id)).EndElement()
	case block.TagError:
		code, _ := e.Cell.ErrorCode()
		el.WriteAttribute("t", "e")
		w.StartElement("v").WriteText(errorCodeString(code)).EndElement()
	case block.TagFormula:
		expr, _, cached, hasCached := e.Cell.Formula()
		w.StartElement("f").WriteText(expr).EndElement()
		if hasCached {
			w.StartElement("v").WriteText(fmt.Sprintf("%g", cached)).EndElement()
		}
	case block.TagSharedFormulaRef:
		_, group, cached, hasCached := e.Cell.Formula()
		w.StartElement("f").WriteAttribute("t", "shared").WriteAttribute("si", group).EndElement()
		if hasCached {
			w.StartElement("v").WriteText(fmt.Sprintf("%g", cached)).EndElement()
		}
	}

	w.EndElement()
}

// errorCodeString maps the numeric error codes this library assigns back
// to the canonical Excel error literals.
func errorCodeString(code uint32) string {
	switch code {
	case 0:
		return "#NULL!"
	case 1:
		return "#DIV/0!"
	case 2:
		return "#VALUE!"
	case 3:
		return "#REF!"
	case 4:
		return "#NAME?"
	case 5:
		return "#NUM!"
	case 6:
		return "#N/A"
	case 7:
		return "#GETTING_DATA"
	default:
		return "#N/A"
	}
}

func writeHyperlinks(w *Writer, sh *xl.Sheet, entries []block.Entry) {
	type hl struct {
		ref    string
		target string
	}
	var links []hl
	for _, e := range entries {
		if target, ok := e.Cell.Hyperlink(); ok {
			links = append(links, hl{ref: xl.CellRef(e.Row, e.Col), target: target})
		}
	}
	if len(links) == 0 {
		return
	}
	w.StartElement("hyperlinks")
	for i, l := range links {
		w.StartElement("hyperlink").
			WriteAttribute("ref", l.ref).
			WriteAttribute("r:id", fmt.Sprintf("rId%d", i+1)).
			EndElement()
	}
	w.EndElement()
}

func writePrintSettings(w *Writer, sh *xl.Sheet) {
	p := sh.GetPrintSettings()
	if p == (xl.PrintSettings{}) {
		return
	}
	w.StartElement("pageMargins").
		WriteAttribute("left", p.MarginLeft).
		WriteAttribute("right", p.MarginRight).
		WriteAttribute("top", p.MarginTop).
		WriteAttribute("bottom", p.MarginBottom).
		WriteAttribute("header", 0).
		WriteAttribute("footer", 0).
		EndElement()
	el := w.StartElement("pageSetup")
	if p.PaperSize > 0 {
		el.WriteAttribute("paperSize", p.PaperSize)
	}
	if p.Orientation != "" {
		el.WriteAttribute("orientation", p.Orientation)
	}
	if p.FitToWidth > 0 {
		el.WriteAttribute("fitToWidth", p.FitToWidth)
	}
	if p.FitToHeight > 0 {
		el.WriteAttribute("fitToHeight", p.FitToHeight)
	}
	el.EndElement()
}

// WriteSheetRels emits xl/worksheets/_rels/sheetN.xml.rels: one
// relationship per external hyperlink target, plus a relationship to the
// sheet's comments part when it has any. A no-op when neither applies.
func WriteSheetRels(fw filewriter.FileWriter, sh *xl.Sheet) error {
	var targets []string
	for _, e := range sortedEntries(sh) {
		if t, ok := e.Cell.Hyperlink(); ok {
			targets = append(targets, t)
		}
	}
	hasComments := sheetHasComments(sh)
	if len(targets) == 0 && !hasComments {
		return nil
	}
	return writePart(fw, sh.RelsPartPath(), func(w *Writer) {
		w.StartRoot("Relationships").WriteAttribute("xmlns", nsRelationships)
		i := 0
		for _, t := range targets {
			i++
			w.StartElement("Relationship").
				WriteAttribute("Id", fmt.Sprintf("rId%d", i)).
				WriteAttribute("Type", nsRelType+"/hyperlink").
				WriteAttribute("Target", t).
				WriteAttribute("TargetMode", "External").
				EndElement()
		}
		if hasComments {
			i++
			w.StartElement("Relationship").
				WriteAttribute("Id", fmt.Sprintf("rId%d", i)).
				WriteAttribute("Type", nsRelType+"/comments").
				WriteAttribute("Target", fmt.Sprintf("../comments%d.xml", sh.ID()+1)).
				EndElement()
		}
		w.EndElement()
	})
}
