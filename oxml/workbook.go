package oxml

import (
	"fmt"

	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xl"
)

// WriteWorkbook emits xl/workbook.xml: the sheet list, the active-tab
// pointer, and the defined-name table.
func WriteWorkbook(fw filewriter.FileWriter, wb *xl.Workbook) error {
	return writePart(fw, "xl/workbook.xml", func(w *Writer) {
		w.StartRoot("workbook").
			WriteAttribute("xmlns", nsSpreadsheetML).
			WriteAttribute("xmlns:r", nsRelType)

		w.StartElement("bookViews")
		w.StartElement("workbookView")
		for i, sh := range wb.Sheets() {
			if sh.IsActive() {
				w.WriteAttribute("activeTab", i)
			}
		}
		w.EndElement()
		w.EndElement()

		w.StartElement("sheets")
		for i, sh := range wb.Sheets() {
			w.StartElement("sheet").
				WriteAttribute("name", sh.Name()).
				WriteAttribute("sheetId", i+1).
				WriteAttribute("r:id", fmt.Sprintf("rId%d", i+1)).
				EndElement()
		}
		w.EndElement()

		if len(wb.DefinedNames) > 0 {
			w.StartElement("definedNames")
			for _, dn := range wb.DefinedNames {
				w.StartElement("definedName").WriteAttribute("name", dn.Name)
				if dn.SheetID >= 0 {
					w.WriteAttribute("localSheetId", dn.SheetID)
				}
				if dn.Hidden {
					w.WriteAttribute("hidden", true)
				}
				w.WriteText(dn.RefersTo)
				w.EndElement()
			}
			w.EndElement()
		}

		w.EndElement()
	})
}

// WriteWorkbookRels emits xl/_rels/workbook.xml.rels: one relationship per
// sheet part, plus styles, shared strings (if present), and theme (if
// present). Relationship ids are assigned in a fixed order so that a
// no-op save re-emits byte-identical output.
func WriteWorkbookRels(fw filewriter.FileWriter, wb *xl.Workbook) error {
	return writePart(fw, "xl/_rels/workbook.xml.rels", func(w *Writer) {
		w.StartRoot("Relationships").WriteAttribute("xmlns", nsRelationships)
		n := len(wb.Sheets())
		for i, sh := range wb.Sheets() {
			_ = sh
			rel(w, fmt.Sprintf("rId%d", i+1), nsRelType+"/worksheet", fmt.Sprintf("worksheets/sheet%d.xml", i+1))
		}
		rel(w, fmt.Sprintf("rId%d", n+1), nsRelType+"/styles", "styles.xml")
		next := n + 2
		if wb.Strings.Len() > 0 && wb.Options().UseSharedStrings {
			rel(w, fmt.Sprintf("rId%d", next), nsRelType+"/sharedStrings", "sharedStrings.xml")
			next++
		}
		if wb.Theme != nil {
			rel(w, fmt.Sprintf("rId%d", next), nsRelType+"/theme", "theme/theme1.xml")
		}
		w.EndElement()
	})
}
