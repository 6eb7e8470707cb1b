package oxml

import (
	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xl"
)

// WriteSharedStrings emits xl/sharedStrings.xml in table order, so cell
// references resolve correctly. Called only when shared strings are
// enabled and the table is non-empty.
func WriteSharedStrings(fw filewriter.FileWriter, wb *xl.Workbook) error {
	all := wb.Strings.All()
	return writePart(fw, "xl/sharedStrings.xml", func(w *Writer) {
		w.StartRoot("sst").
			WriteAttribute("xmlns", nsSpreadsheetML).
			WriteAttribute("count", len(all)).
			WriteAttribute("uniqueCount", len(all))
		for _, s := range all {
			w.StartElement("si")
			w.StartElement("t").WriteAttribute("xml:space", "preserve").WriteText(s).EndElement()
			w.EndElement()
		}
		w.EndElement()
	})
}

// WriteTheme passes a workbook's theme bytes straight through to
// xl/theme/theme1.xml, unparsed; the format package only reads the theme's
// font names for width estimation and never needs to re-derive the XML.
func WriteTheme(fw filewriter.FileWriter, wb *xl.Workbook) error {
	if wb.Theme == nil || len(wb.Theme.Raw) == 0 {
		return nil
	}
	return fw.WriteWholeFile("xl/theme/theme1.xml", wb.Theme.Raw)
}
