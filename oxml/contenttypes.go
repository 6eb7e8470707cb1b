package oxml

import (
	"fmt"

	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xl"
)

// WriteContentTypes emits [Content_Types].xml, the MIME-type map every part
// of the package must be registered in, covering the optional parts
// (shared strings, theme, custom properties, media, sheet rels) alongside
// the always-present ones.
func WriteContentTypes(fw filewriter.FileWriter, wb *xl.Workbook) error {
	return writePart(fw, "[Content_Types].xml", func(w *Writer) {
		w.StartRoot("Types").WriteAttribute("xmlns", nsContentTypes)

		def := func(ext, contentType string) {
			w.StartElement("Default").
				WriteAttribute("Extension", ext).
				WriteAttribute("ContentType", contentType).
				EndElement()
		}
		override := func(partName, contentType string) {
			w.StartElement("Override").
				WriteAttribute("PartName", partName).
				WriteAttribute("ContentType", contentType).
				EndElement()
		}

		def("rels", "application/vnd.openxmlformats-package.relationships+xml")
		def("xml", "application/xml")
		if len(wb.MediaIDs()) > 0 {
			def("png", "image/png")
			def("jpeg", "image/jpeg")
			def("gif", "image/gif")
		}

		override("/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml")
		override("/docProps/app.xml", "application/vnd.openxmlformats-officedocument.extended-properties+xml")
		if len(wb.Properties.Custom) > 0 {
			override("/docProps/custom.xml", "application/vnd.openxmlformats-officedocument.custom-properties+xml")
		}
		override("/xl/workbook.xml", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml")
		override("/xl/styles.xml", "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml")
		if wb.Strings.Len() > 0 && wb.Options().UseSharedStrings {
			override("/xl/sharedStrings.xml", "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml")
		}
		if wb.Theme != nil {
			override("/xl/theme/theme1.xml", "application/vnd.openxmlformats-officedocument.theme+xml")
		}
		for i, sh := range wb.Sheets() {
			override(fmt.Sprintf("/xl/worksheets/sheet%d.xml", i+1),
				"application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml")
			if sheetHasComments(sh) {
				override(fmt.Sprintf("/xl/comments%d.xml", i+1),
					"application/vnd.openxmlformats-officedocument.spreadsheetml.comments+xml")
			}
		}

		w.EndElement()
	})
}

// WriteRootRels emits _rels/.rels, the package-root relationship to the
// main workbook part.
func WriteRootRels(fw filewriter.FileWriter) error {
	return writePart(fw, "_rels/.rels", func(w *Writer) {
		w.StartRoot("Relationships").WriteAttribute("xmlns", nsRelationships)
		rel(w, "rId1", nsRelType+"/officeDocument", "xl/workbook.xml")
		rel(w, "rId2", nsRelType+"/metadata/core-properties", "docProps/core.xml")
		rel(w, "rId3", nsRelType+"/extended-properties", "docProps/app.xml")
		w.EndElement()
	})
}

func sheetHasComments(sh *xl.Sheet) bool {
	for _, e := range sh.Cells() {
		if _, text, ok := e.Cell.Comment(); ok && text != "" {
			return true
		}
	}
	return false
}

// rel writes one <Relationship> element.
func rel(w *Writer, id, relType, target string) {
	w.StartElement("Relationship").
		WriteAttribute("Id", id).
		WriteAttribute("Type", relType).
		WriteAttribute("Target", target).
		EndElement()
}
