package oxml

import (
	"sort"

	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xl"
)

// WriteCoreProperties emits docProps/core.xml (Dublin Core metadata).
func WriteCoreProperties(fw filewriter.FileWriter, wb *xl.Workbook, modified string) error {
	p := wb.Properties
	return writePart(fw, "docProps/core.xml", func(w *Writer) {
		w.StartRoot("cp:coreProperties").
			WriteAttribute("xmlns:cp", nsCore).
			WriteAttribute("xmlns:dc", nsDC).
			WriteAttribute("xmlns:dcterms", nsDCTerms).
			WriteAttribute("xmlns:dcmitype", nsDCMIType).
			WriteAttribute("xmlns:xsi", nsXSI)

		textEl(w, "dc:creator", p.Creator)
		textEl(w, "cp:lastModifiedBy", p.LastModifiedBy)
		if modified != "" {
			w.StartElement("dcterms:modified").
				WriteAttribute("xsi:type", "dcterms:W3CDTF").
				WriteText(modified).
				EndElement()
		}
		textEl(w, "dc:title", p.Title)
		textEl(w, "dc:subject", p.Subject)
		textEl(w, "dc:description", p.Description)
		textEl(w, "cp:keywords", p.Keywords)
		textEl(w, "cp:category", p.Category)

		w.EndElement()
	})
}

// WriteAppProperties emits docProps/app.xml (application metadata plus the
// sheet-titles vector every consumer expects to find the tab names in).
func WriteAppProperties(fw filewriter.FileWriter, wb *xl.Workbook) error {
	p := wb.Properties
	sheets := wb.Sheets()
	return writePart(fw, "docProps/app.xml", func(w *Writer) {
		w.StartRoot("Properties").
			WriteAttribute("xmlns", nsExtended).
			WriteAttribute("xmlns:vt", nsVT)

		textEl(w, "Application", "fastxl")
		textEl(w, "Company", p.Company)
		textEl(w, "Manager", p.Manager)

		w.StartElement("HeadingPairs")
		w.StartElement("vt:vector").WriteAttribute("size", 2).WriteAttribute("baseType", "variant")
		w.StartElement("vt:variant")
		textEl(w, "vt:lpstr", "Worksheets")
		w.EndElement()
		w.StartElement("vt:variant")
		w.StartElement("vt:i4").WriteText(itoa(len(sheets))).EndElement()
		w.EndElement()
		w.EndElement()
		w.EndElement()

		w.StartElement("TitlesOfParts")
		w.StartElement("vt:vector").WriteAttribute("size", len(sheets)).WriteAttribute("baseType", "lpstr")
		for _, sh := range sheets {
			textEl(w, "vt:lpstr", sh.Name())
		}
		w.EndElement()
		w.EndElement()

		w.EndElement()
	})
}

// WriteCustomProperties emits docProps/custom.xml for the workbook's
// freeform name/value custom document properties. It is only called when
// len(wb.Properties.Custom) > 0.
func WriteCustomProperties(fw filewriter.FileWriter, wb *xl.Workbook) error {
	return writePart(fw, "docProps/custom.xml", func(w *Writer) {
		w.StartRoot("Properties").
			WriteAttribute("xmlns", nsCustom).
			WriteAttribute("xmlns:vt", nsVT)

		names := make([]string, 0, len(wb.Properties.Custom))
		for name := range wb.Properties.Custom {
			names = append(names, name)
		}
		sort.Strings(names)

		pid := 1 // 0 and 1 are reserved by the schema; the first property gets 2
		for _, name := range names {
			v := wb.Properties.Custom[name]
			pid++
			w.StartElement("property").
				WriteAttribute("fmtid", "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}").
				WriteAttribute("pid", pid).
				WriteAttribute("name", name)
			writeVariant(w, v)
			w.EndElement()
		}
		w.EndElement()
	})
}

func writeVariant(w *Writer, v any) {
	switch val := v.(type) {
	case bool:
		tag := "false"
		if val {
			tag = "true"
		}
		w.StartElement("vt:bool").WriteText(tag).EndElement()
	case int, int32, int64:
		w.StartElement("vt:i4").WriteText(sprintAny(val)).EndElement()
	case float32, float64:
		w.StartElement("vt:r8").WriteText(sprintAny(val)).EndElement()
	default:
		w.StartElement("vt:lpwstr").WriteText(sprintAny(val)).EndElement()
	}
}

func textEl(w *Writer, name, text string) {
	if text == "" {
		return
	}
	w.StartElement(name).WriteText(text).EndElement()
}
