package oxml

import (
	"strings"
	"testing"

	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xl"
)

func TestWriteCorePropertiesFields(t *testing.T) {
	wb, _ := xl.Create()
	wb.Properties.Creator = "alice"
	wb.Properties.Title = "Quarterly Report"
	out := extractPart(t, "docProps/core.xml", func(fw filewriter.FileWriter) error {
		return WriteCoreProperties(fw, wb, "2026-01-01T00:00:00Z")
	})
	if !strings.Contains(out, "alice") || !strings.Contains(out, "Quarterly Report") {
		t.Fatalf("core.xml missing creator/title: %s", out)
	}
	if !strings.Contains(out, `xsi:type="dcterms:W3CDTF"`) {
		t.Fatalf("core.xml missing W3CDTF modified timestamp: %s", out)
	}
}

func TestWriteCorePropertiesOmitsEmptyModified(t *testing.T) {
	wb, _ := xl.Create()
	out := extractPart(t, "docProps/core.xml", func(fw filewriter.FileWriter) error {
		return WriteCoreProperties(fw, wb, "")
	})
	if strings.Contains(out, "dcterms:modified") {
		t.Fatalf("core.xml emitted dcterms:modified with an empty timestamp: %s", out)
	}
}

func TestWriteAppPropertiesListsSheetTitles(t *testing.T) {
	wb, _ := xl.Create()
	wb.AddSheet("Sheet1")
	wb.AddSheet("Data")
	out := extractPart(t, "docProps/app.xml", func(fw filewriter.FileWriter) error {
		return WriteAppProperties(fw, wb)
	})
	if !strings.Contains(out, "Sheet1") || !strings.Contains(out, "Data") {
		t.Fatalf("app.xml missing sheet titles: %s", out)
	}
	if !strings.Contains(out, `size="2"`) {
		t.Fatalf("app.xml TitlesOfParts vector size wrong: %s", out)
	}
}

func TestWriteCustomPropertiesVariantTypes(t *testing.T) {
	wb, _ := xl.Create()
	wb.Properties.Custom = map[string]any{
		"IsDraft": false,
		"Count":   42,
	}
	out := extractPart(t, "docProps/custom.xml", func(fw filewriter.FileWriter) error {
		return WriteCustomProperties(fw, wb)
	})
	if !strings.Contains(out, "IsDraft") || !strings.Contains(out, "vt:bool") {
		t.Fatalf("custom.xml missing bool variant: %s", out)
	}
	if !strings.Contains(out, "vt:i4") {
		t.Fatalf("custom.xml missing int variant: %s", out)
	}
}
