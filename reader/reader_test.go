package reader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adnsv/fastxl/archive"
)

func writeTestPackage(t *testing.T, parts map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	aw := archive.NewWriter(&buf, archive.DefaultCompressionLevel)
	for name, content := range parts {
		if err := aw.WriteWholeEntry(name, []byte(content)); err != nil {
			t.Fatalf("WriteWholeEntry(%s): %v", name, err)
		}
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("aw.Close: %v", err)
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	return path
}

const minimalRootRels = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`

const minimalWorkbook = `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"
          xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets><sheet name="Sheet1" sheetId="1" r:id="rId1"/></sheets>
</workbook>`

func TestOpenForEditingRetainsUnrecognizedPartsForPassthrough(t *testing.T) {
	path := writeTestPackage(t, map[string]string{
		"_rels/.rels":         minimalRootRels,
		"xl/workbook.xml":     minimalWorkbook,
		"customXml/item1.xml": "<root/>",
		"xl/media/image1.png": "fake-png-bytes",
	})
	wb, err := OpenForEditing(path)
	if err != nil {
		t.Fatalf("OpenForEditing: %v", err)
	}
	parts := wb.PassthroughParts()
	if string(parts["customXml/item1.xml"]) != "<root/>" {
		t.Fatalf("customXml/item1.xml not retained: %v", parts)
	}
	if string(parts["xl/media/image1.png"]) != "fake-png-bytes" {
		t.Fatalf("xl/media/image1.png not retained: %v", parts)
	}
	if _, ok := parts["xl/workbook.xml"]; ok {
		t.Fatalf("xl/workbook.xml should not be captured as passthrough; it was specifically parsed")
	}
	if _, ok := parts["_rels/.rels"]; ok {
		t.Fatalf("_rels/.rels should not be captured as passthrough")
	}
}

func TestOpenForReadingDoesNotRetainPassthroughParts(t *testing.T) {
	path := writeTestPackage(t, map[string]string{
		"_rels/.rels":         minimalRootRels,
		"xl/workbook.xml":     minimalWorkbook,
		"customXml/item1.xml": "<root/>",
	})
	wb, err := OpenForReading(path)
	if err != nil {
		t.Fatalf("OpenForReading: %v", err)
	}
	if len(wb.PassthroughParts()) != 0 {
		t.Fatalf("read-only open should not bother retaining passthrough parts: %v", wb.PassthroughParts())
	}
}
