package reader

import "testing"

func TestParseSharedStringsPlainText(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2">
  <si><t>alpha</t></si>
  <si><t>beta</t></si>
</sst>`)
	tbl, err := parseSharedStrings(data)
	if err != nil {
		t.Fatalf("parseSharedStrings: %v", err)
	}
	if s, ok := tbl.Get(0); !ok || s != "alpha" {
		t.Fatalf("tbl.Get(0) = %q, %v; want alpha, true", s, ok)
	}
	if s, ok := tbl.Get(1); !ok || s != "beta" {
		t.Fatalf("tbl.Get(1) = %q, %v; want beta, true", s, ok)
	}
}

func TestParseSharedStringsRichTextRunsConcatenate(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="1" uniqueCount="1">
  <si><r><t>hello </t></r><r><t>world</t></r></si>
</sst>`)
	tbl, err := parseSharedStrings(data)
	if err != nil {
		t.Fatalf("parseSharedStrings: %v", err)
	}
	if s, ok := tbl.Get(0); !ok || s != "hello world" {
		t.Fatalf("tbl.Get(0) = %q, %v; want \"hello world\", true", s, ok)
	}
}
