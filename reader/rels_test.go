package reader

import "testing"

func TestRelTypeSuffix(t *testing.T) {
	got := relTypeSuffix("http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet")
	if got != "worksheet" {
		t.Fatalf("relTypeSuffix = %q; want worksheet", got)
	}
}

func TestRelTypeSuffixNoSlash(t *testing.T) {
	if got := relTypeSuffix("worksheet"); got != "worksheet" {
		t.Fatalf("relTypeSuffix(no slash) = %q; want worksheet", got)
	}
}

func TestParseRels(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type=".../worksheet" Target="worksheets/sheet1.xml"/>
  <Relationship Id="rId2" Type=".../styles" Target="styles.xml"/>
</Relationships>`)
	m, err := parseRels(data)
	if err != nil {
		t.Fatalf("parseRels: %v", err)
	}
	if len(m) != 2 || m["rId1"].Target != "worksheets/sheet1.xml" {
		t.Fatalf("parseRels result wrong: %+v", m)
	}
}

func TestResolveTargetRelative(t *testing.T) {
	got := resolveTarget("xl/_rels/workbook.xml.rels", "worksheets/sheet1.xml")
	if got != "xl/worksheets/sheet1.xml" {
		t.Fatalf("resolveTarget = %q; want xl/worksheets/sheet1.xml", got)
	}
}

func TestResolveTargetAbsolute(t *testing.T) {
	got := resolveTarget("xl/_rels/workbook.xml.rels", "/xl/styles.xml")
	if got != "xl/styles.xml" {
		t.Fatalf("resolveTarget(absolute) = %q; want xl/styles.xml", got)
	}
}
