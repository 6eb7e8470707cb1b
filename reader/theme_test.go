package reader

import "testing"

func TestParseThemeExtractsFontNames(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <a:themeElements>
    <a:fontScheme>
      <a:majorFont><a:latin typeface="Calibri Light"/></a:majorFont>
      <a:minorFont><a:latin typeface="Calibri"/></a:minorFont>
    </a:fontScheme>
  </a:themeElements>
</a:theme>`)
	theme := parseTheme(data)
	if theme.MajorFont != "Calibri Light" {
		t.Fatalf("MajorFont = %q; want Calibri Light", theme.MajorFont)
	}
	if theme.MinorFont != "Calibri" {
		t.Fatalf("MinorFont = %q; want Calibri", theme.MinorFont)
	}
	if string(theme.Raw) != string(data) {
		t.Fatalf("Raw bytes not preserved verbatim")
	}
}

func TestParseThemeTolerantOfMalformedInput(t *testing.T) {
	theme := parseTheme([]byte("not xml at all"))
	if theme == nil {
		t.Fatalf("parseTheme returned nil for malformed input; want a zero-value Theme")
	}
	if theme.MajorFont != "" || theme.MinorFont != "" {
		t.Fatalf("expected empty font names for malformed theme, got %+v", theme)
	}
}
