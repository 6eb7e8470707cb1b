package block

import "testing"

func TestCellNumber(t *testing.T) {
	var c Cell
	c.SetNumber(3.5)
	if v, ok := c.Number(); !ok || v != 3.5 {
		t.Fatalf("Number() = %v, %v; want 3.5, true", v, ok)
	}
	if c.Tag() != TagNumber {
		t.Fatalf("Tag() = %v; want TagNumber", c.Tag())
	}
	if _, ok := c.Bool(); ok {
		t.Fatalf("Bool() ok = true on a number cell")
	}
}

func TestCellInlineStringRoundTrip(t *testing.T) {
	var c Cell
	if !c.SetInlineString("short") {
		t.Fatalf("SetInlineString(\"short\") = false")
	}
	s, ok := c.InlineString()
	if !ok || s != "short" {
		t.Fatalf("InlineString() = %v, %v; want \"short\", true", s, ok)
	}
}

func TestCellInlineStringTooLongRejected(t *testing.T) {
	var c Cell
	long := "this string is definitely too long to fit inline"
	if c.SetInlineString(long) {
		t.Fatalf("SetInlineString(long) = true; want false")
	}
	if c.Tag() != TagEmpty {
		t.Fatalf("Tag() = %v after rejected SetInlineString; want TagEmpty", c.Tag())
	}
}

func TestCellLongString(t *testing.T) {
	var c Cell
	long := "this string is definitely too long to fit inline"
	c.SetLongString(long)
	s, ok := c.InlineString()
	if !ok || s != long {
		t.Fatalf("InlineString() = %v, %v; want %q, true", s, ok, long)
	}
	if c.Tag() != TagInlineString {
		t.Fatalf("Tag() = %v; want TagInlineString", c.Tag())
	}
}

func TestCellFormulaWithCachedResult(t *testing.T) {
	var c Cell
	cached := 42.0
	c.SetFormula("SUM(A1:A2)", &cached)
	expr, group, result, hasCached := c.Formula()
	if expr != "SUM(A1:A2)" || group != -1 || !hasCached || result != 42.0 {
		t.Fatalf("Formula() = %q, %d, %v, %v; want \"SUM(A1:A2)\", -1, 42, true", expr, group, result, hasCached)
	}
}

func TestCellSharedFormulaRef(t *testing.T) {
	var c Cell
	c.SetSharedFormulaRef(7, nil)
	expr, group, _, hasCached := c.Formula()
	if expr != "" || group != 7 || hasCached {
		t.Fatalf("Formula() = %q, %d, _, %v; want \"\", 7, false", expr, group, hasCached)
	}
}

func TestCellFormatSurvivesValueReset(t *testing.T) {
	var c Cell
	c.SetFormatID(9)
	c.SetNumber(1)
	c.SetNumber(2) // resetValue runs again on every SetNumber
	id, ok := c.FormatID()
	if !ok || id != 9 {
		t.Fatalf("FormatID() = %v, %v after value overwrite; want 9, true", id, ok)
	}
}

func TestCellHyperlinkAndComment(t *testing.T) {
	var c Cell
	c.SetHyperlink("https://example.com")
	target, ok := c.Hyperlink()
	if !ok || target != "https://example.com" {
		t.Fatalf("Hyperlink() = %v, %v", target, ok)
	}
	c.SetComment("alice", "note")
	author, text, ok := c.Comment()
	if !ok || author != "alice" || text != "note" {
		t.Fatalf("Comment() = %v, %v, %v", author, text, ok)
	}
}

func TestCellEmptyHyperlinkIgnored(t *testing.T) {
	var c Cell
	c.SetHyperlink("")
	if _, ok := c.Hyperlink(); ok {
		t.Fatalf("Hyperlink() ok = true after SetHyperlink(\"\")")
	}
}
