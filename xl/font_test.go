package xl

import "testing"

func TestDefaultMaxDigitWidthScalesLinearly(t *testing.T) {
	if got := DefaultMaxDigitWidth("Calibri", 11); got != 7.0 {
		t.Fatalf("DefaultMaxDigitWidth(Calibri, 11) = %v; want 7.0", got)
	}
	if got := DefaultMaxDigitWidth("Calibri", 22); got != 14.0 {
		t.Fatalf("DefaultMaxDigitWidth(Calibri, 22) = %v; want 14.0", got)
	}
}

func TestDefaultMaxDigitWidthNonPositiveSize(t *testing.T) {
	if got := DefaultMaxDigitWidth("Calibri", 0); got != 7.0 {
		t.Fatalf("DefaultMaxDigitWidth(Calibri, 0) = %v; want 7.0 fallback", got)
	}
}

func TestCharsToColumnWidthUsesDefaultWhenUnset(t *testing.T) {
	withDefault := CharsToColumnWidth(10, 0)
	explicit := CharsToColumnWidth(10, DefaultMaxDigitWidth("Calibri", 11))
	if withDefault != explicit {
		t.Fatalf("CharsToColumnWidth(10, 0) = %v; want %v (same as explicit default)", withDefault, explicit)
	}
}
