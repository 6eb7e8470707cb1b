package format

import "testing"

func TestDescriptorEqualIgnoresHash(t *testing.T) {
	a := New(Descriptor{Font: Font{Name: "Arial", Size: 12}})
	b := New(Descriptor{Font: Font{Name: "Arial", Size: 12}})
	if !a.Equal(b) {
		t.Fatalf("Equal() = false for structurally identical descriptors")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("Hash() differs for structurally identical descriptors")
	}
}

func TestDescriptorIsDefault(t *testing.T) {
	if !New(Descriptor{}).IsDefault() {
		t.Fatalf("zero Descriptor.IsDefault() = false")
	}
	d := New(Descriptor{Font: Font{Name: "Arial", Size: 12, Bold: true}})
	if d.IsDefault() {
		t.Fatalf("bold Arial 12 Descriptor.IsDefault() = true")
	}
}

func TestFontIsDefault(t *testing.T) {
	if !(Font{Name: "Calibri", Size: 11, Family: 2}).IsDefault() {
		t.Fatalf("Calibri 11 Font.IsDefault() = false")
	}
	if !(Font{}).IsDefault() {
		t.Fatalf("zero Font.IsDefault() = false")
	}
	if (Font{Name: "Arial", Size: 10}).IsDefault() {
		t.Fatalf("Arial 10 Font.IsDefault() = true")
	}
}

func TestNumberFormatIsDefault(t *testing.T) {
	if !(NumberFormat{}).IsDefault() {
		t.Fatalf("zero NumberFormat.IsDefault() = false")
	}
	if (NumberFormat{Custom: "0.00"}).IsDefault() {
		t.Fatalf("custom NumberFormat.IsDefault() = true")
	}
}
