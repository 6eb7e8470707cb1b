package columnar

import (
	"reflect"
	"testing"
)

func TestStorePutAndGet(t *testing.T) {
	s := NewStore()
	s.PutNumber(0, 0, 42)
	s.PutSharedString(1, 0, 7)
	s.PutBool(2, 0, true)
	s.PutString(3, 0, "#N/A")

	if v, ok := s.Number(0, 0); !ok || v != 42 {
		t.Errorf("Number(0,0) = %v, %v; want 42, true", v, ok)
	}
	if v, ok := s.SharedString(1, 0); !ok || v != 7 {
		t.Errorf("SharedString(1,0) = %v, %v; want 7, true", v, ok)
	}
	if v, ok := s.Bool(2, 0); !ok || !v {
		t.Errorf("Bool(2,0) = %v, %v; want true, true", v, ok)
	}
	if v, ok := s.String(3, 0); !ok || v != "#N/A" {
		t.Errorf("String(3,0) = %q, %v; want #N/A, true", v, ok)
	}
	if _, ok := s.Number(5, 0); ok {
		t.Errorf("Number(5,0) reported present for an unset cell")
	}
}

func TestStoreColumnsAndRowsSorted(t *testing.T) {
	s := NewStore()
	s.PutNumber(5, 3, 1)
	s.PutNumber(1, 3, 2)
	s.PutString(9, 3, "x")
	s.PutNumber(0, 1, 3)

	if got, want := s.Columns(), []uint32{1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if got, want := s.Rows(3), []uint32{1, 5, 9}; !reflect.DeepEqual(got, want) {
		t.Errorf("Rows(3) = %v, want %v", got, want)
	}
	if got := s.Rows(99); got != nil {
		t.Errorf("Rows(99) = %v, want nil for an absent column", got)
	}
}
