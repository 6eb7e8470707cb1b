package sstbl

import "testing"

func TestInternDeduplicatesAndIsStable(t *testing.T) {
	tbl := New()
	id1 := tbl.Intern("hello")
	id2 := tbl.Intern("world")
	id3 := tbl.Intern("hello")
	if id1 != id3 {
		t.Fatalf("Intern(\"hello\") returned %d then %d", id1, id3)
	}
	if id1 == id2 {
		t.Fatalf("distinct strings interned to the same id %d", id1)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", tbl.Len())
	}
}

func TestGetRoundTrip(t *testing.T) {
	tbl := New()
	id := tbl.Intern("hello")
	s, ok := tbl.Get(id)
	if !ok || s != "hello" {
		t.Fatalf("Get(%d) = %v, %v; want \"hello\", true", id, s, ok)
	}
	if _, ok := tbl.Get(999); ok {
		t.Fatalf("Get(999) ok = true for an id never assigned")
	}
}

func TestInternWithIDGrowsTableAndReindexes(t *testing.T) {
	tbl := New()
	tbl.InternWithID("gamma", 2)
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d; want 3 after InternWithID(\"gamma\", 2)", tbl.Len())
	}
	s, ok := tbl.Get(2)
	if !ok || s != "gamma" {
		t.Fatalf("Get(2) = %v, %v; want \"gamma\", true", s, ok)
	}
	// A subsequent Intern of the same text must resolve to the forced slot.
	if id := tbl.Intern("gamma"); id != 2 {
		t.Fatalf("Intern(\"gamma\") after InternWithID = %d; want 2", id)
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	tbl := New()
	tbl.Intern("a")
	tbl.Intern("b")
	tbl.Intern("c")
	all := tbl.All()
	if len(all) != 3 || all[0] != "a" || all[1] != "b" || all[2] != "c" {
		t.Fatalf("All() = %v; want [a b c]", all)
	}
}
