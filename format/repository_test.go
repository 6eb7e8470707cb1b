package format

import "testing"

func TestRepositoryDefaultIsID0(t *testing.T) {
	r := NewRepository()
	id := r.Intern(Descriptor{})
	if id != 0 {
		t.Fatalf("Intern(Descriptor{}) = %d; want 0", id)
	}
}

func TestRepositoryInternIsIdempotent(t *testing.T) {
	r := NewRepository()
	d := New(Descriptor{Font: Font{Name: "Arial", Size: 12}})
	id1 := r.Intern(d)
	id2 := r.Intern(d)
	if id1 != id2 {
		t.Fatalf("Intern called twice with an equal descriptor returned %d then %d", id1, id2)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d; want 2 (default + one interned)", r.Len())
	}
}

func TestRepositoryInternDistinguishesDescriptors(t *testing.T) {
	r := NewRepository()
	id1 := r.Intern(New(Descriptor{Font: Font{Name: "Arial", Size: 12}}))
	id2 := r.Intern(New(Descriptor{Font: Font{Name: "Arial", Size: 14}}))
	if id1 == id2 {
		t.Fatalf("distinct descriptors interned to the same id %d", id1)
	}
}

func TestRepositoryGetRoundTrip(t *testing.T) {
	r := NewRepository()
	d := New(Descriptor{Font: Font{Name: "Arial", Size: 12}})
	id := r.Intern(d)
	got, ok := r.Get(id)
	if !ok || !got.Equal(d) {
		t.Fatalf("Get(%d) = %v, %v; want the interned descriptor", id, got, ok)
	}
	if _, ok := r.Get(999); ok {
		t.Fatalf("Get(999) ok = true for an id never assigned")
	}
}

func TestRepositoryDedupStats(t *testing.T) {
	r := NewRepository()
	d := New(Descriptor{Font: Font{Name: "Arial", Size: 12}})
	r.Intern(d)
	r.Intern(d)
	reqs, uniques := r.DedupStats()
	if reqs != 2 || uniques != 1 {
		t.Fatalf("DedupStats() = %d, %d; want 2, 1", reqs, uniques)
	}
}
