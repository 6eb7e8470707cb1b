package format

import "sync"

// Repository is the bidirectional interning structure: a dense array of
// descriptors indexed by id, plus a hash-bucketed index for the reverse
// lookup. Intern is safe for concurrent use, guarded by a plain mutex.
type Repository struct {
	mu      sync.Mutex
	dense   []Descriptor
	byHash  map[uint64][]uint32 // hash -> candidate ids (collision chain)
	reqs    uint64
	uniques uint64
}

// NewRepository returns a repository pre-seeded with the default descriptor
// at id 0, so the default descriptor always resolves to id 0.
func NewRepository() *Repository {
	r := &Repository{byHash: map[uint64][]uint32{}}
	r.dense = append(r.dense, Default)
	r.byHash[Default.hash] = []uint32{0}
	return r
}

// Intern returns the dense id for d, inserting it if this is the first
// request for a structurally equal descriptor. Intern is idempotent:
// interning the same value twice returns the same id both times.
func (r *Repository) Intern(d Descriptor) uint32 {
	if d.hash == 0 {
		d = New(d)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reqs++
	for _, id := range r.byHash[d.hash] {
		if r.dense[id].Equal(d) {
			return id
		}
	}
	id := uint32(len(r.dense))
	r.dense = append(r.dense, d)
	r.byHash[d.hash] = append(r.byHash[d.hash], id)
	r.uniques++
	return id
}

// Get returns the descriptor for id.
func (r *Repository) Get(id uint32) (Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(id) >= len(r.dense) {
		return Descriptor{}, false
	}
	return r.dense[id], true
}

// Len returns the number of interned descriptors, including the default.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dense)
}

// All returns every interned descriptor in insertion order (id order).
func (r *Repository) All() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Descriptor, len(r.dense))
	copy(out, r.dense)
	return out
}

// DedupStats reports the total number of Intern calls and the number that
// resulted in a brand-new id, for diagnostics.
func (r *Repository) DedupStats() (requests, unique uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reqs, r.uniques
}
