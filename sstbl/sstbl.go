// Package sstbl implements the shared-string table: an ordered,
// deduplicated list of text values with dense ids, built as its own
// reusable, concurrency-safe type so both the write path (Intern) and the
// package reader (InternWithID, reconstructing a pre-existing
// sharedStrings.xml) can share it.
package sstbl

import "sync"

// Table is an append-only, id-stable shared-string table.
type Table struct {
	mu      sync.Mutex
	strings []string
	index   map[string]uint32
}

// New returns an empty shared-string table.
func New() *Table {
	return &Table{index: map[string]uint32{}}
}

// Intern returns the dense id for s, appending it on first use. The id
// returned for s on the first call equals the id returned on every
// subsequent call.
func (t *Table) Intern(s string) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.index[s]; ok {
		return id
	}
	id := uint32(len(t.strings))
	t.strings = append(t.strings, s)
	t.index[s] = id
	return id
}

// InternWithID forces s into slot id, growing the table as needed. It is
// used only when reconstructing a pre-existing table from a source
// package's sharedStrings.xml, so that sheet payloads loaded in edit mode
// keep referring to the correct slots even for cells the caller never
// re-touches.
func (t *Table) InternWithID(s string, id uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for uint32(len(t.strings)) <= id {
		t.strings = append(t.strings, "")
	}
	t.strings[id] = s
	t.index[s] = id
}

// Get returns the string at id.
func (t *Table) Get(id uint32) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(id) >= len(t.strings) {
		return "", false
	}
	return t.strings[id], true
}

// Len returns the number of id slots in the table (highest id + 1),
// counting any empty slots InternWithID left below a higher id.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.strings)
}

// All returns every string in insertion (id) order.
func (t *Table) All() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.strings))
	copy(out, t.strings)
	return out
}
