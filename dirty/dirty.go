// Package dirty implements the per-part dirty tracker: which logical OPC
// parts need regeneration on save, and the "always regenerate" policy for
// parts whose cross-references to the rest of the package could otherwise
// desynchronise.
package dirty

import "strings"

// AlwaysDirtyPrefixes must not be extended silently: these parts are cheap
// to regenerate and their cross-references to the rest of the package make
// a stale copy dangerous.
var AlwaysDirtyPrefixes = []string{
	"[Content_Types].xml",
	"_rels/.rels",
	"xl/styles.xml",
}

// Manager tracks dirty state per archive-internal part path.
type Manager struct {
	fresh    bool // true for a brand-new workbook: every part starts dirty
	dirty    map[string]bool
	sharedSS func() bool // returns true when the in-memory shared-string table has entries and sharing is enabled
}

// NewForCreate returns a manager for a brand-new workbook: every part is
// considered dirty, since none has ever been written.
func NewForCreate() *Manager {
	return &Manager{fresh: true, dirty: map[string]bool{}}
}

// NewForEdit returns a manager for a workbook opened for editing: every
// part defaults to clean and flips to dirty only on an explicit mutation.
func NewForEdit() *Manager {
	return &Manager{fresh: false, dirty: map[string]bool{}}
}

// SetSharedStringsProbe installs the callback used to force
// xl/sharedStrings.xml dirty whenever shared strings are enabled and the
// in-memory table is non-empty.
func (m *Manager) SetSharedStringsProbe(fn func() bool) {
	m.sharedSS = fn
}

// MarkDirty records that part needs regeneration.
func (m *Manager) MarkDirty(part string) {
	m.dirty[part] = true
}

// ShouldUpdate reports whether part needs to be (re)generated on this save.
func (m *Manager) ShouldUpdate(part string) bool {
	for _, p := range AlwaysDirtyPrefixes {
		if part == p || strings.HasPrefix(part, p) {
			return true
		}
	}
	if part == "xl/sharedStrings.xml" && m.sharedSS != nil && m.sharedSS() {
		return true
	}
	if m.fresh {
		return true
	}
	return m.dirty[part]
}

// Clean resets every explicit dirty flag (used after a successful save of a
// workbook that will continue to be edited in the same process).
func (m *Manager) Clean() {
	m.dirty = map[string]bool{}
	m.fresh = false
}
