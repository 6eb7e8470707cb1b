package xl

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/adnsv/fastxl/dirty"
	"github.com/adnsv/fastxl/format"
	"github.com/adnsv/fastxl/sstbl"
)

// State is the Workbook lifecycle state: a Workbook is either being built
// from scratch, open for read-only access to an existing package, open for
// editing an existing package, or closed (no further operations
// permitted).
type State int

const (
	StateCreating State = iota
	StateReading
	StateEditing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreating:
		return "creating"
	case StateReading:
		return "reading"
	case StateEditing:
		return "editing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DocProperties holds the docProps/core.xml + docProps/app.xml fields:
// creator/title/subject/etc, plus a freeform set of custom properties
// (docProps/custom.xml).
type DocProperties struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       string
	Description    string
	Category       string
	Company        string
	Manager        string
	LastModifiedBy string

	Custom map[string]any
}

// DefinedName is a workbook- or sheet-scoped named range (xl/workbook.xml
// <definedNames>).
type DefinedName struct {
	Name      string
	RefersTo  string // e.g. "Sheet1!$A$1:$B$2"
	SheetID   int32  // -1 for workbook scope, otherwise the owning sheet's index
	Hidden    bool
}

// Theme carries the theme's minor/major Latin font names, as parsed from
// the font scheme, and the raw theme1.xml bytes, so an edited workbook can
// pass an unrecognised theme straight through.
type Theme struct {
	Raw []byte

	MinorFont string
	MajorFont string
}

// Workbook is the root handle for a spreadsheet package: it owns the
// sheets, the shared format and string tables, the dirty-part tracker, and
// the document-level metadata. A zero Workbook is not usable; construct one
// with Create, OpenForReading, or OpenForEditing.
type Workbook struct {
	state State

	sheets   []*Sheet
	sheetIdx map[string]int

	Properties   DocProperties
	DefinedNames []DefinedName
	Theme        *Theme

	Formats *format.Repository
	Strings *sstbl.Table

	dirty *dirty.Manager

	sourcePath string // non-empty when opened from an existing package
	opts       Options
	logger     Logger

	media map[string][]byte // content-hash id -> blob, for embedded pictures

	passthrough map[string][]byte // archive path -> raw bytes, for parts this library never parses
}

// Create starts a brand-new, in-memory workbook (no backing package on
// disk yet); Save requires an explicit destination path.
func Create(opts ...Option) (*Workbook, error) {
	o, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}
	wb := &Workbook{
		state:    StateCreating,
		sheetIdx: map[string]int{},
		Formats:  format.NewRepository(),
		Strings:  sstbl.New(),
		dirty:    dirty.NewForCreate(),
		opts:     o,
		logger:   noopLogger{},
		media:    map[string][]byte{},
	}
	return wb, nil
}

// SetLogger installs a diagnostic logger; passing nil restores the no-op
// default. Safe to call in any state.
func (wb *Workbook) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	wb.logger = l
}

// State reports the workbook's current lifecycle state.
func (wb *Workbook) State() State { return wb.state }

// Sheets returns the workbook's sheets in tab order. The returned slice
// must not be mutated; use AddSheet instead.
func (wb *Workbook) Sheets() []*Sheet { return wb.sheets }

// Sheet looks up a sheet by name.
func (wb *Workbook) Sheet(name string) (*Sheet, bool) {
	i, ok := wb.sheetIdx[name]
	if !ok {
		return nil, false
	}
	return wb.sheets[i], true
}

// AddSheet appends a new worksheet with the given name. Returns
// KindInvalidArgument if the name is invalid or already used, or
// KindInvalidState if the workbook is read-only or closed.
func (wb *Workbook) AddSheet(name string) (*Sheet, error) {
	if wb.state == StateReading || wb.state == StateClosed {
		return nil, newError(KindInvalidState, fmt.Sprintf("cannot add a sheet while workbook is %s", wb.state))
	}
	if _, exists := wb.sheetIdx[name]; exists {
		return nil, newError(KindInvalidArgument, fmt.Sprintf("duplicate sheet name %q", name))
	}
	if err := validateSheetName(name); err != nil {
		return nil, err
	}
	sh := newSheet(wb, name, int32(len(wb.sheets)))
	wb.sheetIdx[name] = len(wb.sheets)
	wb.sheets = append(wb.sheets, sh)
	wb.dirty.MarkDirty(sh.partPath())
	wb.dirty.MarkDirty("xl/workbook.xml")
	return sh, nil
}

// validateSheetName enforces Excel's sheet-name rules.
func validateSheetName(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return newError(KindInvalidArgument, "empty sheet name is not allowed")
	} else if n > 31 {
		return newError(KindInvalidArgument, "sheet name exceeds 31 characters")
	}
	if strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'") {
		return newError(KindInvalidArgument, "sheet name cannot start or end with a single quote")
	}
	if strings.ContainsAny(s, ":\\/?*[]") {
		return newError(KindInvalidArgument, `sheet name cannot contain any of : \ / ? * [ ]`)
	}
	return nil
}

// AddMedia interns a picture blob under a content-derived id (so embedding
// the same image twice reuses one part) and returns that id.
func (wb *Workbook) AddMedia(blob []byte) string {
	id := BlobHash(blob).String()
	if _, ok := wb.media[id]; !ok {
		wb.media[id] = blob
		wb.dirty.MarkDirty("xl/media/" + id)
	}
	return id
}

// Close releases the workbook. After Close, all further operations return
// KindInvalidState. Close is idempotent.
func (wb *Workbook) Close() error {
	wb.state = StateClosed
	return nil
}

// MediaIDs returns the content-hash ids of every embedded picture, in
// insertion order is not guaranteed; callers needing deterministic output
// sort the result.
func (wb *Workbook) MediaIDs() []string {
	ids := make([]string, 0, len(wb.media))
	for id := range wb.media {
		ids = append(ids, id)
	}
	return ids
}

// MediaBlob returns the blob stored under id.
func (wb *Workbook) MediaBlob(id string) ([]byte, bool) {
	b, ok := wb.media[id]
	return b, ok
}

// Options returns the workbook's effective configuration.
func (wb *Workbook) Options() Options { return wb.opts }

// Logger returns the workbook's diagnostic logger (never nil).
func (wb *Workbook) Logger() Logger { return wb.logger }

// Dirty returns the workbook's per-part dirty tracker, for the
// orchestrator's save phases.
func (wb *Workbook) Dirty() *dirty.Manager { return wb.dirty }

// SourcePath returns the backing package path for a workbook opened with
// OpenForReading or OpenForEditing; empty for a workbook created with
// Create that has never been saved.
func (wb *Workbook) SourcePath() string { return wb.sourcePath }

// PassthroughParts returns the raw bytes of every package part the reader
// found but never parsed: embedded media referenced only by a drawing,
// drawings and charts themselves, custom XML parts, calcChain, a VBA
// project, pivot caches, tables, and anything else written by a producer
// other than this library. Save's orchestrator copies these straight
// through to the output package unchanged.
func (wb *Workbook) PassthroughParts() map[string][]byte { return wb.passthrough }
