package format

// SubTables holds the four sub-value dense tables (fonts, fills, borders,
// number formats) reconstructed from a Repository in a single pass, plus
// the per-descriptor cross-reference (cellXf) data needed to emit
// xl/styles.xml. Building this canonicalises each descriptor's
// font/fill/border/numFmt sub-values separately, interning each sub-value
// into its own dense sub-id table.
type SubTables struct {
	Fonts   []Font
	Fills   []Fill
	Borders []Border

	// CustomNumFmts lists the custom format strings in id order: entry i
	// carries id firstCustomNumFmtID (164) + i, 164 being the first index
	// the format allows producers to claim.
	CustomNumFmts   []string
	customNumFmtIDs map[string]int

	// Xfs holds one entry per interned Descriptor, in repository id order
	// (Xfs[0] always corresponds to the default descriptor).
	Xfs []XfEntry

	fontIdx   map[Font]int
	fillIdx   map[Fill]int
	borderIdx map[Border]int
}

// XfEntry is one cellXf row: the four sub-ids it cites, the number-format
// id actually written (builtin or custom), and whether any sub-component
// differs from the default (driving the applyX attributes).
type XfEntry struct {
	FontID      int
	FillID      int
	BorderID    int
	NumFmtID    int
	Alignment   Alignment
	Protection  Protection
	ApplyFont   bool
	ApplyFill   bool
	ApplyBorder bool
	ApplyNumFmt bool
	ApplyAlign  bool
	ApplyProt   bool
}

// firstCustomNumFmtID is the first index producers are allowed to claim for
// a custom number format, per ECMA-376.
const firstCustomNumFmtID = 164

// BuildSubTables performs the single deduplicating pass over repo.
func BuildSubTables(repo *Repository) *SubTables {
	st := &SubTables{
		customNumFmtIDs: map[string]int{},
		fontIdx:         map[Font]int{},
		fillIdx:         map[Fill]int{},
		borderIdx:       map[Border]int{},
	}

	// Default sub-values always occupy index 0 of their respective tables.
	// Fills also reserves index 1 for gray125: every producer in practice
	// emits this second fill whether or not any cell actually references it,
	// so a round-tripped package's fillId values keep lining up with what a
	// spreadsheet application itself would write.
	st.Fonts = append(st.Fonts, Font{Name: "Calibri", Size: 11, Family: 2})
	st.fontIdx[st.Fonts[0]] = 0
	st.Fills = append(st.Fills, Fill{Pattern: "none"}, Fill{Pattern: "gray125"})
	st.fillIdx[st.Fills[0]] = 0
	st.fillIdx[st.Fills[1]] = 1
	st.Borders = append(st.Borders, Border{})
	st.borderIdx[st.Borders[0]] = 0

	for _, d := range repo.All() {
		st.Xfs = append(st.Xfs, st.internDescriptor(d))
	}
	return st
}

func (st *SubTables) internDescriptor(d Descriptor) XfEntry {
	e := XfEntry{
		Alignment:  d.Alignment,
		Protection: d.Protection,
	}

	if d.Font.IsDefault() {
		e.FontID = 0
	} else {
		e.FontID = st.internFont(d.Font)
		e.ApplyFont = true
	}

	if d.Fill.IsDefault() {
		e.FillID = 0
	} else {
		e.FillID = st.internFill(d.Fill)
		e.ApplyFill = true
	}

	if d.Border.IsDefault() {
		e.BorderID = 0
	} else {
		e.BorderID = st.internBorder(d.Border)
		e.ApplyBorder = true
	}

	e.NumFmtID = st.internNumFmt(d.NumberFormat)
	e.ApplyNumFmt = !d.NumberFormat.IsDefault()
	e.ApplyAlign = !d.Alignment.IsDefault()
	e.ApplyProt = !d.Protection.IsDefault()

	return e
}

func (st *SubTables) internFont(f Font) int {
	if i, ok := st.fontIdx[f]; ok {
		return i
	}
	i := len(st.Fonts)
	st.Fonts = append(st.Fonts, f)
	st.fontIdx[f] = i
	return i
}

func (st *SubTables) internFill(f Fill) int {
	if i, ok := st.fillIdx[f]; ok {
		return i
	}
	i := len(st.Fills)
	st.Fills = append(st.Fills, f)
	st.fillIdx[f] = i
	return i
}

func (st *SubTables) internBorder(b Border) int {
	if i, ok := st.borderIdx[b]; ok {
		return i
	}
	i := len(st.Borders)
	st.Borders = append(st.Borders, b)
	st.borderIdx[b] = i
	return i
}

func (st *SubTables) internNumFmt(nf NumberFormat) int {
	if nf.Custom == "" {
		return nf.BuiltinID
	}
	if id, ok := CanonicalBuiltinID(nf); ok {
		return id
	}
	if id, ok := st.customNumFmtIDs[nf.Custom]; ok {
		return id
	}
	id := firstCustomNumFmtID + len(st.CustomNumFmts)
	st.CustomNumFmts = append(st.CustomNumFmts, nf.Custom)
	st.customNumFmtIDs[nf.Custom] = id
	return id
}
