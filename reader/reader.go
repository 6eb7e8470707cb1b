// Package reader reconstructs an *xl.Workbook from an existing .xlsx
// package: an OPC/zip container is walked part by part, each part is
// unmarshaled tolerantly (a malformed or producer-specific extension is
// skipped rather than aborting the whole open), and the result is fed into
// xl's unchecked Raw builders so the rebuilt workbook is indistinguishable
// from one built fresh via xl.Create.
package reader

import (
	"fmt"
	"os"
	"path"

	"github.com/adnsv/fastxl/archive"
	"github.com/adnsv/fastxl/columnar"
	"github.com/adnsv/fastxl/sstbl"
	"github.com/adnsv/fastxl/xl"
)

const relTypePrefix = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// OpenForReading opens path as a read-only workbook: mutating methods on
// the returned *xl.Workbook report KindInvalidState.
func OpenForReading(path string, opts ...xl.Option) (*xl.Workbook, error) {
	return open(path, false, opts)
}

// OpenForEditing opens path as a workbook that can be mutated and later
// saved back, via resource.Save or orchestrator.Save directly.
func OpenForEditing(path string, opts ...xl.Option) (*xl.Workbook, error) {
	return open(path, true, opts)
}

func open(filePath string, editable bool, optFuncs []xl.Option) (*xl.Workbook, error) {
	o, err := xl.NewOptions(optFuncs...)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("reader: open %s: %w", filePath, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reader: stat %s: %w", filePath, err)
	}

	src, err := archive.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("reader: open package %s: %w", filePath, err)
	}

	wb := xl.NewFromSource(filePath, editable, o)
	logger := wb.Logger()

	// known collects every archive path this loader resolves and hands to a
	// specific parser, so whatever is left in src when parsing is done
	// belongs to some other producer (embedded media, drawings, charts,
	// custom XML, calcChain, a VBA project, pivot caches, tables, ...) and
	// must be retained rather than silently dropped on the next save.
	known := map[string]bool{"[Content_Types].xml": true, "_rels/.rels": true}

	workbookPart, rootRels := resolveRootParts(src)
	known[workbookPart] = true
	loadDocProperties(src, wb, rootRels, known)

	workbookData, err := src.Extract(workbookPart)
	if err != nil {
		return nil, fmt.Errorf("reader: missing required part %s: %w", workbookPart, err)
	}
	listings, err := parseWorkbook(workbookData, wb)
	if err != nil {
		return nil, fmt.Errorf("reader: parse %s: %w", workbookPart, err)
	}

	workbookRelsPath := relsPathFor(workbookPart)
	known[workbookRelsPath] = true
	workbookRels, _ := extractRels(src, workbookRelsPath)

	styles := loadStyles(src, workbookRelsPath, workbookRels, logger, known)
	strings := loadSharedStrings(src, workbookRelsPath, workbookRels, logger, known)
	wb.Theme = loadTheme(src, workbookRelsPath, workbookRels, known)
	if tbl, ok := strings.tbl.(*sstbl.Table); ok {
		wb.Strings = tbl
	}
	if styles.repo != nil {
		wb.Formats = styles.repo
	}

	sheets := wb.Sheets()
	for i, listing := range listings {
		if i >= len(sheets) {
			break
		}
		sh := sheets[i]
		rel, ok := workbookRels[listing.rID]
		if !ok {
			logger.Warnf("reader: sheet %q has no resolvable relationship id %q, leaving it empty", listing.name, listing.rID)
			continue
		}
		sheetPart := resolveTarget(workbookRelsPath, rel.Target)
		loadSheet(src, sh, sheetPart, styles, strings, !editable, logger, known)
	}

	if editable {
		capturePassthroughParts(src, wb, known, logger)
	}

	wb.Dirty().Clean()
	return wb, nil
}

// capturePassthroughParts retains the raw bytes of every archive entry this
// loader did not specifically resolve above, so the orchestrator's save
// sequence can copy them through unchanged on the next save instead of
// dropping them. Only worth doing for a workbook opened for editing, since
// a read-only workbook never saves.
func capturePassthroughParts(src *archive.Reader, wb *xl.Workbook, known map[string]bool, logger xl.Logger) {
	for _, name := range src.List() {
		if known[name] {
			continue
		}
		data, err := src.Extract(name)
		if err != nil {
			logger.Warnf("reader: could not retain unrecognized part %s: %v", name, err)
			continue
		}
		wb.SetPassthroughPart(name, data)
	}
}

// resolveRootParts locates xl/workbook.xml, tolerating a missing or
// malformed _rels/.rels by falling back to the conventional path every
// producer in practice uses.
func resolveRootParts(src *archive.Reader) (workbookPart string, rootRels map[string]relEl) {
	workbookPart = "xl/workbook.xml"
	rootRels = map[string]relEl{}
	data, err := src.Extract("_rels/.rels")
	if err != nil {
		return workbookPart, rootRels
	}
	rels, err := parseRels(data)
	if err != nil {
		return workbookPart, rootRels
	}
	rootRels = rels
	for _, r := range rels {
		if relTypeSuffix(r.Type) == "officeDocument" {
			workbookPart = resolveTarget("_rels/.rels", r.Target)
		}
	}
	return workbookPart, rootRels
}

func loadDocProperties(src *archive.Reader, wb *xl.Workbook, rootRels map[string]relEl, known map[string]bool) {
	corePath, appPath := "docProps/core.xml", "docProps/app.xml"
	for _, r := range rootRels {
		switch relTypeSuffix(r.Type) {
		case "core-properties":
			corePath = resolveTarget("_rels/.rels", r.Target)
		case "extended-properties":
			appPath = resolveTarget("_rels/.rels", r.Target)
		}
	}
	known[corePath] = true
	known[appPath] = true
	known["docProps/custom.xml"] = true
	if data, err := src.Extract(corePath); err == nil {
		_ = parseCoreProperties(data, wb)
	}
	if data, err := src.Extract(appPath); err == nil {
		_ = parseAppProperties(data, wb)
	}
	// docProps/custom.xml has no fixed relationship in practice; probe the
	// conventional path directly.
	if data, err := src.Extract("docProps/custom.xml"); err == nil {
		_ = parseCustomProperties(data, wb)
	}
}

func loadStyles(src *archive.Reader, workbookRelsPath string, workbookRels map[string]relEl, logger xl.Logger, known map[string]bool) *styleContext {
	p := partByType(workbookRels, workbookRelsPath, "styles", "xl/styles.xml")
	known[p] = true
	data, err := src.Extract(p)
	if err != nil {
		logger.Warnf("reader: missing styles part %s, falling back to default styles", p)
		return &styleContext{}
	}
	ctx, err := parseStyles(data)
	if err != nil {
		logger.Warnf("reader: malformed styles part %s: %v, falling back to default styles", p, err)
		return &styleContext{}
	}
	return ctx
}

func loadSharedStrings(src *archive.Reader, workbookRelsPath string, workbookRels map[string]relEl, logger xl.Logger, known map[string]bool) *sharedStringLookup {
	p := partByType(workbookRels, workbookRelsPath, "sharedStrings", "xl/sharedStrings.xml")
	known[p] = true
	data, err := src.Extract(p)
	if err != nil {
		return newSharedStringLookup(nil)
	}
	tbl, err := parseSharedStrings(data)
	if err != nil {
		logger.Warnf("reader: malformed shared strings part %s: %v, treating string cells as missing", p, err)
		return newSharedStringLookup(nil)
	}
	return newSharedStringLookup(tbl)
}

func loadTheme(src *archive.Reader, workbookRelsPath string, workbookRels map[string]relEl, known map[string]bool) *xl.Theme {
	p := partByType(workbookRels, workbookRelsPath, "theme", "xl/theme/theme1.xml")
	known[p] = true
	data, err := src.Extract(p)
	if err != nil {
		return nil
	}
	return parseTheme(data)
}

func loadSheet(src *archive.Reader, sh *xl.Sheet, sheetPart string, styles *styleContext, strings *sharedStringLookup, readOnly bool, logger xl.Logger, known map[string]bool) {
	known[sheetPart] = true
	relsPart := relsPathFor(sheetPart)
	known[relsPart] = true
	sheetRels, _ := extractRels(src, relsPart)

	hyperlinks := map[string]string{}
	commentsPart := ""
	for id, r := range sheetRels {
		switch relTypeSuffix(r.Type) {
		case "hyperlink":
			hyperlinks[id] = r.Target // External target mode: the literal URL, never path-joined.
		case "comments":
			commentsPart = resolveTarget(relsPart, r.Target)
			known[commentsPart] = true
		}
	}

	sh.SetSourceParts(sheetPart, relsPart, commentsPart)

	data, err := src.Extract(sheetPart)
	if err != nil {
		logger.Warnf("reader: missing sheet part %s for sheet %q, leaving it empty", sheetPart, sh.Name())
		return
	}

	var scan *columnar.Store
	if readOnly {
		scan = columnar.NewStore()
	}

	ctx := sheetParseContext{
		styles:     styles,
		strings:    strings.get,
		logger:     logger,
		hyperlinks: hyperlinks,
		scan:       scan,
	}
	if err := parseSheet(data, sh, ctx); err != nil {
		logger.Warnf("reader: malformed sheet part %s for sheet %q: %v", sheetPart, sh.Name(), err)
	}
	if scan != nil {
		sh.SetScanRaw(scan)
	}

	if commentsPart != "" {
		if cdata, err := src.Extract(commentsPart); err == nil {
			if err := parseComments(cdata, sh); err != nil {
				logger.Warnf("reader: malformed comments part %s for sheet %q: %v", commentsPart, sh.Name(), err)
			}
		}
	}
}

// partByType finds the target of the relationship whose Type suffix
// matches want, resolved against relsPath; falls back to the conventional
// path every producer uses in practice when no such relationship exists.
func partByType(rels map[string]relEl, relsPath, want, fallback string) string {
	for _, r := range rels {
		if relTypeSuffix(r.Type) == want {
			return resolveTarget(relsPath, r.Target)
		}
	}
	return fallback
}

func relsPathFor(part string) string {
	dir, base := path.Split(part)
	return path.Join(dir, "_rels", base+".rels")
}

func extractRels(src *archive.Reader, relsPath string) (map[string]relEl, error) {
	if !src.Has(relsPath) {
		return map[string]relEl{}, nil
	}
	data, err := src.Extract(relsPath)
	if err != nil {
		return map[string]relEl{}, err
	}
	return parseRels(data)
}

// sharedStringLookup adapts sstbl.Table's Get to the (string, bool) shape
// sheetParseContext.strings expects, tolerating a workbook with no shared
// strings part at all.
type sharedStringLookup struct {
	tbl interface {
		Get(id uint32) (string, bool)
	}
}

func newSharedStringLookup(tbl interface {
	Get(id uint32) (string, bool)
}) *sharedStringLookup {
	return &sharedStringLookup{tbl: tbl}
}

func (l *sharedStringLookup) get(id uint32) (string, bool) {
	if l == nil || l.tbl == nil {
		return "", false
	}
	return l.tbl.Get(id)
}
