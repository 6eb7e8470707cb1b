package reader

import (
	"encoding/xml"

	"github.com/adnsv/fastxl/sstbl"
)

// sstDoc mirrors xl/sharedStrings.xml. Each <si> holds either a plain <t>
// or one or more rich-text <r><t>...</t></r> runs; this library does not
// model run-level formatting, so rich runs are concatenated into one
// plain string, matching the simplification the write path already makes
// on the way out (it never emits <r> runs, only plain <t>).
type sstDoc struct {
	SI []siEl `xml:"si"`
}

type siEl struct {
	T string  `xml:"t"`
	R []rEl   `xml:"r"`
}

type rEl struct {
	T string `xml:"t"`
}

func (si siEl) text() string {
	if len(si.R) == 0 {
		return si.T
	}
	out := ""
	for _, r := range si.R {
		out += r.T
	}
	return out
}

// parseSharedStrings parses xl/sharedStrings.xml into a fresh table,
// preserving original ids via InternWithID so existing SharedStringRef
// cells keep resolving correctly without renumbering.
func parseSharedStrings(data []byte) (*sstbl.Table, error) {
	var doc sstDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	t := sstbl.New()
	for i, si := range doc.SI {
		t.InternWithID(si.text(), uint32(i))
	}
	return t, nil
}
