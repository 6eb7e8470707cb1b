package reader

import (
	"encoding/xml"
	"fmt"
	"path"
)

// relsDoc is the root element of a .rels relationships part. Relationships
// are kept as a slice rather than collapsed straight to map[id]target so a
// relationship's Type is also available to callers that need to pick
// relationships by type rather than by id, e.g. the worksheet rels parser
// looking for the comments part.
type relsDoc struct {
	XMLName       xml.Name `xml:"Relationships"`
	Relationships []relEl  `xml:"Relationship"`
}

type relEl struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// relTypeSuffix strips everything up to and including the last "/" from a
// relationship Type URI, so relationships can be matched by their short
// name ("worksheet", "styles", "hyperlink", ...) the way oxml emits them.
func relTypeSuffix(relType string) string {
	for i := len(relType) - 1; i >= 0; i-- {
		if relType[i] == '/' {
			return relType[i+1:]
		}
	}
	return relType
}

// parseRels parses a .rels part into id -> relEl.
func parseRels(data []byte) (map[string]relEl, error) {
	var doc relsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("reader: parse relationships: %w", err)
	}
	m := make(map[string]relEl, len(doc.Relationships))
	for _, r := range doc.Relationships {
		m[r.ID] = r
	}
	return m, nil
}

// resolveTarget joins a relationship Target against the directory its
// owning rels part sits next to (one level up from the _rels folder),
// normalizing away "../" segments the way every OPC part reference does.
func resolveTarget(relsPartPath, target string) string {
	if len(target) > 0 && target[0] == '/' {
		return target[1:]
	}
	base := path.Dir(path.Dir(relsPartPath)) // strip "_rels/foo.xml.rels" -> the part's own directory
	return path.Clean(path.Join(base, target))
}
