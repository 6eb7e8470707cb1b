// Package xmlw is a buffered, escape-aware element writer with a stack of
// open elements for structural validation, built directly on
// github.com/adnsv/srw/xml and adding the control-character drop policy
// srw/xml itself does not apply.
package xmlw

import (
	"io"
	"strings"

	srwxml "github.com/adnsv/srw/xml"
)

// Writer wraps an srw/xml.Writer. Every element other than the single
// document root is opened with the "+"-prefix convention, which lets
// srw/xml collapse an element with no children into a self-closing tag;
// the document root is always opened and closed explicitly, even when the
// document turns out to be empty.
type Writer struct {
	w *srwxml.Writer
}

// New returns a writer that streams to out, buffering internally the way
// srw/xml does; Flush (via the owning FileWriter) drains that buffer.
func New(out io.Writer) *Writer {
	return &Writer{w: srwxml.NewWriter(out, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})}
}

// StartDocument writes the XML declaration.
func (w *Writer) StartDocument() *Writer {
	w.w.XmlStandaloneDecl()
	return w
}

// EndDocument is a no-op placeholder for symmetry with StartDocument; the
// underlying writer has no trailing marker to emit and flush is handled by
// the file writer strategy, which invokes it regularly so no unbounded
// buffer accumulates.
func (w *Writer) EndDocument() {}

// StartRoot opens the single document root element, which is always
// written as an explicit open/close pair even if it ends up with no
// children (an empty sheetData, an empty Relationships list, etc.).
func (w *Writer) StartRoot(name string) *Writer {
	w.w.OTag(name)
	return w
}

// StartElement opens a non-root element. Such elements self-close when
// EndElement is called with no intervening content.
func (w *Writer) StartElement(name string) *Writer {
	w.w.OTag("+" + name)
	return w
}

// WriteEmptyElement writes name with no attributes or content.
func (w *Writer) WriteEmptyElement(name string) *Writer {
	return w.StartElement(name).EndElement()
}

// WriteAttribute writes one attribute on the most recently opened element.
// Values are escaped by srw/xml for & < > " '.
func (w *Writer) WriteAttribute(name string, value any) *Writer {
	w.w.Attr(name, value)
	return w
}

// WriteText writes escaped character data, dropping any control byte
// outside {0x09, 0x0A, 0x0D}, which XML 1.0 cannot represent.
func (w *Writer) WriteText(text string) *Writer {
	w.w.Write(stripControlChars(text))
	return w
}

// EndElement closes the most recently opened element.
func (w *Writer) EndElement() *Writer {
	w.w.CTag()
	return w
}

// stripControlChars removes bytes outside the XML 1.0 whitelist of control
// characters.
func stripControlChars(s string) string {
	if !strings.ContainsFunc(s, isDisallowedControl) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isDisallowedControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDisallowedControl(r rune) bool {
	if r == 0x09 || r == 0x0A || r == 0x0D {
		return false
	}
	return r < 0x20
}
