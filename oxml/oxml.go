// Package oxml serializes the workbook model into OPC parts. Each WriteX
// function owns exactly one part, so each can be driven independently by
// the orchestrator's dirty-aware save phases.
package oxml

import (
	"fmt"
	"strconv"

	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xmlw"
)

const (
	nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCore          = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC            = "http://purl.org/dc/elements/1.1/"
	nsDCTerms       = "http://purl.org/dc/terms/"
	nsDCMIType      = "http://purl.org/dc/dcmitype/"
	nsXSI           = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtended      = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsCustom        = "http://schemas.openxmlformats.org/officeDocument/2006/custom-properties"
	nsVT            = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsRelType       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Writer is the xmlw writer every emitter in this package writes through.
type Writer = xmlw.Writer

// partStream adapts a filewriter.FileWriter's streaming entry to io.Writer,
// so every part emitter writes through a single xmlw.Writer regardless of
// which writer strategy is active.
type partStream struct {
	fw filewriter.FileWriter
}

func (p partStream) Write(b []byte) (int, error) { return p.fw.WriteChunk(b) }

// writePart opens path as a streaming entry, drives emit against a fresh
// xmlw.Writer, and closes the entry. It is the one chokepoint every
// serializer in this package funnels through.
func writePart(fw filewriter.FileWriter, path string, emit func(w *Writer)) error {
	if err := fw.OpenStreaming(path); err != nil {
		return err
	}
	w := xmlw.New(partStream{fw})
	w.StartDocument()
	emit(w)
	w.EndDocument()
	return fw.CloseStreaming()
}

func itoa(n int) string { return strconv.Itoa(n) }

func sprintAny(v any) string { return fmt.Sprintf("%v", v) }
