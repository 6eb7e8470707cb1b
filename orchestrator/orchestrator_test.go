package orchestrator

import (
	"bytes"
	"testing"

	"github.com/adnsv/fastxl/archive"
	"github.com/adnsv/fastxl/dirty"
	"github.com/adnsv/fastxl/filewriter"
	"github.com/adnsv/fastxl/xl"
)

func TestSaveFreshWorkbookWritesCoreParts(t *testing.T) {
	wb, err := xl.Create()
	if err != nil {
		t.Fatalf("xl.Create: %v", err)
	}
	sh, err := wb.AddSheet("Sheet1")
	if err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	if err := sh.SetNumber(0, 0, 1); err != nil {
		t.Fatalf("SetNumber: %v", err)
	}

	var buf bytes.Buffer
	aw := archive.NewWriter(&buf, archive.DefaultCompressionLevel)
	fw := filewriter.NewBatchWriter(aw)
	if err := Save(wb, fw, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("aw.Close: %v", err)
	}

	r, err := archive.NewReaderFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("NewReaderFromBytes: %v", err)
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"xl/workbook.xml",
		"xl/_rels/workbook.xml.rels",
		"xl/styles.xml",
		"xl/worksheets/sheet1.xml",
	} {
		if !r.Has(want) {
			t.Errorf("saved package missing part %s", want)
		}
	}
	if r.Has("docProps/custom.xml") {
		t.Errorf("saved package should omit docProps/custom.xml with no custom properties set")
	}
}

func TestStepFromRegeneratesWhenDirty(t *testing.T) {
	var buf bytes.Buffer
	aw := archive.NewWriter(&buf, archive.DefaultCompressionLevel)
	fw := filewriter.NewBatchWriter(aw)
	d := dirty.NewForCreate()

	called := false
	err := stepFrom(fw, d, nil, "foo.xml", "foo.xml", func() error {
		called = true
		return fw.WriteWholeFile("foo.xml", []byte("regenerated"))
	})
	if err != nil {
		t.Fatalf("stepFrom: %v", err)
	}
	if !called {
		t.Fatalf("emit was not called for a dirty part")
	}
}

func TestStepFromCopiesThroughWhenClean(t *testing.T) {
	var srcBuf bytes.Buffer
	srcAW := archive.NewWriter(&srcBuf, archive.DefaultCompressionLevel)
	if err := srcAW.WriteWholeEntry("foo.xml", []byte("original")); err != nil {
		t.Fatalf("WriteWholeEntry: %v", err)
	}
	if err := srcAW.Close(); err != nil {
		t.Fatalf("srcAW.Close: %v", err)
	}
	src, err := archive.NewReaderFromBytes(srcBuf.Bytes())
	if err != nil {
		t.Fatalf("NewReaderFromBytes: %v", err)
	}

	var buf bytes.Buffer
	aw := archive.NewWriter(&buf, archive.DefaultCompressionLevel)
	fw := filewriter.NewBatchWriter(aw)
	d := dirty.NewForEdit()

	called := false
	err = stepFrom(fw, d, src, "foo.xml", "foo.xml", func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("stepFrom: %v", err)
	}
	if called {
		t.Fatalf("emit was called for a clean part; expected passthrough copy")
	}
	if err := fw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("aw.Close: %v", err)
	}

	r, err := archive.NewReaderFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("NewReaderFromBytes: %v", err)
	}
	data, err := r.Extract("foo.xml")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(data) != "original" {
		t.Fatalf("Extract = %q; want original", string(data))
	}
}

func TestSavePassesThroughUnrecognizedParts(t *testing.T) {
	wb, err := xl.Create()
	if err != nil {
		t.Fatalf("xl.Create: %v", err)
	}
	if _, err := wb.AddSheet("Sheet1"); err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	wb.SetPassthroughPart("xl/media/image1.png", []byte("fake-png-bytes"))
	wb.SetPassthroughPart("customXml/item1.xml", []byte("<root/>"))

	var buf bytes.Buffer
	aw := archive.NewWriter(&buf, archive.DefaultCompressionLevel)
	fw := filewriter.NewBatchWriter(aw)
	if err := Save(wb, fw, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("aw.Close: %v", err)
	}

	r, err := archive.NewReaderFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("NewReaderFromBytes: %v", err)
	}
	img, err := r.Extract("xl/media/image1.png")
	if err != nil || string(img) != "fake-png-bytes" {
		t.Fatalf("xl/media/image1.png = %q, %v; want fake-png-bytes, nil", img, err)
	}
	xml, err := r.Extract("customXml/item1.xml")
	if err != nil || string(xml) != "<root/>" {
		t.Fatalf("customXml/item1.xml = %q, %v; want <root/>, nil", xml, err)
	}
}

func TestStepFromSkipsMissingOptionalPart(t *testing.T) {
	var buf bytes.Buffer
	aw := archive.NewWriter(&buf, archive.DefaultCompressionLevel)
	fw := filewriter.NewBatchWriter(aw)
	d := dirty.NewForEdit()

	err := stepFrom(fw, d, nil, "docProps/custom.xml", "", func() error {
		t.Fatalf("emit should not be called when there is no passthrough source")
		return nil
	})
	if err != nil {
		t.Fatalf("stepFrom: %v", err)
	}
}
