package filewriter

import (
	"bytes"
	"testing"

	"github.com/adnsv/fastxl/archive"
)

func TestBatchWriterBuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	aw := archive.NewWriter(&buf, archive.DefaultCompressionLevel)
	bw := NewBatchWriter(aw)

	if err := bw.WriteWholeFile("a.xml", []byte("AAAA")); err != nil {
		t.Fatalf("WriteWholeFile: %v", err)
	}
	if err := bw.WriteWholeFile("b.xml", []byte("BBBB")); err != nil {
		t.Fatalf("WriteWholeFile: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("archive writer received bytes before Flush: %d", buf.Len())
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := archive.NewReaderFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("NewReaderFromBytes: %v", err)
	}
	data, err := r.Extract("a.xml")
	if err != nil || string(data) != "AAAA" {
		t.Fatalf("Extract(\"a.xml\") = %q, %v; want \"AAAA\", nil", data, err)
	}

	stats := bw.Stats()
	if stats.PartsWritten != 2 || stats.BytesWritten != 8 {
		t.Fatalf("Stats() = %+v; want PartsWritten: 2, BytesWritten: 8", stats)
	}
	if bw.Kind() != KindBatch {
		t.Fatalf("Kind() = %v; want KindBatch", bw.Kind())
	}
}

func TestBatchWriterStreamingRejectsConcurrentWholeFile(t *testing.T) {
	var buf bytes.Buffer
	aw := archive.NewWriter(&buf, archive.DefaultCompressionLevel)
	bw := NewBatchWriter(aw)

	if err := bw.OpenStreaming("a.xml"); err != nil {
		t.Fatalf("OpenStreaming: %v", err)
	}
	if err := bw.WriteWholeFile("b.xml", []byte("x")); err != ErrStreamOpen {
		t.Fatalf("WriteWholeFile while streaming open = %v; want ErrStreamOpen", err)
	}
	if _, err := bw.WriteChunk([]byte("chunk")); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	if err := bw.CloseStreaming(); err != nil {
		t.Fatalf("CloseStreaming: %v", err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := archive.NewReaderFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("NewReaderFromBytes: %v", err)
	}
	data, err := r.Extract("a.xml")
	if err != nil || string(data) != "chunk" {
		t.Fatalf("Extract(\"a.xml\") = %q, %v; want \"chunk\", nil", data, err)
	}
}

func TestBatchWriterOverwriteSameKeepsOriginalOrder(t *testing.T) {
	var buf bytes.Buffer
	aw := archive.NewWriter(&buf, archive.DefaultCompressionLevel)
	bw := NewBatchWriter(aw)

	if err := bw.WriteWholeFile("a.xml", []byte("first")); err != nil {
		t.Fatalf("WriteWholeFile: %v", err)
	}
	if err := bw.WriteWholeFile("a.xml", []byte("second")); err != nil {
		t.Fatalf("WriteWholeFile: %v", err)
	}
	if len(bw.order) != 1 {
		t.Fatalf("order = %v; want a single entry for a.xml written twice", bw.order)
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	r, err := archive.NewReaderFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("NewReaderFromBytes: %v", err)
	}
	data, err := r.Extract("a.xml")
	if err != nil || string(data) != "second" {
		t.Fatalf("Extract(\"a.xml\") = %q, %v; want \"second\", nil", data, err)
	}
}
