package filewriter

import (
	"bytes"

	"github.com/adnsv/fastxl/archive"
)

// BatchWriter buffers each part's complete bytes in memory and commits them
// to the archive in one bulk call at Flush.
type BatchWriter struct {
	aw       *archive.Writer
	buffered map[string][]byte
	order    []string
	current  string
	stream   *bytes.Buffer
	stats    Stats
}

// NewBatchWriter returns a BatchWriter committing to aw on Flush.
func NewBatchWriter(aw *archive.Writer) *BatchWriter {
	return &BatchWriter{aw: aw, buffered: map[string][]byte{}}
}

func (b *BatchWriter) WriteWholeFile(path string, content []byte) error {
	if b.stream != nil {
		return ErrStreamOpen
	}
	if _, exists := b.buffered[path]; !exists {
		b.order = append(b.order, path)
	}
	b.buffered[path] = content
	b.stats.PartsWritten++
	b.stats.BytesWritten += int64(len(content))
	return nil
}

func (b *BatchWriter) OpenStreaming(path string) error {
	if b.stream != nil {
		return ErrStreamOpen
	}
	b.current = path
	b.stream = &bytes.Buffer{}
	return nil
}

func (b *BatchWriter) WriteChunk(p []byte) (int, error) {
	if b.stream == nil {
		return 0, ErrNoStreamOpen
	}
	return b.stream.Write(p)
}

func (b *BatchWriter) CloseStreaming() error {
	if b.stream == nil {
		return ErrNoStreamOpen
	}
	content := append([]byte(nil), b.stream.Bytes()...)
	path := b.current
	b.current, b.stream = "", nil
	return b.WriteWholeFile(path, content)
}

// Flush commits every buffered part to the archive, in the order parts
// were first written.
func (b *BatchWriter) Flush() error {
	for _, path := range b.order {
		if err := b.aw.WriteWholeEntry(path, b.buffered[path]); err != nil {
			return err
		}
	}
	return nil
}

func (b *BatchWriter) Stats() Stats { return b.stats }
func (b *BatchWriter) Kind() Kind   { return KindBatch }
