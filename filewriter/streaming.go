package filewriter

import "github.com/adnsv/fastxl/archive"

// StreamingWriter opens a single archive entry at a time and writes chunks
// as the XML writer emits them, giving constant memory regardless of
// output size.
type StreamingWriter struct {
	aw     *archive.Writer
	opened bool
	stats  Stats
}

// NewStreamingWriter returns a StreamingWriter writing through to aw.
func NewStreamingWriter(aw *archive.Writer) *StreamingWriter {
	return &StreamingWriter{aw: aw}
}

func (s *StreamingWriter) WriteWholeFile(path string, content []byte) error {
	if s.opened {
		return ErrStreamOpen
	}
	if err := s.aw.WriteWholeEntry(path, content); err != nil {
		return err
	}
	s.stats.PartsWritten++
	s.stats.BytesWritten += int64(len(content))
	return nil
}

func (s *StreamingWriter) OpenStreaming(path string) error {
	if s.opened {
		return ErrStreamOpen
	}
	if err := s.aw.StartEntry(path); err != nil {
		return err
	}
	s.opened = true
	s.stats.PartsWritten++
	return nil
}

func (s *StreamingWriter) WriteChunk(p []byte) (int, error) {
	if !s.opened {
		return 0, ErrNoStreamOpen
	}
	n, err := s.aw.Write(p)
	s.stats.BytesWritten += int64(n)
	return n, err
}

func (s *StreamingWriter) CloseStreaming() error {
	if !s.opened {
		return ErrNoStreamOpen
	}
	s.opened = false
	return s.aw.EndEntry()
}

// Flush is a no-op: every write already went straight to the archive.
func (s *StreamingWriter) Flush() error { return nil }

func (s *StreamingWriter) Stats() Stats { return s.stats }
func (s *StreamingWriter) Kind() Kind   { return KindStreaming }
