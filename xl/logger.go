package xl

import "log"

// Logger is the injected, optional logging seam: the library keeps no
// global state, so any process-wide logging configuration is supplied by
// the caller and its absence must not affect correctness. The package
// reader uses it to report tolerated parse anomalies (unknown elements,
// missing optional parts) as warnings rather than errors.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// stdLogger adapts the standard library's *log.Logger to the Logger
// interface; NewStandardLogger returns it. A Workbook not given a logger
// through SetLogger uses noopLogger.
type stdLogger struct {
	l *log.Logger
}

func (s stdLogger) Debugf(format string, args ...any) { s.l.Printf("debug: "+format, args...) }
func (s stdLogger) Warnf(format string, args ...any)  { s.l.Printf("warn: "+format, args...) }

// NewStandardLogger wraps l (or log.Default() if l is nil) as a Logger.
func NewStandardLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}
	return stdLogger{l: l}
}

// noopLogger discards everything; used when the caller supplies no logger.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any)  {}
