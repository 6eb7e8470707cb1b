package xl

// Mode selects the writer strategy.
type Mode int

const (
	ModeAuto Mode = iota
	ModeBatch
	ModeStreaming
)

// Options carries every recognised configuration value, all with
// documented defaults. Construct with NewOptions and adjust with the
// With* functional options.
type Options struct {
	UseSharedStrings   bool
	CompressionLevel   int
	Mode               Mode
	AutoCellThreshold  int
	AutoMemoryThreshold int64
	ConstantMemory     bool
	RowBufferSize      int
	XMLBufferSize      int
}

// Option mutates an Options value.
type Option func(*Options)

// DefaultOptions returns the library's documented default configuration.
func DefaultOptions() Options {
	return Options{
		UseSharedStrings:    true,
		CompressionLevel:    6,
		Mode:                ModeAuto,
		AutoCellThreshold:   200_000,
		AutoMemoryThreshold: 64 << 20,
		ConstantMemory:      false,
		RowBufferSize:        1 << 16,
		XMLBufferSize:        1 << 16,
	}
}

// NewOptions builds an Options starting from the defaults and applies opts
// in order.
func NewOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.validate()
}

func (o Options) validate() error {
	if o.CompressionLevel < 0 || o.CompressionLevel > 9 {
		return newError(KindInvalidArgument, "compression_level must be between 0 and 9")
	}
	if o.AutoCellThreshold <= 0 {
		return newError(KindInvalidArgument, "auto_cell_threshold must be positive")
	}
	if o.AutoMemoryThreshold <= 0 {
		return newError(KindInvalidArgument, "auto_memory_threshold must be positive")
	}
	return nil
}

// WithSharedStrings toggles shared-string emission.
func WithSharedStrings(enabled bool) Option {
	return func(o *Options) { o.UseSharedStrings = enabled }
}

// WithCompressionLevel sets the deflate level (0 = store, 9 = best).
func WithCompressionLevel(level int) Option {
	return func(o *Options) { o.CompressionLevel = level }
}

// WithMode forces the writer strategy.
func WithMode(m Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithAutoThresholds sets the two thresholds auto mode consults.
func WithAutoThresholds(cellCount int, estimatedBytes int64) Option {
	return func(o *Options) {
		o.AutoCellThreshold = cellCount
		o.AutoMemoryThreshold = estimatedBytes
	}
}

// WithConstantMemory forces streaming regardless of size.
func WithConstantMemory(enabled bool) Option {
	return func(o *Options) { o.ConstantMemory = enabled }
}

// WithBufferSizes sets the internal row/XML buffer sizes.
func WithBufferSizes(rowBuf, xmlBuf int) Option {
	return func(o *Options) {
		o.RowBufferSize = rowBuf
		o.XMLBufferSize = xmlBuf
	}
}
