package archive

// ReadOption configures single-entry reads.
type ReadOption func(*readConfig)

type readConfig struct {
	maxEntrySize     uint64
	maxDecoderMemory uint64
}

func newReadConfig(opts ...ReadOption) *readConfig {
	cfg := &readConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMaxEntrySize limits the size of the entry returned by ReadEntry.
// Larger entries fail with ErrEntryTooLarge. Set limit to 0 to disable
// the limit.
func WithMaxEntrySize(limit uint64) ReadOption {
	return func(cfg *readConfig) {
		cfg.maxEntrySize = limit
	}
}

// WithMaxDecoderMemory limits the maximum memory used by the zstd
// decoder. Set limit to 0 to disable the limit.
func WithMaxDecoderMemory(limit uint64) ReadOption {
	return func(cfg *readConfig) {
		cfg.maxDecoderMemory = limit
	}
}
