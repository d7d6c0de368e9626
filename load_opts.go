package pathsjson

import "log/slog"

// LoadOption configures manifest loading and reconstruction.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (c *loadConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

func newLoadConfig(opts ...LoadOption) *loadConfig {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger for load operations. Reconstruction uses
// it to surface defaulting decisions. If not set, logging is disabled.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) {
		c.logger = logger
	}
}
