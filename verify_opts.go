package pathsjson

import (
	"log/slog"
	"runtime"
)

// VerifyOption configures VerifyDir.
type VerifyOption func(*verifyConfig)

type verifyConfig struct {
	workers int
	logger  *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (c *verifyConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

func newVerifyConfig(opts ...VerifyOption) *verifyConfig {
	cfg := &verifyConfig{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	return cfg
}

// VerifyWithWorkers sets the number of concurrent verification workers.
// Values < 1 force serial verification. Defaults to GOMAXPROCS.
func VerifyWithWorkers(n int) VerifyOption {
	return func(c *verifyConfig) {
		c.workers = n
	}
}

// VerifyWithLogger sets the logger for verification operations.
// If not set, logging is disabled.
func VerifyWithLogger(logger *slog.Logger) VerifyOption {
	return func(c *verifyConfig) {
		c.logger = logger
	}
}
