package store

import "go.uber.org/zap"

// Config holds store parameters.
type Config struct {
	// Logger receives debug output for opens, allocations and flushes.
	// Nil disables logging.
	Logger *zap.Logger
}

// OrDefault returns a normalized copy of c, or the default configuration if
// c is nil.
func (c *Config) OrDefault() *Config {
	var cc Config
	if c != nil {
		cc = *c
	}
	if cc.Logger == nil {
		cc.Logger = zap.NewNop()
	}
	return &cc
}
