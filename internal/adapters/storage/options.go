package storage

import "github.com/kou-isk/youcoder/pkg/logger"

// ChainOption applies a configuration option to the Chain.
type ChainOption func(*Chain)

// WithMaxAttempts caps how many fallible tiers a save tries before
// collapsing straight to the memory cache.
func WithMaxAttempts(n int) ChainOption {
	return func(c *Chain) {
		if n >= 0 {
			c.maxAttempts = n
		}
	}
}

// WithLogger sets a custom logger for the chain.
func WithLogger(l logger.Logger) ChainOption {
	return func(c *Chain) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMemoryTier substitutes the terminal tier, mainly for tests that need
// to observe what landed in memory.
func WithMemoryTier(m *MemoryTier) ChainOption {
	return func(c *Chain) {
		if m != nil {
			c.memory = m
		}
	}
}
