package tasks

import "time"

// Config sizes the worker pool. Attempts, backoff and timeouts are set per
// queue by each task's Config method.
type Config struct {
	Workers         int
	ReleaseAfter    time.Duration // a running task is handed back after this long
	CleanupInterval time.Duration // how often finished tasks are purged
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = def.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	return c
}
