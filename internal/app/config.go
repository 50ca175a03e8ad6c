package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	FramePath string
	LogFormat string
	LogLevel  string
	PoolSize  int
}

// NewConfig validates a raw Config and applies defaults.
func NewConfig(c Config) (*Config, error) {
	if c.FramePath == "" {
		return nil, fmt.Errorf("frame path is required")
	}
	if c.PoolSize == 0 {
		c.PoolSize = 128
	}
	if c.PoolSize < 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", c.PoolSize)
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return &c, nil
}
