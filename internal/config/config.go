// Package config holds puzzle parameters and logging settings, loaded from
// an optional YAML file and overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures a dugsh run.
type Config struct {
	// Threshold is the largest directory size counted by the small-directory sum.
	Threshold int64 `yaml:"threshold"`

	// Capacity is the total size of the simulated device.
	Capacity int64 `yaml:"capacity"`

	// RequiredFree is the free space an update needs.
	RequiredFree int64 `yaml:"required_free"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the puzzle's published parameters.
func DefaultConfig() *Config {
	return &Config{
		Threshold:    100000,
		Capacity:     70000000,
		RequiredFree: 30000000,
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

// LoadFile overlays the YAML file at path onto the defaults. Keys missing
// from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// WithThreshold sets the small-directory threshold.
func (c *Config) WithThreshold(n int64) *Config {
	c.Threshold = n
	return c
}

// WithCapacity sets the device capacity.
func (c *Config) WithCapacity(n int64) *Config {
	c.Capacity = n
	return c
}

// WithRequiredFree sets the required free space.
func (c *Config) WithRequiredFree(n int64) *Config {
	c.RequiredFree = n
	return c
}

// Validate checks that sizes are usable.
func (c *Config) Validate() error {
	switch {
	case c.Threshold < 0:
		return errors.New("threshold must not be negative")
	case c.Capacity <= 0:
		return errors.New("capacity must be positive")
	case c.RequiredFree < 0:
		return errors.New("required_free must not be negative")
	}
	return nil
}
