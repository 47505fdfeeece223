package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the demo settings.
type Config struct {
	Count    int           `yaml:"count"`
	Period   time.Duration `yaml:"period"`
	Throttle time.Duration `yaml:"throttle"`
	Duration time.Duration `yaml:"duration"`
	Seed     int64         `yaml:"seed"`
}

// DefaultConfig returns the settings used when no file or flag overrides them.
func DefaultConfig() Config {
	return Config{
		Count:    5,
		Period:   time.Second,
		Throttle: 3 * time.Second,
		Duration: 10 * time.Second,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	if c.Period <= 0 {
		return fmt.Errorf("period must be positive, got %s", c.Period)
	}
	if c.Throttle <= 0 {
		return fmt.Errorf("throttle must be positive, got %s", c.Throttle)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %s", c.Duration)
	}
	return nil
}

// merge overrides c with the non-zero fields of o.
func (c Config) merge(o Config) Config {
	if o.Count != 0 {
		c.Count = o.Count
	}
	if o.Period != 0 {
		c.Period = o.Period
	}
	if o.Throttle != 0 {
		c.Throttle = o.Throttle
	}
	if o.Duration != 0 {
		c.Duration = o.Duration
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	return c
}
