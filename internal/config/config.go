// Package config loads the YAML configuration for the lru/freelist/
// subscriber components and the cmd/bench driver.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level document. Load starts from Default, so a
// section the document leaves out keeps Default's values; a zero or
// negative lru.capacity is rejected.
type Config struct {
	LRU        LRUConfig        `yaml:"lru"`
	FreeList   FreeListConfig   `yaml:"freelist"`
	Subscriber SubscriberConfig `yaml:"subscriber"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Bench      BenchConfig      `yaml:"bench"`
}

// BenchConfig seeds cmd/bench's workload flags: its values are applied
// as defaults for any flag the invocation did not set explicitly.
type BenchConfig struct {
	N       int `yaml:"n"`
	Threads int `yaml:"threads"`
}

// LRUConfig configures an lru.LRU.
type LRUConfig struct {
	Capacity int `yaml:"capacity"`
}

// FreeListConfig holds freelist settings. MaxIdle is parsed but nothing
// in the module reads it; freelist.Pool has no idle limit or trim.
type FreeListConfig struct {
	MaxIdle int `yaml:"max_idle"`
}

// SubscriberConfig configures the subscriber.Table.
type SubscriberConfig struct {
	// MaxSubscribersPerChannel is advisory; zero means unbounded.
	MaxSubscribersPerChannel int `yaml:"max_subscribers_per_channel"`
}

// LogConfig holds logger settings. cmd/bench does not apply them: the
// level comes from --log-level and the encoding from LOCKFREELIST_JSONLOG.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// MetricsConfig controls the Prometheus exporter.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns a Config with sensible defaults, the same values an
// empty YAML document would produce after Load's post-processing.
func Default() *Config {
	c := &Config{
		LRU:     LRUConfig{Capacity: 1024},
		Log:     LogConfig{Level: "info"},
		Metrics: MetricsConfig{Listen: ":9090"},
		Bench:   BenchConfig{N: 8192, Threads: 4},
	}
	return c
}

// Load reads and parses the YAML document at path, filling in Default's
// values for anything the document leaves unset.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if c.LRU.Capacity <= 0 {
		return nil, fmt.Errorf("config: lru.capacity must be positive, got %d", c.LRU.Capacity)
	}
	return c, nil
}
