// Package config handles tool configuration loading and management.
package config

import "runtime"

// Config holds all generator settings.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// OutputConfig holds export destination settings.
type OutputConfig struct {
	// Dir is the base directory exports are written under. Each run gets
	// its own subdirectory.
	Dir string `yaml:"dir"`

	// FlatDir disables per-run subdirectories and writes straight into Dir.
	FlatDir bool `yaml:"flat_dir"`
}

// GenerationConfig holds pipeline execution settings.
type GenerationConfig struct {
	// Workers bounds the parallel stages. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// Seed overrides the schema seed when non-zero.
	Seed int64 `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: "worlds",
		},
		Generation: GenerationConfig{
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// EffectiveWorkers resolves the worker count for parallel stages.
func (c *Config) EffectiveWorkers() int {
	if c.Generation.Workers > 0 {
		return c.Generation.Workers
	}
	return runtime.GOMAXPROCS(0)
}
