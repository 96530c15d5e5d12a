// Package config handles configuration loading for the stitch tool.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the tool configuration.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Quicklook QuicklookConfig `yaml:"quicklook"`
}

// InputConfig describes where tile files come from.
type InputConfig struct {
	// Pattern globs the representative (first-tile) file of each
	// timestep group and must contain TileToken.
	Pattern   string `yaml:"pattern"`
	TileToken string `yaml:"tile_token"`
	// Workers is the loader pool size.
	Workers int `yaml:"workers"`
}

// OutputConfig describes where and how aggregated files are written.
type OutputConfig struct {
	Dir            string `yaml:"dir"`
	VerifyCoverage bool   `yaml:"verify_coverage"`
}

// QuicklookConfig enables per-timestep PNG rendering of one variable.
type QuicklookConfig struct {
	Variable string `yaml:"variable"`
	Colormap string `yaml:"colormap"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Pattern:   "output/*_001_*",
			TileToken: "_001_",
			Workers:   10,
		},
		Quicklook: QuicklookConfig{
			Colormap: "viridis",
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Input.Pattern == "" {
		cfg.Input.Pattern = defaults.Input.Pattern
	}
	if cfg.Input.TileToken == "" {
		cfg.Input.TileToken = defaults.Input.TileToken
	}
	if cfg.Input.Workers <= 0 {
		cfg.Input.Workers = defaults.Input.Workers
	}
	if cfg.Quicklook.Colormap == "" {
		cfg.Quicklook.Colormap = defaults.Quicklook.Colormap
	}
}
