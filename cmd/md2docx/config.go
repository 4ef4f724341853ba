package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrLoadConfig marks any failure reading or parsing the config file.
var ErrLoadConfig = errors.New("failed to load config")

// maxConfigSize bounds the config read; a conversion config is a handful of
// lines, anything larger is the wrong file.
const maxConfigSize = 1 << 20

// Config is the YAML configuration file. Every field has a matching CLI
// flag; flags win when both are set.
type Config struct {
	Styles    string `yaml:"styles"`    // JSON style sheet path or preset name
	Preset    string `yaml:"preset"`    // embedded preset name
	Highlight string `yaml:"highlight"` // chroma style name
	Workers   int    `yaml:"workers"`   // parallel conversions
	Preview   string `yaml:"preview"`   // HTML preview output path
}

// loadConfig reads and strictly parses a YAML config file. Unknown fields
// are rejected so a typo cannot silently disable an option.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrLoadConfig, path, maxConfigSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &Config{}, nil
	}

	cfg := &Config{}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	return cfg, nil
}

// mergeFlags overlays explicitly set CLI flags onto the config.
func mergeFlags(flags *cliFlags, cfg *Config) {
	if flags.styles != "" {
		cfg.Styles = flags.styles
	}
	if flags.preset != "" {
		cfg.Preset = flags.preset
	}
	if flags.highlight != "" {
		cfg.Highlight = flags.highlight
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
	if flags.preview != "" {
		cfg.Preview = flags.preview
	}
}
