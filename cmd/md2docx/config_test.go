package main

// Notes:
// - loadConfig: we test valid YAML, unknown fields (strict mode), malformed
//   YAML, and missing files.
// - mergeFlags: we test CLI-wins precedence for every overridable field.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "md2docx.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestLoadConfig - YAML config loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("loads all fields", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `styles: custom.json
preset: manuscript
highlight: monokai
workers: 4
preview: out.html
`)
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Styles != "custom.json" {
			t.Errorf("Styles = %q, want %q", cfg.Styles, "custom.json")
		}
		if cfg.Preset != "manuscript" {
			t.Errorf("Preset = %q, want %q", cfg.Preset, "manuscript")
		}
		if cfg.Highlight != "monokai" {
			t.Errorf("Highlight = %q, want %q", cfg.Highlight, "monokai")
		}
		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Workers)
		}
		if cfg.Preview != "out.html" {
			t.Errorf("Preview = %q, want %q", cfg.Preview, "out.html")
		}
	})

	t.Run("empty config gives zero values", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "")
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Styles != "" || cfg.Preset != "" || cfg.Workers != 0 {
			t.Errorf("empty config = %+v, want zero values", cfg)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "presett: manuscript\n")
		_, err := loadConfig(path)
		if !errors.Is(err, ErrLoadConfig) {
			t.Errorf("error = %v, want ErrLoadConfig", err)
		}
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "styles: [\n")
		_, err := loadConfig(path)
		if !errors.Is(err, ErrLoadConfig) {
			t.Errorf("error = %v, want ErrLoadConfig", err)
		}
	})

	t.Run("missing file rejected", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrLoadConfig) {
			t.Errorf("error = %v, want ErrLoadConfig", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flag precedence over config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{
			Styles:    "config.json",
			Preset:    "compact",
			Highlight: "github",
			Workers:   2,
			Preview:   "config.html",
		}
		flags := &cliFlags{
			styles:    "flag.json",
			preset:    "manuscript",
			highlight: "monokai",
			workers:   8,
			preview:   "flag.html",
		}

		mergeFlags(flags, cfg)

		if cfg.Styles != "flag.json" {
			t.Errorf("Styles = %q, want %q", cfg.Styles, "flag.json")
		}
		if cfg.Preset != "manuscript" {
			t.Errorf("Preset = %q, want %q", cfg.Preset, "manuscript")
		}
		if cfg.Highlight != "monokai" {
			t.Errorf("Highlight = %q, want %q", cfg.Highlight, "monokai")
		}
		if cfg.Workers != 8 {
			t.Errorf("Workers = %d, want 8", cfg.Workers)
		}
		if cfg.Preview != "flag.html" {
			t.Errorf("Preview = %q, want %q", cfg.Preview, "flag.html")
		}
	})

	t.Run("unset flags keep config values", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{
			Styles:  "config.json",
			Preset:  "compact",
			Workers: 2,
		}
		mergeFlags(&cliFlags{}, cfg)

		if cfg.Styles != "config.json" {
			t.Errorf("Styles = %q, want %q", cfg.Styles, "config.json")
		}
		if cfg.Preset != "compact" {
			t.Errorf("Preset = %q, want %q", cfg.Preset, "compact")
		}
		if cfg.Workers != 2 {
			t.Errorf("Workers = %d, want 2", cfg.Workers)
		}
	})
}
