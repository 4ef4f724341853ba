package assets

import (
	"errors"
	"testing"

	"github.com/alnah/go-md2docx/internal/styles"
)

func TestLoadPreset(t *testing.T) {
	t.Run("default preset equals built-in defaults", func(t *testing.T) {
		sheet, err := LoadPreset("default")
		if err != nil {
			t.Fatalf("LoadPreset: %v", err)
		}
		if !sheet.Equal(styles.Defaults()) {
			t.Error("default preset differs from styles.Defaults()")
		}
	})

	t.Run("every embedded preset resolves", func(t *testing.T) {
		names := ListPresets()
		if len(names) == 0 {
			t.Fatal("no embedded presets")
		}
		for _, name := range names {
			sheet, err := LoadPreset(name)
			if err != nil {
				t.Errorf("LoadPreset(%q): %v", name, err)
				continue
			}
			for _, key := range styles.Keys() {
				if sheet.Entry(key).FontName == "" {
					t.Errorf("preset %q leaves %q without a font", name, key)
				}
			}
		}
	})

	t.Run("compact preset overrides sizes only", func(t *testing.T) {
		sheet, err := LoadPreset("compact")
		if err != nil {
			t.Fatalf("LoadPreset: %v", err)
		}
		if got := sheet.Entry(styles.KeyH1).SizePt; got != 20 {
			t.Errorf("compact H1 size = %v, want 20", got)
		}
		if got := sheet.Entry(styles.KeyH1).FontName; got != "SimHei" {
			t.Errorf("compact H1 font = %q, want default kept", got)
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		if _, err := LoadPreset("nope"); !errors.Is(err, ErrPresetNotFound) {
			t.Errorf("error = %v, want ErrPresetNotFound", err)
		}
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		for _, name := range []string{"", "../default", "a/b", `a\b`} {
			if _, err := LoadPreset(name); !errors.Is(err, ErrInvalidPresetName) {
				t.Errorf("LoadPreset(%q) error = %v, want ErrInvalidPresetName", name, err)
			}
		}
	})
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	for _, want := range []string{"default", "compact", "manuscript"} {
		if !found[want] {
			t.Errorf("ListPresets() = %v, missing %q", names, want)
		}
	}
}
