// Package assets provides the built-in style-sheet presets shipped with the
// binary. Presets are JSON overrides resolved against the built-in defaults.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/alnah/go-md2docx/internal/styles"
)

//go:embed presets/*.json
var presets embed.FS

// Sentinel errors for preset operations.
var (
	// ErrPresetNotFound indicates the requested preset does not exist.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPresetName indicates the name contains path separators or
	// traversal sequences.
	ErrInvalidPresetName = errors.New("invalid preset name")
)

// LoadPreset resolves an embedded preset into a complete style sheet.
// The name carries no .json extension and no path components.
func LoadPreset(name string) (*styles.Sheet, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	data, err := presets.ReadFile("presets/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}

	sheet, _, err := styles.Resolve(data)
	if err != nil {
		// Embedded presets are validated by tests; a resolve failure here
		// means a build produced a corrupt binary.
		return nil, fmt.Errorf("embedded preset %q: %w", name, err)
	}
	return sheet, nil
}

// ListPresets returns the available preset names, sorted.
func ListPresets() []string {
	entries, err := fs.ReadDir(presets, "presets")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidPresetName, name)
	}
	return nil
}
