package md2docx

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/styles"
)

// StyleSheet is the keyed typographic configuration driving both the docx
// rendition and the HTML preview. See DefaultStyles, LoadStyles, and
// LoadStylePreset for the ways to obtain one.
type StyleSheet = styles.Sheet

// StyleEntry is the resolved record for one style key.
type StyleEntry = styles.Entry

// DefaultStyles returns the built-in style sheet.
func DefaultStyles() *StyleSheet {
	return styles.Defaults()
}

// LoadStyles reads a JSON style sheet from path. A missing or malformed
// file falls back to the defaults; problems are logged, never raised.
func LoadStyles(path string, log *zap.Logger) *StyleSheet {
	return styles.Load(path, log)
}

// LoadStylePreset resolves an embedded preset by name.
func LoadStylePreset(name string) (*StyleSheet, error) {
	sheet, err := assets.LoadPreset(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStylePreset, err)
	}
	return sheet, nil
}

// StylePresets lists the embedded preset names.
func StylePresets() []string {
	return assets.ListPresets()
}
