package md2docx

import (
	"time"

	"go.uber.org/zap"
)

// Input contains conversion parameters.
type Input struct {
	Markdown  string // markdown content (required)
	SourceDir string // directory relative image paths resolve against (optional)
}

// ConvertResult holds the produced document.
type ConvertResult struct {
	DOCX []byte
}

// PreviewResult holds the rendered preview surfaces.
type PreviewResult struct {
	Fragment string // HTML body fragment
	CSS      string // generated rule set
	Page     string // complete standalone HTML page
}

// Option configures a Converter.
type Option func(*Converter)

// defaultTimeout bounds browser operations when no deadline is set.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the browser operation timeout for preview screenshots.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger routes diagnostics to log. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		c.log = log
	}
}

// WithStyleSheet uses the given style sheet. The sheet is cloned; later
// edits by the caller do not affect the converter.
func WithStyleSheet(sheet *StyleSheet) Option {
	return func(c *Converter) {
		if sheet != nil {
			c.sheet = sheet.Clone()
		}
	}
}

// WithStyleFile loads the style sheet from a JSON file. A missing or
// malformed file falls back to the defaults with a logged warning.
func WithStyleFile(path string) Option {
	return func(c *Converter) {
		c.cfg.styleFile = path
	}
}

// WithStylePreset selects an embedded style preset by name.
func WithStylePreset(name string) Option {
	return func(c *Converter) {
		c.cfg.stylePreset = name
	}
}

// WithHighlight enables code-block syntax highlighting using the named
// chroma style in both the document and the preview.
func WithHighlight(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = style
	}
}

type converterConfig struct {
	timeout     time.Duration
	styleFile   string
	stylePreset string
	highlight   string
}
