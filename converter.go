package md2docx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/emit"
	"github.com/alnah/go-md2docx/internal/preview"
	"github.com/alnah/go-md2docx/internal/styles"
)

// Converter orchestrates the markdown-to-docx conversion and the matching
// HTML preview. Create with NewConverter, convert with Convert or Preview,
// and Close when done to release any browser the screenshotter started.
type Converter struct {
	cfg   converterConfig
	sheet *styles.Sheet
	log   *zap.Logger

	writer       *docx.Writer
	screenshoter *rodScreenshoter
}

// NewConverter creates a Converter. Options customize the style sheet, the
// logger, highlighting, and browser timeout.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.stylePreset != "" && c.sheet == nil {
		sheet, err := LoadStylePreset(c.cfg.stylePreset)
		if err != nil {
			return nil, err
		}
		c.sheet = sheet
	}
	if c.cfg.styleFile != "" && c.sheet == nil {
		c.sheet = styles.Load(c.cfg.styleFile, c.log)
	}
	if c.sheet == nil {
		c.sheet = styles.Defaults()
	}

	c.writer = docx.NewWriter(c.log)
	c.screenshoter = newRodScreenshoter(c.cfg.timeout)
	return c, nil
}

// Styles returns a copy of the converter's style sheet.
func (c *Converter) Styles() *StyleSheet {
	return c.sheet.Clone()
}

// Convert turns markdown into a complete .docx package.
// Recovers from internal panics so a malformed document cannot crash the
// caller.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := preprocessMarkdown(input.Markdown)

	emitter := emit.New(emit.Config{
		Sheet:     c.sheet,
		SourceDir: input.SourceDir,
		Highlight: c.cfg.highlight,
		Logger:    c.log,
	})
	document, err := emitter.Emit([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("emitting document: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := c.writer.Write(document, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxWrite, err)
	}
	return &ConvertResult{DOCX: buf.Bytes()}, nil
}

// Preview renders the HTML counterpart of a conversion: the body fragment,
// the generated CSS, and a complete standalone page.
func (c *Converter) Preview(ctx context.Context, input Input) (result *PreviewResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := preprocessMarkdown(input.Markdown)

	r := preview.New(preview.Config{
		Sheet:     c.sheet,
		SourceDir: input.SourceDir,
		Highlight: c.cfg.highlight,
	})
	fragment, err := r.Fragment([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreviewRender, err)
	}
	page, err := r.Page([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreviewRender, err)
	}

	return &PreviewResult{
		Fragment: fragment,
		CSS:      r.CSS(),
		Page:     page,
	}, nil
}

// RenderPreviewPNG opens the preview page in headless Chrome and captures
// a PNG screenshot. The browser starts lazily on first use.
func (c *Converter) RenderPreviewPNG(ctx context.Context, page string) ([]byte, error) {
	return c.screenshoter.CapturePage(ctx, page)
}

// Close releases browser resources. Safe to call multiple times.
func (c *Converter) Close() error {
	return c.screenshoter.Close()
}

// validateInput enforces the trust boundary: empty markdown aborts the
// conversion before any stage runs.
func validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	return nil
}
