// Package preview renders the on-screen HTML counterpart of a conversion.
// The fragment comes from the same parser configuration as the block
// emitter; the CSS is generated from the same style sheet and unit
// constants, so the preview tracks the exported document by construction.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-md2docx/internal/styles"
)

// Config collects what a Renderer needs.
type Config struct {
	Sheet     *styles.Sheet
	SourceDir string
	Highlight string // chroma style name, empty disables highlighting
}

// Renderer produces the HTML fragment, the CSS rule set, and the wrapped
// preview page for one style sheet.
type Renderer struct {
	sheet     *styles.Sheet
	sourceDir string
	md        goldmark.Markdown
}

// New returns a Renderer. A nil sheet falls back to the built-in defaults.
func New(cfg Config) *Renderer {
	sheet := cfg.Sheet
	if sheet == nil {
		sheet = styles.Defaults()
	}

	exts := []goldmark.Extender{extension.GFM}
	if cfg.Highlight != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.Highlight),
		))
	}

	return &Renderer{
		sheet:     sheet,
		sourceDir: cfg.SourceDir,
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithRendererOptions(htmlrenderer.WithUnsafe()),
		),
	}
}

// Fragment renders the markdown body as HTML with relative image and link
// paths rewritten to file:// URLs under the source directory.
func (r *Renderer) Fragment(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render preview fragment: %w", err)
	}
	return rewriteRelativePaths(buf.String(), r.sourceDir)
}

// CSS generates the rule set mirroring the docx rendition: same fonts,
// sizes, spacing, and layout constants, projected into pixels.
func (r *Renderer) CSS() string {
	var b strings.Builder

	para := r.sheet.Entry(styles.KeyParagraph)
	code := r.sheet.Entry(styles.KeyCodeBlock)
	inline := r.sheet.Entry(styles.KeyInlineCode)

	fmt.Fprintf(&b, "body {\n  font-family: %q;\n  font-size: %.1fpx;\n  margin: 0;\n}\n",
		para.FontName, styles.PtToPx(para.SizePt))

	for level := 1; level <= 6; level++ {
		e := r.sheet.Heading(level)
		fmt.Fprintf(&b, "h%d {\n  font-family: %q;\n  font-size: %.1fpx;\n", level, e.FontName, styles.PtToPx(e.SizePt))
		fmt.Fprintf(&b, "  font-weight: %s;\n", weight(e.Bold))
		if e.Italic {
			b.WriteString("  font-style: italic;\n")
		}
		fmt.Fprintf(&b, "  color: %s;\n", cssColor(e.Color))
		fmt.Fprintf(&b, "  margin: %.1fpx 0 %.1fpx 0;\n",
			styles.PtToPx(e.SpaceBeforePt), styles.PtToPx(e.SpaceAfterPt))
		if e.Alignment != "" && e.Alignment != styles.AlignLeft {
			fmt.Fprintf(&b, "  text-align: %s;\n", e.Alignment)
		}
		b.WriteString("}\n")
	}

	fmt.Fprintf(&b, "p {\n  font-family: %q;\n  font-size: %.1fpx;\n", para.FontName, styles.PtToPx(para.SizePt))
	if para.LineSpacing > 0 {
		fmt.Fprintf(&b, "  line-height: %.2f;\n", para.LineSpacing)
	}
	fmt.Fprintf(&b, "  text-indent: %.1fpx;\n", styles.CmToPx(para.FirstLineIndentCm))
	fmt.Fprintf(&b, "  color: %s;\n", cssColor(para.Color))
	fmt.Fprintf(&b, "  margin: %.1fpx 0 %.1fpx 0;\n",
		styles.PtToPx(para.SpaceBeforePt), styles.PtToPx(para.SpaceAfterPt))
	b.WriteString("}\n")

	fmt.Fprintf(&b, "pre {\n  font-family: %q;\n  font-size: %.1fpx;\n", code.FontName, styles.PtToPx(code.SizePt))
	if code.Background != "" {
		fmt.Fprintf(&b, "  background-color: #%s;\n", code.Background)
	}
	if code.LineSpacing > 0 {
		fmt.Fprintf(&b, "  line-height: %.2f;\n", code.LineSpacing)
	}
	fmt.Fprintf(&b, "  width: %.0fpx;\n  padding: 4px;\n  overflow-x: auto;\n}\n",
		styles.CodeBlockWidthIn*96)

	ratio := inline.SizeRatio
	if ratio <= 0 {
		ratio = 1
	}
	fmt.Fprintf(&b, "p code, li code {\n  font-family: %q;\n  font-size: %.1fpx;\n  color: %s;\n}\n",
		inline.FontName, styles.PtToPx(para.SizePt*ratio), cssColor(inline.Color))

	b.WriteString("table {\n  border-collapse: collapse;\n}\n")
	b.WriteString("th, td {\n  border: 1px solid #666;\n  padding: 2px 6px;\n}\n")
	b.WriteString("th {\n  font-weight: bold;\n  text-align: center;\n}\n")

	fmt.Fprintf(&b, "ul, ol {\n  padding-left: %.1fpx;\n}\n", styles.PtToPx(styles.ListIndentStepPt))
	// Inside markers plus a negative text-indent hang the marker exactly
	// like the exported list paragraphs hang their marker run.
	hang := styles.PtToPx(styles.ListHangingIndentPt)
	fmt.Fprintf(&b, "li {\n  list-style-position: inside;\n  padding-left: %.1fpx;\n  text-indent: -%.1fpx;\n}\n", hang, hang)
	fmt.Fprintf(&b, "blockquote {\n  margin-left: %.1fpx;\n}\n", styles.PtToPx(styles.ListIndentStepPt))
	b.WriteString("hr {\n  border: none;\n  border-bottom: 1px solid #000;\n}\n")
	fmt.Fprintf(&b, "img {\n  max-width: %.0fpx;\n}\n", styles.CodeBlockWidthIn*96)

	return b.String()
}

// Page wraps a fragment and the CSS into a complete standalone HTML page
// with an A4-proportioned content container.
func (r *Renderer) Page(source []byte) (string, error) {
	fragment, err := r.Fragment(source)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	b.WriteString(r.CSS())
	b.WriteString(pageContainerCSS)
	b.WriteString("</style>\n</head>\n<body>\n<div class=\"page\">\n")
	b.WriteString(fragment)
	b.WriteString("\n</div>\n</body>\n</html>\n")
	return b.String(), nil
}

// A4 at 96 DPI, with margins close to the exported section properties.
const pageContainerCSS = `.page {
  width: 794px;
  min-height: 1123px;
  margin: 0 auto;
  padding: 96px;
  box-sizing: border-box;
  background: #fff;
}
`

func weight(bold bool) string {
	if bold {
		return "bold"
	}
	return "normal"
}

func cssColor(c styles.RGB) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
