// Package emit turns a parsed markdown tag tree into the neutral document
// model. Dispatch is depth-first over the block kinds; the nesting context
// travels by value so sibling subtrees cannot disturb each other.
package emit

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/doc"
	"github.com/alnah/go-md2docx/internal/imgres"
	"github.com/alnah/go-md2docx/internal/styles"
)

// Config collects the collaborators an Emitter needs.
type Config struct {
	Sheet     *styles.Sheet
	SourceDir string
	Highlight string // chroma style name, empty disables token coloring
	Logger    *zap.Logger
}

// Emitter converts markdown source into a doc.Document. One Emitter serves
// one conversion configuration; Emit itself is stateless per call.
type Emitter struct {
	sheet     *styles.Sheet
	res       *imgres.Resolver
	sourceDir string
	highlight string
	log       *zap.Logger
	md        goldmark.Markdown
}

// New returns an Emitter. A nil sheet falls back to the built-in defaults.
func New(cfg Config) *Emitter {
	sheet := cfg.Sheet
	if sheet == nil {
		sheet = styles.Defaults()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{
		sheet:     sheet,
		res:       imgres.New(log),
		sourceDir: cfg.SourceDir,
		highlight: cfg.Highlight,
		log:       log,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Emit parses source and emits the full block sequence in document order.
func (e *Emitter) Emit(source []byte) (*doc.Document, error) {
	root := e.md.Parser().Parse(text.NewReader(source))
	w := &walker{Emitter: e, source: source}
	w.emitChildren(root, nestCtx{})
	return &doc.Document{Blocks: w.blocks}, nil
}

// nestCtx is the by-value nesting context. Copies are cheap and deliberate:
// a child's pushes never leak back into the parent's view.
type nestCtx struct {
	depth int
}

func (c nestCtx) push() nestCtx {
	c.depth++
	return c
}

type walker struct {
	*Emitter
	source []byte
	blocks []doc.Block
}

func (w *walker) emitChildren(n ast.Node, ctx nestCtx) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.emitBlock(c, ctx)
	}
}

func (w *walker) emitBlock(n ast.Node, ctx nestCtx) {
	switch n := n.(type) {
	case *ast.Heading:
		w.emitHeading(n, ctx)
	case *ast.Paragraph:
		w.emitParagraph(n, ctx)
	case *ast.TextBlock:
		w.emitParagraph(n, ctx)
	case *ast.FencedCodeBlock:
		w.emitCodeBlock(n, string(n.Language(w.source)), ctx)
	case *ast.CodeBlock:
		w.emitCodeBlock(n, "", ctx)
	case *ast.List:
		w.emitList(n, ctx)
	case *ast.Blockquote:
		w.emitChildren(n, ctx.push())
	case *ast.ThematicBreak:
		w.emitRule(ctx)
	case *east.Table:
		w.emitTable(n, ctx)
	case *ast.HTMLBlock:
		// Raw HTML has no structural mapping and is skipped.
		w.log.Debug("skipping raw HTML block")
	default:
		w.log.Debug("skipping unsupported block", zap.String("kind", n.Kind().String()))
	}
}

func (w *walker) emitHeading(n *ast.Heading, ctx nestCtx) {
	entry := w.sheet.Heading(n.Level)
	w.blocks = append(w.blocks, doc.Block{
		Kind:   doc.KindHeading,
		Level:  n.Level,
		Runs:   w.composeInline(n, runStyle(entry)),
		Format: w.formatFor(entry, ctx, false),
	})
}

func (w *walker) emitParagraph(n ast.Node, ctx nestCtx) {
	entry := w.sheet.Entry(styles.KeyParagraph)
	w.blocks = append(w.blocks, doc.Block{
		Kind:   doc.KindParagraph,
		Runs:   w.composeInline(n, runStyle(entry)),
		Format: w.formatFor(entry, ctx, false),
	})
}

func (w *walker) emitCodeBlock(n ast.Node, language string, ctx nestCtx) {
	entry := w.sheet.Entry(styles.KeyCodeBlock)

	var lines []string
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		lines = append(lines, strings.TrimSuffix(string(w.source[seg.Start:seg.Stop]), "\n"))
	}

	style := runStyle(entry)
	style.IsCode = true

	block := doc.Block{
		Kind:       doc.KindCodeBlock,
		Lines:      lines,
		Style:      style,
		Background: entry.Background,
		Language:   language,
		Format: doc.Format{
			SpaceBeforePt: entry.SpaceBeforePt,
			SpaceAfterPt:  entry.SpaceAfterPt,
			LineSpacing:   entry.LineSpacing,
			LeftIndentPt:  styles.ListIndentStepPt * float64(ctx.depth),
		},
	}
	if w.highlight != "" {
		if runs, ok := highlightLines(lines, language, w.highlight, style); ok {
			block.LineRuns = runs
		}
	}
	w.blocks = append(w.blocks, block)
}

func (w *walker) emitList(n *ast.List, ctx nestCtx) {
	itemCtx := ctx.push()
	number := n.Start
	if !n.IsOrdered() {
		number = 0
	} else if number == 0 {
		number = 1
	}

	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		w.emitListItem(item, n.IsOrdered(), number, itemCtx)
		if n.IsOrdered() {
			number++
		}
	}
}

// emitListItem writes the bullet paragraph (marker run first, hanging first
// line) and then recurses into the item's trailing block children at the
// same depth, so a nested list lands one step deeper via its own push.
func (w *walker) emitListItem(item ast.Node, ordered bool, number int, ctx nestCtx) {
	entry := w.sheet.Entry(styles.KeyParagraph)

	marker := "•"
	if ordered {
		marker = strconv.Itoa(number) + "."
	}
	runs := []doc.Run{{Text: marker + " ", Style: runStyle(entry)}}

	rest := item.FirstChild()
	if rest != nil {
		switch rest.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			runs = append(runs, w.composeInline(rest, runStyle(entry))...)
			rest = rest.NextSibling()
		}
	}

	format := w.formatFor(entry, ctx, true)
	format.FirstLineIndentPt = -styles.ListHangingIndentPt
	w.blocks = append(w.blocks, doc.Block{
		Kind:    doc.KindListItem,
		Ordered: ordered,
		Depth:   ctx.depth,
		Runs:    runs,
		Format:  format,
	})

	for ; rest != nil; rest = rest.NextSibling() {
		w.emitBlock(rest, ctx)
	}
}

func (w *walker) emitRule(ctx nestCtx) {
	w.blocks = append(w.blocks, doc.Block{
		Kind: doc.KindRule,
		Format: doc.Format{
			SpaceBeforePt: styles.RuleSpacingPt,
			SpaceAfterPt:  styles.RuleSpacingPt,
			LeftIndentPt:  styles.ListIndentStepPt * float64(ctx.depth),
			BottomBorder:  true,
		},
	})
}

func (w *walker) emitTable(n *east.Table, ctx nestCtx) {
	entry := w.sheet.Entry(styles.KeyParagraph)
	table := &doc.Table{
		CellStyle:   runStyle(entry),
		HeaderStyle: runStyle(entry),
	}
	table.HeaderStyle.Bold = true

	for section := n.FirstChild(); section != nil; section = section.NextSibling() {
		switch section := section.(type) {
		case *east.TableHeader:
			table.HasHeader = true
			table.Rows = append(table.Rows, w.tableCells(section))
		case *east.TableRow:
			table.Rows = append(table.Rows, w.tableCells(section))
		}
	}
	if len(table.Rows) == 0 {
		return
	}

	// Column count comes from the first row; later rows are squared to it.
	table.ColumnCount = len(table.Rows[0])
	for i, row := range table.Rows {
		for len(row) < table.ColumnCount {
			row = append(row, "")
		}
		table.Rows[i] = row[:table.ColumnCount]
	}

	w.blocks = append(w.blocks, doc.Block{
		Kind:  doc.KindTable,
		Table: table,
		Format: doc.Format{
			SpaceAfterPt: entry.SpaceAfterPt,
			LeftIndentPt: styles.ListIndentStepPt * float64(ctx.depth),
		},
	})
}

func (w *walker) tableCells(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, w.plainText(cell))
	}
	return cells
}

// plainText flattens a subtree's text content for table cells.
func (w *walker) plainText(n ast.Node) string {
	var b strings.Builder
	var visit func(ast.Node)
	visit = func(n ast.Node) {
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(w.source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(n.Value)
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

// formatFor projects a style entry into paragraph layout. The first-line
// indent applies only at top level; inside lists it would fight the hanging
// marker.
func (w *walker) formatFor(entry styles.Entry, ctx nestCtx, inList bool) doc.Format {
	f := doc.Format{
		SpaceBeforePt: entry.SpaceBeforePt,
		SpaceAfterPt:  entry.SpaceAfterPt,
		LineSpacing:   entry.LineSpacing,
		LeftIndentPt:  styles.ListIndentStepPt * float64(ctx.depth),
		Alignment:     entry.Alignment,
	}
	if !inList && ctx.depth == 0 {
		f.FirstLineIndentPt = styles.CmToPt(entry.FirstLineIndentCm)
	}
	return f
}

func runStyle(e styles.Entry) doc.RunStyle {
	return doc.RunStyle{
		Font:   e.FontName,
		SizePt: e.SizePt,
		Bold:   e.Bold,
		Italic: e.Italic,
		Color:  e.Color,
	}
}
