// Package doc defines the neutral document model emitted by the block
// emitter and consumed by the docx writer. Blocks are a closed tagged
// variant; every block owns its runs and is immutable once emitted.
package doc

import "github.com/alnah/go-md2docx/internal/styles"

// Kind enumerates the block variants.
type Kind int

// Block kinds.
const (
	KindHeading Kind = iota
	KindParagraph
	KindCodeBlock
	KindListItem
	KindTable
	KindRule
)

// RunStyle is the fully-resolved character style of one run.
type RunStyle struct {
	Font   string
	SizePt float64
	Bold   bool
	Italic bool
	Strike bool
	Color  styles.RGB
	IsCode bool
}

// Run is a contiguous span of text sharing one resolved style, or a
// structural marker: Break runs carry an explicit in-paragraph line break,
// ImagePath runs mark an embedded local image.
type Run struct {
	Text      string
	Style     RunStyle
	Break     bool
	ImagePath string
}

// Format is the paragraph-level layout of a block. All lengths are points
// except the line-spacing ratio; unit projection is the writer's job.
type Format struct {
	SpaceBeforePt     float64
	SpaceAfterPt      float64
	LineSpacing       float64
	LeftIndentPt      float64
	FirstLineIndentPt float64 // negative values hang the first line
	Alignment         styles.Alignment
	BottomBorder      bool
}

// Table is a rectangular grid of cell text with an explicit header flag.
// Rows are padded or truncated to ColumnCount by the emitter.
type Table struct {
	HasHeader   bool
	ColumnCount int
	Rows        [][]string
	HeaderStyle RunStyle
	CellStyle   RunStyle
}

// Block is one structural unit of the output document. Field use by kind:
// Level for headings; Ordered/Depth for list items; Lines, LineRuns, Style
// and Background for code blocks; Table for tables. Runs hold the composed
// inline content for heading, paragraph, and list-item blocks.
type Block struct {
	Kind    Kind
	Level   int
	Ordered bool
	Depth   int

	Runs []Run

	Lines      []string
	LineRuns   [][]Run  // optional per-token coloring, aligned with Lines
	Style      RunStyle // uniform run style for unhighlighted code lines
	Background string   // hex RRGGBB fill behind a code block
	Language   string

	Table *Table

	Format Format
}

// Document is the ordered block sequence for one conversion.
type Document struct {
	Blocks []Block
}

// PlainText flattens a block's runs for diagnostics and tests.
func (b *Block) PlainText() string {
	var out []byte
	for _, r := range b.Runs {
		if r.Break {
			out = append(out, '\n')
			continue
		}
		out = append(out, r.Text...)
	}
	return string(out)
}
