package docx

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/doc"
	"github.com/alnah/go-md2docx/internal/styles"
)

// OOXML namespaces used by the document part.
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// A4 page geometry in twips. Breaking content across pages is Word's job;
// the section properties only declare the canvas.
const (
	pageWidthTwips   = 11906
	pageHeightTwips  = 16838
	pageMarginTwips  = 1440
	codeBlockCellDxa = 8640 // 6in fixed code container width
)

// builder accumulates the document part and its referenced media.
type builder struct {
	log   *zap.Logger
	media []mediaPart
}

func (b *builder) buildDocument(d *doc.Document) *etree.Document {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	root := xml.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	root.CreateAttr("xmlns:wp", nsWP)
	root.CreateAttr("xmlns:a", nsA)
	root.CreateAttr("xmlns:pic", nsPic)

	body := root.CreateElement("w:body")
	for i := range d.Blocks {
		b.writeBlock(body, &d.Blocks[i])
	}
	b.writeSectionProperties(body)
	return xml
}

func (b *builder) writeBlock(body *etree.Element, block *doc.Block) {
	switch block.Kind {
	case doc.KindCodeBlock:
		b.writeCodeBlock(body, block)
	case doc.KindTable:
		b.writeTable(body, block)
	default:
		b.writeParagraphBlock(body, block)
	}
}

// writeParagraphBlock covers headings, paragraphs, list items, and rules.
// They differ only in format and run content.
func (b *builder) writeParagraphBlock(body *etree.Element, block *doc.Block) {
	p := body.CreateElement("w:p")
	b.writeParagraphProperties(p, block.Format)
	for i := range block.Runs {
		b.writeRun(p, &block.Runs[i])
	}
}

func (b *builder) writeParagraphProperties(p *etree.Element, f doc.Format) {
	pPr := p.CreateElement("w:pPr")

	spacing := pPr.CreateElement("w:spacing")
	spacing.CreateAttr("w:before", strconv.Itoa(styles.PtToTwips(f.SpaceBeforePt)))
	spacing.CreateAttr("w:after", strconv.Itoa(styles.PtToTwips(f.SpaceAfterPt)))
	if f.LineSpacing > 0 {
		spacing.CreateAttr("w:line", strconv.Itoa(styles.SpacingToLineUnits(f.LineSpacing)))
		spacing.CreateAttr("w:lineRule", "auto")
	}

	if f.LeftIndentPt != 0 || f.FirstLineIndentPt != 0 {
		ind := pPr.CreateElement("w:ind")
		if f.LeftIndentPt != 0 {
			ind.CreateAttr("w:left", strconv.Itoa(styles.PtToTwips(f.LeftIndentPt)))
		}
		switch {
		case f.FirstLineIndentPt > 0:
			ind.CreateAttr("w:firstLine", strconv.Itoa(styles.PtToTwips(f.FirstLineIndentPt)))
		case f.FirstLineIndentPt < 0:
			ind.CreateAttr("w:hanging", strconv.Itoa(styles.PtToTwips(-f.FirstLineIndentPt)))
		}
	}

	if jc := alignmentValue(f.Alignment); jc != "" {
		pPr.CreateElement("w:jc").CreateAttr("w:val", jc)
	}

	if f.BottomBorder {
		bottom := pPr.CreateElement("w:pBdr").CreateElement("w:bottom")
		bottom.CreateAttr("w:val", "single")
		bottom.CreateAttr("w:sz", strconv.Itoa(styles.RuleBorderSize))
		bottom.CreateAttr("w:space", "1")
		bottom.CreateAttr("w:color", "auto")
	}
}

func alignmentValue(a styles.Alignment) string {
	switch a {
	case styles.AlignCenter:
		return "center"
	case styles.AlignRight:
		return "right"
	case styles.AlignJustify:
		return "both"
	default:
		return ""
	}
}

func (b *builder) writeRun(p *etree.Element, run *doc.Run) {
	if run.Break {
		p.CreateElement("w:r").CreateElement("w:br")
		return
	}
	if run.ImagePath != "" {
		b.writeImageRun(p, run.ImagePath)
		return
	}
	if run.Text == "" {
		return
	}

	r := p.CreateElement("w:r")
	writeRunProperties(r, run.Style)
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(run.Text)
}

func writeRunProperties(r *etree.Element, s doc.RunStyle) {
	rPr := r.CreateElement("w:rPr")

	if s.Font != "" {
		fonts := rPr.CreateElement("w:rFonts")
		fonts.CreateAttr("w:ascii", s.Font)
		fonts.CreateAttr("w:hAnsi", s.Font)
		fonts.CreateAttr("w:eastAsia", s.Font)
	}
	if s.Bold {
		rPr.CreateElement("w:b")
	}
	if s.Italic {
		rPr.CreateElement("w:i")
	}
	if s.Strike {
		rPr.CreateElement("w:strike")
	}
	if s.SizePt > 0 {
		half := strconv.Itoa(styles.PtToHalfPoints(s.SizePt))
		rPr.CreateElement("w:sz").CreateAttr("w:val", half)
		rPr.CreateElement("w:szCs").CreateAttr("w:val", half)
	}
	if s.Color != (styles.RGB{}) {
		rPr.CreateElement("w:color").CreateAttr("w:val",
			fmt.Sprintf("%02X%02X%02X", s.Color.R, s.Color.G, s.Color.B))
	}
}

// writeCodeBlock renders code as a single-cell fixed-width shaded table.
// Word has no native block background; the cell shading stands in for it.
func (b *builder) writeCodeBlock(body *etree.Element, block *doc.Block) {
	tbl := body.CreateElement("w:tbl")

	tblPr := tbl.CreateElement("w:tblPr")
	width := tblPr.CreateElement("w:tblW")
	width.CreateAttr("w:w", strconv.Itoa(codeBlockCellDxa))
	width.CreateAttr("w:type", "dxa")
	writeTableBorders(tblPr)
	if block.Format.LeftIndentPt != 0 {
		ind := tblPr.CreateElement("w:tblInd")
		ind.CreateAttr("w:w", strconv.Itoa(styles.PtToTwips(block.Format.LeftIndentPt)))
		ind.CreateAttr("w:type", "dxa")
	}

	tbl.CreateElement("w:tblGrid").CreateElement("w:gridCol").
		CreateAttr("w:w", strconv.Itoa(codeBlockCellDxa))

	tc := tbl.CreateElement("w:tr").CreateElement("w:tc")
	tcPr := tc.CreateElement("w:tcPr")
	tcw := tcPr.CreateElement("w:tcW")
	tcw.CreateAttr("w:w", strconv.Itoa(codeBlockCellDxa))
	tcw.CreateAttr("w:type", "dxa")
	if block.Background != "" {
		shd := tcPr.CreateElement("w:shd")
		shd.CreateAttr("w:val", "clear")
		shd.CreateAttr("w:color", "auto")
		shd.CreateAttr("w:fill", block.Background)
	}

	p := tc.CreateElement("w:p")
	format := block.Format
	format.LeftIndentPt = 0
	b.writeParagraphProperties(p, format)

	for i, line := range block.Lines {
		if i > 0 {
			p.CreateElement("w:r").CreateElement("w:br")
		}
		if len(block.LineRuns) == len(block.Lines) && block.LineRuns[i] != nil {
			for j := range block.LineRuns[i] {
				b.writeRun(p, &block.LineRuns[i][j])
			}
			continue
		}
		if line == "" {
			continue
		}
		b.writeRun(p, &doc.Run{Text: line, Style: block.Style})
	}
}

func (b *builder) writeTable(body *etree.Element, block *doc.Block) {
	t := block.Table
	if t == nil || t.ColumnCount == 0 {
		return
	}

	tbl := body.CreateElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	width := tblPr.CreateElement("w:tblW")
	width.CreateAttr("w:w", "0")
	width.CreateAttr("w:type", "auto")
	writeTableBorders(tblPr)
	if block.Format.LeftIndentPt != 0 {
		ind := tblPr.CreateElement("w:tblInd")
		ind.CreateAttr("w:w", strconv.Itoa(styles.PtToTwips(block.Format.LeftIndentPt)))
		ind.CreateAttr("w:type", "dxa")
	}

	grid := tbl.CreateElement("w:tblGrid")
	for i := 0; i < t.ColumnCount; i++ {
		grid.CreateElement("w:gridCol")
	}

	for rowIdx, row := range t.Rows {
		tr := tbl.CreateElement("w:tr")
		header := t.HasHeader && rowIdx == 0
		for _, cell := range row {
			tc := tr.CreateElement("w:tc")
			tc.CreateElement("w:tcPr")
			p := tc.CreateElement("w:p")

			style := t.CellStyle
			format := doc.Format{}
			if header {
				style = t.HeaderStyle
				format.Alignment = styles.AlignCenter
			}
			b.writeParagraphProperties(p, format)
			if cell != "" {
				b.writeRun(p, &doc.Run{Text: cell, Style: style})
			}
		}
	}
}

func writeTableBorders(tblPr *etree.Element) {
	borders := tblPr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		el := borders.CreateElement("w:" + side)
		el.CreateAttr("w:val", "single")
		el.CreateAttr("w:sz", "4")
		el.CreateAttr("w:space", "0")
		el.CreateAttr("w:color", "auto")
	}
}

func (b *builder) writeSectionProperties(body *etree.Element) {
	sectPr := body.CreateElement("w:sectPr")

	pgSz := sectPr.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", strconv.Itoa(pageWidthTwips))
	pgSz.CreateAttr("w:h", strconv.Itoa(pageHeightTwips))

	pgMar := sectPr.CreateElement("w:pgMar")
	for _, side := range []string{"top", "right", "bottom", "left"} {
		pgMar.CreateAttr("w:"+side, strconv.Itoa(pageMarginTwips))
	}
}
