package emit

import (
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/doc"
	"github.com/alnah/go-md2docx/internal/imgres"
	"github.com/alnah/go-md2docx/internal/styles"
)

// composeInline flattens a block's inline children into runs. The inherited
// style is passed by value: emphasis, strikethrough, and code spans overlay
// fields on a copy, so nested markers compose without restore bookkeeping.
func (w *walker) composeInline(n ast.Node, inherited doc.RunStyle) []doc.Run {
	var runs []doc.Run
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		runs = append(runs, w.composeNode(c, inherited)...)
	}
	return runs
}

func (w *walker) composeNode(n ast.Node, inherited doc.RunStyle) []doc.Run {
	switch n := n.(type) {
	case *ast.Text:
		return w.composeText(n, inherited)

	case *ast.String:
		return []doc.Run{{Text: string(n.Value), Style: inherited}}

	case *ast.Emphasis:
		style := inherited
		if n.Level >= 2 {
			style.Bold = true
		} else {
			style.Italic = true
		}
		return w.composeInline(n, style)

	case *east.Strikethrough:
		style := inherited
		style.Strike = true
		return w.composeInline(n, style)

	case *ast.CodeSpan:
		return w.composeCodeSpan(n, inherited)

	case *ast.Link:
		// The visible text survives; the target does not.
		return w.composeInline(n, inherited)

	case *ast.AutoLink:
		return []doc.Run{{Text: string(n.URL(w.source)), Style: inherited}}

	case *ast.Image:
		return w.composeImage(n, inherited)

	case *east.TaskCheckBox:
		box := "[ ] "
		if n.IsChecked {
			box = "[x] "
		}
		return []doc.Run{{Text: box, Style: inherited}}

	case *ast.RawHTML:
		return nil

	default:
		w.log.Debug("skipping unsupported inline", zap.String("kind", n.Kind().String()))
		return nil
	}
}

// composeText applies the whitespace rule: a text node that is entirely
// whitespace is dropped unless it is exactly one space, which separates
// adjacent styled spans.
func (w *walker) composeText(n *ast.Text, inherited doc.RunStyle) []doc.Run {
	var runs []doc.Run

	text := string(n.Segment.Value(w.source))
	if strings.TrimSpace(text) != "" || text == " " {
		runs = append(runs, doc.Run{Text: text, Style: inherited})
	}

	switch {
	case n.HardLineBreak():
		runs = append(runs, doc.Run{Break: true})
	case n.SoftLineBreak():
		// Soft wraps collapse to a space in every renderer.
		runs = append(runs, doc.Run{Text: " ", Style: inherited})
	}
	return runs
}

// composeCodeSpan renders inline code with the inline_code entry, sized as
// ratio × the enclosing block's size.
func (w *walker) composeCodeSpan(n *ast.CodeSpan, inherited doc.RunStyle) []doc.Run {
	entry := w.sheet.Entry(styles.KeyInlineCode)

	style := inherited
	style.Font = entry.FontName
	style.Color = entry.Color
	style.IsCode = true
	if entry.SizeRatio > 0 {
		style.SizePt = inherited.SizePt * entry.SizeRatio
	}

	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(w.source))
		}
	}
	if b.Len() == 0 {
		return nil
	}
	return []doc.Run{{Text: b.String(), Style: style}}
}

func (w *walker) composeImage(n *ast.Image, inherited doc.RunStyle) []doc.Run {
	locator := string(n.Destination)
	alt := w.plainText(n)
	if alt == "" {
		alt = filepath.Base(locator)
	}

	res := w.res.Resolve(locator, w.sourceDir)
	switch res.State {
	case imgres.ResolvedLocal:
		return []doc.Run{{ImagePath: res.Path}}
	case imgres.Remote:
		return []doc.Run{{Text: "[remote image: " + alt + "]", Style: inherited}}
	default:
		return []doc.Run{{Text: "[image not found: " + alt + "]", Style: inherited}}
	}
}
