package emit

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-md2docx/internal/doc"
)

// highlightLines tokenizes the code and returns per-line colored runs
// aligned with lines. The style name matches the preview's highlighter, so
// both renderers color identically. A tokenization failure reports !ok and
// the caller keeps the uniform styling.
func highlightLines(lines []string, language, styleName string, base doc.RunStyle) ([][]doc.Run, bool) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(styleName)
	if style == nil {
		style = chromastyles.Fallback
	}

	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil, false
	}

	out := make([][]doc.Run, len(lines))
	row := 0
	for token := it(); token != chroma.EOF; token = it() {
		runStyle := base
		entry := style.Get(token.Type)
		if entry.Colour.IsSet() {
			runStyle.Color.R = entry.Colour.Red()
			runStyle.Color.G = entry.Colour.Green()
			runStyle.Color.B = entry.Colour.Blue()
		}
		if entry.Bold == chroma.Yes {
			runStyle.Bold = true
		}
		if entry.Italic == chroma.Yes {
			runStyle.Italic = true
		}

		// Token values may span lines; each piece lands on its own row.
		for i, piece := range strings.Split(token.Value, "\n") {
			if i > 0 {
				row++
			}
			if piece == "" || row >= len(out) {
				continue
			}
			out[row] = append(out[row], doc.Run{Text: piece, Style: runStyle})
		}
	}
	return out, true
}
