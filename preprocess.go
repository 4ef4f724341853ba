package md2docx

import (
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// preprocessMarkdown normalizes source text before parsing: a UTF-8 BOM is
// stripped, line endings become \n, and runs of blank lines compress to one
// blank line so spacing comes from the style sheet, not the source.
func preprocessMarkdown(content string) string {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return content
}
