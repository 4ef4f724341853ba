// Package md2docx converts Markdown documents into styled Word (.docx)
// documents and renders a matching HTML preview from the same style sheet.
//
// Basic usage:
//
//	converter, err := md2docx.NewConverter()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer converter.Close()
//
//	result, err := converter.Convert(ctx, md2docx.Input{
//		Markdown:  "# Hello\n\nSome *styled* text.",
//		SourceDir: "/path/to/doc",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("out.docx", result.DOCX, 0644)
//
// Styling is driven by a StyleSheet mapping structural elements (headings,
// paragraphs, code, inline code) to fonts, sizes, colors, and spacing. The
// same sheet feeds the docx writer and the preview CSS generator, so what
// the preview shows is what the document exports.
//
// For parallel batch conversion use ConverterPool. For a PNG snapshot of
// the preview use RenderPreviewPNG, which drives a lazily started headless
// Chrome via go-rod.
package md2docx
