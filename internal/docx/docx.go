// Package docx serializes the document model into a Word (.docx) package:
// a zip container holding the content-type map, the relationship parts, the
// OOXML body, and any embedded media.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/doc"
)

// ErrWrite marks any failure while producing the package. Writer failures
// always propagate; a half-written document must not look like success.
var ErrWrite = fmt.Errorf("failed to write docx")

// Writer serializes doc.Documents. Safe to reuse across documents; every
// Write starts from a clean part set.
type Writer struct {
	log *zap.Logger
}

// NewWriter returns a Writer logging diagnostics to log (nil for none).
func NewWriter(log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{log: log}
}

// WriteFile serializes d into a .docx file at path.
func (w *Writer) WriteFile(d *doc.Document, path string) (err error) {
	f, cerr := os.Create(path) // #nosec G304 -- user-provided output path
	if cerr != nil {
		return fmt.Errorf("%w: %v", ErrWrite, cerr)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return w.Write(d, f)
}

// Write serializes d as a complete .docx package to out.
func (w *Writer) Write(d *doc.Document, out io.Writer) error {
	b := &builder{log: w.log}
	body := b.buildDocument(d)

	zw := zip.NewWriter(out)

	if err := writeContentTypes(zw, b.media); err != nil {
		return fmt.Errorf("%w: content types: %v", ErrWrite, err)
	}
	if err := writePackageRels(zw); err != nil {
		return fmt.Errorf("%w: package rels: %v", ErrWrite, err)
	}
	if err := writeXMLPart(zw, "word/document.xml", body); err != nil {
		return fmt.Errorf("%w: document: %v", ErrWrite, err)
	}
	if err := writeDocumentRels(zw, b.media); err != nil {
		return fmt.Errorf("%w: document rels: %v", ErrWrite, err)
	}
	for _, m := range b.media {
		part, err := zw.Create("word/" + m.name)
		if err != nil {
			return fmt.Errorf("%w: media %s: %v", ErrWrite, m.name, err)
		}
		if _, err := part.Write(m.data); err != nil {
			return fmt.Errorf("%w: media %s: %v", ErrWrite, m.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: close archive: %v", ErrWrite, err)
	}
	return nil
}

func writeXMLPart(zw *zip.Writer, name string, xml *etree.Document) error {
	part, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = xml.WriteTo(part)
	return err
}

func writeContentTypes(zw *zip.Writer, media []mediaPart) error {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	types := xml.CreateElement("Types")
	types.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")

	rels := types.CreateElement("Default")
	rels.CreateAttr("Extension", "rels")
	rels.CreateAttr("ContentType", "application/vnd.openxmlformats-package.relationships+xml")

	xmlDefault := types.CreateElement("Default")
	xmlDefault.CreateAttr("Extension", "xml")
	xmlDefault.CreateAttr("ContentType", "application/xml")

	seen := map[string]bool{}
	for _, m := range media {
		if seen[m.ext] {
			continue
		}
		seen[m.ext] = true
		d := types.CreateElement("Default")
		d.CreateAttr("Extension", m.ext)
		d.CreateAttr("ContentType", m.contentType)
	}

	override := types.CreateElement("Override")
	override.CreateAttr("PartName", "/word/document.xml")
	override.CreateAttr("ContentType",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml")

	return writeXMLPart(zw, "[Content_Types].xml", xml)
}

func writePackageRels(zw *zip.Writer) error {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	rels := xml.CreateElement("Relationships")
	rels.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")

	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", "rId1")
	rel.CreateAttr("Type",
		"http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument")
	rel.CreateAttr("Target", "word/document.xml")

	return writeXMLPart(zw, "_rels/.rels", xml)
}

func writeDocumentRels(zw *zip.Writer, media []mediaPart) error {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	rels := xml.CreateElement("Relationships")
	rels.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")

	for _, m := range media {
		rel := rels.CreateElement("Relationship")
		rel.CreateAttr("Id", m.relID)
		rel.CreateAttr("Type",
			"http://schemas.openxmlformats.org/officeDocument/2006/relationships/image")
		rel.CreateAttr("Target", m.name)
	}

	return writeXMLPart(zw, "word/_rels/document.xml.rels", xml)
}

// relIDFor numbers media relationships from rId10, clear of the fixed part
// relationships.
func relIDFor(index int) string {
	return "rId" + strconv.Itoa(10+index)
}
