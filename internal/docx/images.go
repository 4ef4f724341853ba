package docx

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/doc"
	"github.com/alnah/go-md2docx/internal/styles"
)

// contentWidthEMU caps embedded drawings at the fixed content width.
var contentWidthEMU = styles.InchToEMU(styles.CodeBlockWidthIn)

// mediaPart is one image embedded in the package.
type mediaPart struct {
	name        string // media/imageN.ext, relative to word/
	ext         string
	contentType string
	relID       string
	data        []byte
	widthEMU    int64
	heightEMU   int64
}

// writeImageRun embeds the image at path as an inline drawing. A file that
// cannot be read or decoded degrades to a placeholder run with a warning;
// the paragraph always renders.
func (b *builder) writeImageRun(p *etree.Element, path string) {
	m, err := b.registerMedia(path)
	if err != nil {
		b.log.Warn("cannot embed image, placeholder substituted",
			zap.String("path", path), zap.Error(err))
		b.writeRun(p, &doc.Run{Text: "[image not embeddable: " + path + "]"})
		return
	}

	drawing := p.CreateElement("w:r").CreateElement("w:drawing")
	inline := drawing.CreateElement("wp:inline")

	extent := inline.CreateElement("wp:extent")
	extent.CreateAttr("cx", strconv.FormatInt(m.widthEMU, 10))
	extent.CreateAttr("cy", strconv.FormatInt(m.heightEMU, 10))

	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", strconv.Itoa(len(b.media)))
	docPr.CreateAttr("name", m.name)

	graphic := inline.CreateElement("a:graphic")
	graphicData := graphic.CreateElement("a:graphicData")
	graphicData.CreateAttr("uri", nsPic)

	pic := graphicData.CreateElement("pic:pic")

	nvPicPr := pic.CreateElement("pic:nvPicPr")
	cNvPr := nvPicPr.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", strconv.Itoa(len(b.media)))
	cNvPr.CreateAttr("name", m.name)
	nvPicPr.CreateElement("pic:cNvPicPr")

	blipFill := pic.CreateElement("pic:blipFill")
	blipFill.CreateElement("a:blip").CreateAttr("r:embed", m.relID)
	blipFill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("pic:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", strconv.FormatInt(m.widthEMU, 10))
	ext.CreateAttr("cy", strconv.FormatInt(m.heightEMU, 10))
	prstGeom := spPr.CreateElement("a:prstGeom")
	prstGeom.CreateAttr("prst", "rect")
	prstGeom.CreateElement("a:avLst")
}

// registerMedia loads, sniffs, and if needed converts the image, then adds
// it to the media list. Every occurrence gets its own part; documents rarely
// repeat images and part-level dedup is not worth the bookkeeping.
func (b *builder) registerMedia(path string) (*mediaPart, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- resolved from document content
	if err != nil {
		return nil, err
	}

	kind, _ := filetype.Match(data)
	ext := kind.Extension
	contentType := kind.MIME.Value

	var wpx, hpx int
	switch kind {
	case matchers.TypePng, matchers.TypeJpeg, matchers.TypeGif:
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		wpx, hpx = cfg.Width, cfg.Height
	default:
		// Word cannot embed this format; re-encode as PNG.
		img, err := imaging.Open(path)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, err
		}
		data = buf.Bytes()
		ext = "png"
		contentType = "image/png"
		wpx, hpx = img.Bounds().Dx(), img.Bounds().Dy()
	}

	widthEMU := styles.PxToEMU(wpx)
	heightEMU := styles.PxToEMU(hpx)
	if widthEMU > contentWidthEMU {
		heightEMU = heightEMU * contentWidthEMU / widthEMU
		widthEMU = contentWidthEMU
	}

	index := len(b.media)
	m := mediaPart{
		name:        "media/image" + strconv.Itoa(index+1) + "." + ext,
		ext:         ext,
		contentType: contentType,
		relID:       relIDFor(index),
		data:        data,
		widthEMU:    widthEMU,
		heightEMU:   heightEMU,
	}
	b.media = append(b.media, m)
	return &b.media[index], nil
}
