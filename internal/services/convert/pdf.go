package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"io"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/yourusername/image2pdf/internal/models"
)

const (
	// DefaultPageDPI is the raster resolution each image is embedded
	// at; it fixes the physical page size relative to the pixel size.
	DefaultPageDPI = 100

	// pageQuality is the JPEG quality of the RGB re-encode that becomes
	// the PDF page image. User-facing quality only applies to the
	// compression pre-pass.
	pageQuality = 90
)

// buildSinglePDF writes one document with one page per image, in batch
// order. An empty batch is an error: a zero-page PDF is never produced.
func (p *Pipeline) buildSinglePDF(ctx context.Context, batch models.ImageBatch) ([]byte, error) {
	if len(batch) == 0 {
		return nil, newError(CodeEmptyOutput, "", errors.New("no pages were added to the PDF"))
	}

	pages := make([]io.Reader, 0, len(batch))
	for _, img := range batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := p.pageImage(img)
		if err != nil {
			return nil, err
		}
		pages = append(pages, bytes.NewReader(page))
	}

	return p.importImages(pages, "")
}

// buildIndividualPDFs writes one standalone single-page document per
// image, paired with its base name, in batch order.
func (p *Pipeline) buildIndividualPDFs(ctx context.Context, batch models.ImageBatch, baseNames []string) ([]Artifact, error) {
	pdfs := make([]Artifact, 0, len(batch))

	for i, img := range batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := p.pageImage(img)
		if err != nil {
			return nil, err
		}
		doc, err := p.importImages([]io.Reader{bytes.NewReader(page)}, img.Name)
		if err != nil {
			return nil, err
		}
		pdfs = append(pdfs, Artifact{BaseName: baseNames[i], Data: doc})
	}

	return pdfs, nil
}

// pageImage decodes an input, flattens transparency and re-encodes it
// as an RGB JPEG ready for page embedding.
func (p *Pipeline) pageImage(src models.UploadedImage) ([]byte, error) {
	img, _, err := decodeImage(src.Data)
	if err != nil {
		return nil, newError(CodeDecodeFailed, src.Name, err)
	}

	img = flattenAlpha(img)

	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: pageQuality}); err != nil {
		return nil, newError(CodeEncodeFailed, src.Name, err)
	}

	return buf.Bytes(), nil
}

// importImages assembles the prepared page images into a fresh PDF via
// pdfcpu, one full-size page per image at the configured dpi.
func (p *Pipeline) importImages(pages []io.Reader, file string) ([]byte, error) {
	imp, err := pdfapi.Import(fmt.Sprintf("dpi:%d", p.pageDPI), types.POINTS)
	if err != nil {
		return nil, newError(CodeEncodeFailed, file, err)
	}

	var buf bytes.Buffer
	if err := pdfapi.ImportImages(nil, &buf, pages, imp, nil); err != nil {
		return nil, newError(CodeEncodeFailed, file, err)
	}

	return buf.Bytes(), nil
}
