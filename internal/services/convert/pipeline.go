// Package convert implements the image-to-PDF conversion pipeline: an
// optional lossy compression pre-pass followed by PDF assembly, one
// page per image, in batch order.
package convert

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourusername/image2pdf/internal/models"
)

// Pipeline runs one conversion at a time. It holds no state between
// invocations; every buffer it allocates is released when Convert
// returns.
type Pipeline struct {
	pageDPI int
	logger  *zap.Logger
}

func NewPipeline(pageDPI int, logger *zap.Logger) *Pipeline {
	if pageDPI <= 0 {
		pageDPI = DefaultPageDPI
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		pageDPI: pageDPI,
		logger:  logger,
	}
}

// Artifact is one named output blob. BaseName carries no extension;
// the delivery layer appends ".pdf" or ".jpg" as appropriate.
type Artifact struct {
	BaseName string `json:"base_name"`
	Data     []byte `json:"data"`
}

// Result bundles the outputs of one successful run. Exactly one of
// SinglePDF / IndividualPDFs is set, according to the requested mode;
// CompressedImages is set only when compression was requested.
type Result struct {
	SinglePDF        []byte     `json:"single_pdf,omitempty"`
	IndividualPDFs   []Artifact `json:"individual_pdfs,omitempty"`
	CompressedImages []Artifact `json:"compressed_images,omitempty"`
	BaseNames        []string   `json:"base_names"`
}

// Convert runs the full pipeline over the batch. The first decode or
// encode failure aborts the whole run: no partial result is returned
// and nothing the caller holds is mutated.
func (p *Pipeline) Convert(ctx context.Context, batch models.ImageBatch, opts models.ConversionOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseNames := batch.BaseNames()
	result := &Result{BaseNames: baseNames}

	// The compression pre-pass replaces the working bytes for the PDF
	// stage; the compressed blobs are also kept for direct download.
	sources := batch
	if opts.Compress {
		compressed := make([]Artifact, 0, len(batch))
		working := make(models.ImageBatch, 0, len(batch))

		for i, img := range batch {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			data, err := p.compressImage(img, opts.RatioPercent, opts.Quality)
			if err != nil {
				return nil, err
			}
			compressed = append(compressed, Artifact{BaseName: baseNames[i], Data: data})
			working = append(working, models.UploadedImage{Name: baseNames[i] + ".jpg", Data: data})
		}

		result.CompressedImages = compressed
		sources = working
	}

	switch opts.Mode {
	case models.ModeIndividualPDFs:
		pdfs, err := p.buildIndividualPDFs(ctx, sources, baseNames)
		if err != nil {
			return nil, err
		}
		result.IndividualPDFs = pdfs
	default:
		pdf, err := p.buildSinglePDF(ctx, sources)
		if err != nil {
			return nil, err
		}
		result.SinglePDF = pdf
	}

	p.logger.Info("conversion complete",
		zap.Int("images", len(batch)),
		zap.Bool("compress", opts.Compress),
		zap.String("mode", string(opts.Mode)),
	)

	return result, nil
}
