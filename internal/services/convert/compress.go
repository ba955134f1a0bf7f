package convert

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"math"

	"github.com/disintegration/imaging"

	"github.com/yourusername/image2pdf/internal/models"
)

// compressImage decodes one upload, flattens any transparency, scales
// both dimensions by ratioPercent (round half up) and re-encodes as
// JPEG at the requested quality.
func (p *Pipeline) compressImage(src models.UploadedImage, ratioPercent, quality int) ([]byte, error) {
	img, _, err := decodeImage(src.Data)
	if err != nil {
		return nil, newError(CodeDecodeFailed, src.Name, err)
	}

	img = flattenAlpha(img)

	ratio := float64(ratioPercent) / 100
	width := int(math.Round(float64(img.Bounds().Dx()) * ratio))
	height := int(math.Round(float64(img.Bounds().Dy()) * ratio))

	// imaging.Resize treats a zero dimension as "derive from aspect
	// ratio", which would silently hide degenerate scaling. A dimension
	// that rounds to zero is an error instead.
	if width <= 0 || height <= 0 {
		return nil, newError(CodeEncodeFailed, src.Name,
			fmt.Errorf("resize at %d%% yields degenerate size %dx%d", ratioPercent, width, height))
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, newError(CodeEncodeFailed, src.Name, err)
	}

	return buf.Bytes(), nil
}
