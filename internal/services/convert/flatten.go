package convert

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	// Decoders for the accepted raster formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type opaquer interface {
	Opaque() bool
}

func decodeImage(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

// flattenAlpha composites img onto an opaque white background, dropping
// the alpha channel. JPEG and PDF page embedding cannot represent
// transparency, so this runs before every lossy encode. Fully opaque
// images pass through untouched.
func flattenAlpha(img image.Image) image.Image {
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return img
	}

	bounds := img.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
}
