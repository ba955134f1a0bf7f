package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Raster formats the pipeline can decode. Uploads sniffing to anything
// else are rejected before any decode work happens.
var acceptedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/bmp",
	"image/tiff",
}

// DetectImageType sniffs the content of an upload and returns its MIME
// type, or an error when it is not an accepted raster format. The
// declared Content-Type of the upload is ignored on purpose.
func DetectImageType(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	for _, accepted := range acceptedImageTypes {
		if mtype.Is(accepted) {
			return mtype.String(), nil
		}
	}
	return "", fmt.Errorf("unsupported media type: %s", mtype.String())
}

// StripExtension drops the filename extension, leaving the base name
// used for output artifacts ("photo.png" -> "photo").
func StripExtension(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
