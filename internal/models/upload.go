package models

import "github.com/yourusername/image2pdf/pkg/utils"

// UploadedImage is one raw upload: the filename as sent (extension
// included) and the undecoded bytes. Immutable once collected.
type UploadedImage struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
}

// ImageBatch is an ordered set of uploads, unique by name. The order is
// the upload order and determines page/file order in every output.
type ImageBatch []UploadedImage

func (b ImageBatch) Names() []string {
	names := make([]string, len(b))
	for i, img := range b {
		names[i] = img.Name
	}
	return names
}

// BaseNames returns the upload names with their extensions stripped,
// in batch order. These become the output file base names.
func (b ImageBatch) BaseNames() []string {
	names := make([]string, len(b))
	for i, img := range b {
		names[i] = utils.StripExtension(img.Name)
	}
	return names
}
