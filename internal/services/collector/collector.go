// Package collector turns raw uploads into an ordered, name-unique
// image batch.
package collector

import (
	"fmt"

	"github.com/yourusername/image2pdf/internal/models"
)

// DuplicateNameError reports the first upload name that repeats within
// a batch. The whole batch is rejected when it occurs.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate file name %q in upload batch", e.Name)
}

// Collect scans uploads in their original order and returns them as a
// batch. The first repeated name aborts the scan with a
// DuplicateNameError; no partial batch is ever returned. Names are kept
// verbatim, extension included.
func Collect(files []models.UploadedImage) (models.ImageBatch, error) {
	seen := make(map[string]struct{}, len(files))
	batch := make(models.ImageBatch, 0, len(files))

	for _, f := range files {
		if _, ok := seen[f.Name]; ok {
			return nil, &DuplicateNameError{Name: f.Name}
		}
		seen[f.Name] = struct{}{}
		batch = append(batch, f)
	}

	return batch, nil
}
